//nolint:testpackage // Need access to internal types
package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueuesCommand(t *testing.T) {
	cmd := NewQueuesCommand()
	assert.Equal(t, "queues", cmd.Use)
	assert.Equal(t, []string{"queue", "q"}, cmd.Aliases)
	assert.Equal(t, "Manage queues", cmd.Short)

	// Check subcommands are added
	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "metadata")
}

func TestQueuesCreateCommand(t *testing.T) {
	cmd := newQueuesCreateCommand()
	assert.Equal(t, "create QUEUE_NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	// Check ttl flag
	ttlFlag := cmd.Flags().Lookup("ttl")
	require.NotNil(t, ttlFlag)
	assert.Equal(t, "3600", ttlFlag.DefValue)
}

func TestQueuesMetadataCommand(t *testing.T) {
	cmd := newQueuesMetadataCommand()
	assert.Equal(t, "metadata QUEUE_NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	// Argument validation happens before RunE, like the sibling subcommands.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

// configureTestService resets viper and points the commands at a test server.
func configureTestService(t *testing.T, endpoint string) {
	t.Helper()

	viper.Reset()
	viper.Set("endpoint", endpoint)
	viper.Set("token", "test-token")
	viper.Set("client-id", "client-123")
	viper.Set("output", "json")
}

func TestQueuesListCommand_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "/queues", request.URL.Path)
		assert.Equal(t, "client-123", request.Header.Get("Client-ID"))
		assert.Equal(t, "test-token", request.Header.Get("X-Auth-Token"))

		_, _ = writer.Write([]byte(`{"queues":[{"name":"a","href":"/queues/a"},{"name":"b","href":"/queues/b"}]}`))
	}))
	defer server.Close()

	configureTestService(t, server.URL)

	cmd := newQueuesListCommand()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
}

func TestQueuesCreateCommand_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PUT", request.Method)
		assert.Equal(t, "/queues/orders", request.URL.Path)

		var body map[string]map[string]int

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, 120, body["messages"]["ttl"])

		writer.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	configureTestService(t, server.URL)

	cmd := newQueuesCreateCommand()
	cmd.SetArgs([]string{"orders", "--ttl", "120"})
	require.NoError(t, cmd.Execute())
}

func TestQueuesGetCommand_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/queues/events", request.URL.Path)

			_, _ = writer.Write([]byte(`{"messages":{"ttl":3600}}`))
		}))
		defer server.Close()

		configureTestService(t, server.URL)

		cmd := newQueuesGetCommand()
		cmd.SetArgs([]string{"events"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		configureTestService(t, server.URL)

		cmd := newQueuesGetCommand()
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.SetArgs([]string{"missing"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queue 'missing' not found")
	})
}

func TestQueuesDeleteCommand_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "DELETE", request.Method)
			assert.Equal(t, "/queues/events", request.URL.Path)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		configureTestService(t, server.URL)

		cmd := newQueuesDeleteCommand()
		cmd.SetArgs([]string{"events"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		configureTestService(t, server.URL)

		cmd := newQueuesDeleteCommand()
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.SetArgs([]string{"missing"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queue 'missing' not found")
	})
}

func TestQueuesMetadataCommand_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/queues/events", request.URL.Path)

		_, _ = writer.Write([]byte(`{"messages":{"ttl":3600},"custom":"value"}`))
	}))
	defer server.Close()

	configureTestService(t, server.URL)

	cmd := newQueuesMetadataCommand()
	cmd.SetArgs([]string{"events"})
	require.NoError(t, cmd.Execute())
}
