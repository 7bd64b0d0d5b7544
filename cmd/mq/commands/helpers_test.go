//nolint:testpackage // Need access to internal types
package commands

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	t.Run("missing endpoint", func(t *testing.T) {
		viper.Reset()

		_, err := createSession(context.Background())
		require.ErrorIs(t, err, ErrEndpointRequired)
	})

	t.Run("missing token", func(t *testing.T) {
		viper.Reset()
		viper.Set("endpoint", "https://queues.example.com")

		_, err := createSession(context.Background())
		require.ErrorIs(t, err, ErrTokenRequired)
	})

	t.Run("configured session", func(t *testing.T) {
		viper.Reset()
		viper.Set("endpoint", "https://queues.example.com")
		viper.Set("token", "test-token")
		viper.Set("client-id", "client-123")

		session, err := createSession(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://queues.example.com", session.Endpoint())
		assert.Equal(t, "test-token", session.Token())
	})
}
