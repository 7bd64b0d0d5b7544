package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/mqueue/pkg/mqclient"
	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrEndpointRequired = errors.New("no endpoint configured: run 'mq login' or pass --endpoint")
	ErrTokenRequired    = errors.New("no token configured: run 'mq login' or pass --token")
)

// createSession builds an authenticated session from the active
// configuration (flags, environment, config file). The CLI always works with
// a pre-supplied token; obtaining one is the job of whatever identity tooling
// issued it.
func createSession(ctx context.Context) (mqueue.Session, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ErrTokenRequired
	}

	config := &mqueue.Config{
		ClientID:      viper.GetString("client-id"),
		Endpoint:      endpoint,
		Token:         token,
		CACert:        viper.GetString("cacert"),
		Debug:         viper.GetBool("verbose"),
		ConnectOnInit: true,
	}

	session, err := mqclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return session, nil
}

// StandardJSONRenderer writes v to stdout as indented JSON.
func StandardJSONRenderer(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes v to stdout as YAML.
func StandardYAMLRenderer(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() {
		_ = encoder.Close()
	}()

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}
