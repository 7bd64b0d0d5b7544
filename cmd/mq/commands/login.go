package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/mqueue/pkg/mqclient"
	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		clientID string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a queue service",
		Long: `Store the queue service endpoint, client identifier, and auth token in
the configuration file and verify them with a test request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if endpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return ErrEndpointRequired
			}

			if clientID == "" {
				clientID = viper.GetString("client-id")
			}

			if clientID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Client ID: ")
				clientID, _ = reader.ReadString('\n')
				clientID = strings.TrimSpace(clientID)
			}

			if token == "" {
				fmt.Print("Token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(byteToken)

				fmt.Println()
			}

			config := &mqueue.Config{
				ClientID:      clientID,
				Endpoint:      endpoint,
				Token:         token,
				CACert:        viper.GetString("cacert"),
				ConnectOnInit: true,
			}

			ctx := context.Background()

			session, err := mqclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}

			// Verify the credentials with a cheap listing request. An empty
			// listing is still a successful connection.
			it, err := session.GetQueues(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to queue service: %w", err)
			}

			if _, err := it.Collect(); err != nil {
				return fmt.Errorf("failed to connect to queue service: %w", err)
			}

			viper.Set("endpoint", session.Endpoint())
			viper.Set("client-id", clientID)
			viper.Set("token", token)

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s\n", session.Endpoint())

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "queue service endpoint URL")
	cmd.Flags().StringVar(&clientID, "client-id", "", "client identifier sent with every request")
	cmd.Flags().StringVarP(&token, "token", "t", "", "authentication token (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from the queue service",
		Long:  "Clear the stored authentication token",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("token", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}

// saveConfig persists the active viper configuration to the config file,
// creating it on first login.
func saveConfig() error {
	err := viper.WriteConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return homeErr
		}

		return viper.WriteConfigAs(filepath.Join(home, ".mq", "config.yml"))
	}

	return err
}
