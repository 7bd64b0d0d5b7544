package mqclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/mqueue/internal/client"
	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// New creates a new queue service session from config.
//
// When config carries a Token, the session starts out authenticated against
// config.Endpoint and Connect is a no-op. Otherwise an Authenticator must be
// supplied via NewWithAuthenticator, or ConnectOnInit left unset so the
// caller can wire authentication before the first operation.
func New(ctx context.Context, config *mqueue.Config) (mqueue.Session, error) {
	return NewWithAuthenticator(ctx, config, nil)
}

// NewWithAuthenticator creates a session using a caller-supplied
// authentication collaborator. The authenticator's handshake wire format is
// opaque to this library; it is invoked at most once per session.
func NewWithAuthenticator(ctx context.Context, config *mqueue.Config, authenticator mqueue.Authenticator) (mqueue.Session, error) {
	if config == nil {
		return nil, mqueue.ErrConfigRequired
	}

	config.Endpoint = normalizeEndpoint(config.Endpoint)
	config.AuthEndpoint = normalizeEndpoint(config.AuthEndpoint)

	session, err := client.New(config, authenticator)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if config.ConnectOnInit {
		err = session.Connect(ctx)
		if err != nil {
			return nil, err
		}
	}

	return session, nil
}

// normalizeEndpoint trims a trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
