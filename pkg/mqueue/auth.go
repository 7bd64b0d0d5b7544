package mqueue

import "context"

// Credentials carries everything an authenticator may need to exchange for a
// service endpoint and auth token.
type Credentials struct {
	// AuthEndpoint is the fully-qualified URI of the auth service.
	AuthEndpoint string
	// User is the user to authenticate as.
	User string
	// Key is the API key or password to authenticate with.
	Key string
	// Endpoint optionally pins the service endpoint instead of discovering it.
	Endpoint string
	// CACert is an optional path to a PEM trust anchor.
	CACert string
}

// Authenticator exchanges credentials for a service endpoint and auth token.
// Implementations own the handshake wire format, which is out of scope for
// this library; their errors propagate to the caller opaquely. A session
// invokes its authenticator at most once and treats the returned token as
// valid for the session's lifetime.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (endpoint string, token string, err error)
}

// StaticAuthenticator returns a pre-supplied endpoint and token without any
// network I/O. It backs sessions configured with an existing token.
type StaticAuthenticator struct {
	Endpoint string
	Token    string
}

// Authenticate implements Authenticator.
func (s *StaticAuthenticator) Authenticate(_ context.Context, creds Credentials) (string, string, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = creds.Endpoint
	}

	return endpoint, s.Token, nil
}
