package mqueue

import (
	"errors"
	"fmt"
)

// ClientError represents any non-2xx response from the queue service. It
// carries enough context for the caller to decide on retry, log, or abort.
type ClientError struct {
	Method     string
	Href       string
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Href, e.StatusCode, string(e.Body))
}

// QueueNotFoundError is the refinement raised when a queue-addressed call
// returns 404. Callers can branch on it without inspecting status codes.
type QueueNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *QueueNotFoundError) Error() string {
	return fmt.Sprintf("queue %q does not exist", e.Name)
}

// UnsupportedSchemeError is raised when an endpoint URL carries a scheme the
// transport selector cannot handle.
type UnsupportedSchemeError struct {
	Scheme string
	Href   string
}

// Error implements the error interface.
func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("cannot handle protocol %q for href %q", e.Scheme, e.Href)
}

// Common static errors that can be wrapped with context.
var (
	ErrClientIDRequired      = errors.New("client ID is required")
	ErrNotAuthenticated      = errors.New("not authenticated: call Connect first")
	ErrConfigRequired        = errors.New("config is required")
	ErrEndpointRequired      = errors.New("endpoint or auth endpoint is required")
	ErrAuthenticatorRequired = errors.New("no authenticator configured")
	ErrMissingSubstitution   = errors.New("missing substitution for placeholder")
	ErrNoMoreItems           = errors.New("no more items")
)

// IsNotFound checks if the error is a queue not-found error or a 404-class
// protocol error.
func IsNotFound(err error) bool {
	nfErr := &QueueNotFoundError{}
	if errors.As(err, &nfErr) {
		return true
	}

	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == 404
	}

	return false
}

// IsClientError checks if the error is a protocol error and, if so, returns it.
func IsClientError(err error) (*ClientError, bool) {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr, true
	}

	return nil, false
}
