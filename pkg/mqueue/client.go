package mqueue

import (
	"context"
	"time"
)

// QueueOperations is the subset of session operations that queue handles use
// for follow-up calls. Handles hold a non-owning reference to it.
type QueueOperations interface {
	DeleteQueue(ctx context.Context, queueName string, headers map[string]string) error
	GetQueueMetadata(ctx context.Context, queueName string, headers map[string]string) (map[string]interface{}, error)
}

// Session identifies one authenticated client against one queue service
// endpoint. A session is created unauthenticated and transitions to
// authenticated via Connect; no queue operation may execute before that.
type Session interface {
	QueueOperations

	// Connect authenticates the session. It is idempotent: an existing token
	// is never re-fetched.
	Connect(ctx context.Context) error

	// CreateQueue creates a queue with the given name and default message TTL.
	CreateQueue(ctx context.Context, queueName string, ttl int, headers map[string]string) (*Queue, error)

	// GetQueue fetches a queue by name. A 404 response surfaces as
	// *QueueNotFoundError.
	GetQueue(ctx context.Context, queueName string, headers map[string]string) (*Queue, error)

	// GetQueues returns a lazy iterator over all queues, in service order.
	GetQueues(ctx context.Context, headers map[string]string) (*QueueIterator, error)

	// Endpoint returns the fully-qualified URI of the service endpoint, or ""
	// before authentication.
	Endpoint() string

	// Token returns the current auth token, or "" before authentication.
	Token() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Session.
//
// # Authentication
//
// ClientID is required for every queue operation and is sent as the Client-ID
// header. If Token and Endpoint are both provided the session starts out
// authenticated and Connect becomes a no-op; otherwise Connect invokes the
// configured authenticator with (AuthEndpoint, User, Key, Endpoint, CACert)
// and stores the endpoint and token it returns. Tokens are treated as valid
// for the lifetime of the session; there is no expiry or refresh handling.
//
// # Timeouts, retries, and TLS
//
// Per-request timeouts should be controlled via the context passed to session
// methods. The client performs no retries unless RetryMax is set. CACert, if
// provided, is the path to a PEM trust anchor used for https endpoints.
type Config struct {
	// ClientID: opaque client identifier, required for all queue operations.
	ClientID string

	// AuthEndpoint: the auth URL to authenticate against.
	AuthEndpoint string
	// User: the user to authenticate as.
	User string
	// Key: the API key or password to authenticate with.
	Key string

	// Endpoint: optional pre-supplied service endpoint. mqclient.New
	// normalizes this value by trimming a trailing slash and adding "https://"
	// if no scheme is present.
	Endpoint string
	// Token: optional pre-supplied auth token.
	Token string
	// CACert: optional path to a PEM trust anchor for https endpoints.
	CACert string

	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). 0 disables retries, matching the protocol's
	// default behavior.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// ConnectOnInit: when true, mqclient.New authenticates the session before
	// returning it.
	ConnectOnInit bool
}
