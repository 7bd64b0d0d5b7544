// Package client implements the mqueue.Session against the queue service
// REST API.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fivetwenty-io/mqueue/internal/href"
	"github.com/fivetwenty-io/mqueue/internal/http"
	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// Header names the service expects on every request.
const (
	headerClientID  = "Client-ID"
	headerAuthToken = "X-Auth-Token"
)

// Session implements mqueue.Session. The authenticated-state transition
// (token, endpoint, href set) is a critical section guarded by mu; queue
// operations take the read side.
type Session struct {
	mu sync.RWMutex

	clientID     string
	authEndpoint string
	user         string
	key          string
	caCert       string

	token    string
	endpoint string
	hrefs    hrefSet

	authenticator mqueue.Authenticator
	httpClient    *http.Client
	httpOpts      []http.Option
	logger        mqueue.Logger
}

// New creates an unauthenticated session from config. The authenticator is
// invoked by Connect at most once; if config carries both a token and an
// endpoint the session starts out authenticated.
func New(config *mqueue.Config, authenticator mqueue.Authenticator) (*Session, error) {
	if config == nil {
		return nil, mqueue.ErrConfigRequired
	}

	if config.Endpoint == "" && config.AuthEndpoint == "" {
		return nil, mqueue.ErrEndpointRequired
	}

	if authenticator == nil {
		if config.Token != "" {
			authenticator = &mqueue.StaticAuthenticator{Endpoint: config.Endpoint, Token: config.Token}
		} else {
			return nil, mqueue.ErrAuthenticatorRequired
		}
	}

	session := &Session{
		clientID:      config.ClientID,
		authEndpoint:  config.AuthEndpoint,
		user:          config.User,
		key:           config.Key,
		caCert:        config.CACert,
		token:         config.Token,
		endpoint:      config.Endpoint,
		authenticator: authenticator,
		httpOpts:      httpOptions(config),
		logger:        config.Logger,
	}

	if session.token != "" && session.endpoint != "" {
		session.hrefs = deriveHrefs()
		session.httpClient = http.NewClient(session.endpoint, session.httpOpts...)
	}

	return session, nil
}

// httpOptions builds request executor options from config.
func httpOptions(config *mqueue.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.CACert != "" {
		opts = append(opts, http.WithCACert(config.CACert))
	}

	if config.RetryMax > 0 {
		opts = append(opts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return opts
}

// Connect implements mqueue.Session.Connect. It is a no-op when a token is
// already held: an existing token is never re-fetched.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		endpoint, token, err := s.authenticator.Authenticate(ctx, mqueue.Credentials{
			AuthEndpoint: s.authEndpoint,
			User:         s.user,
			Key:          s.key,
			Endpoint:     s.endpoint,
			CACert:       s.caCert,
		})
		if err != nil {
			return fmt.Errorf("authenticating against %s: %w", s.authEndpoint, err)
		}

		s.endpoint = endpoint
		s.token = token
	}

	s.hrefs = deriveHrefs()

	if s.httpClient == nil || s.httpClient.Endpoint() != s.endpoint {
		s.httpClient = http.NewClient(s.endpoint, s.httpOpts...)
	}

	if s.logger != nil {
		s.logger.Info("session authenticated", map[string]interface{}{
			"endpoint": s.endpoint,
		})
	}

	return nil
}

// Endpoint implements mqueue.Session.Endpoint.
func (s *Session) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.endpoint
}

// Token implements mqueue.Session.Token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// AuthEndpoint returns the fully-qualified URI of the auth endpoint.
func (s *Session) AuthEndpoint() string {
	return s.authEndpoint
}

// precondition is a side-effect-free check run before any network I/O.
type precondition func() error

// requireClientID fails when no client identifier is configured.
func (s *Session) requireClientID() error {
	if s.clientID == "" {
		return mqueue.ErrClientIDRequired
	}

	return nil
}

// requireAuthenticated fails until token and endpoint are both set.
func (s *Session) requireAuthenticated() error {
	if s.token == "" || s.endpoint == "" || !s.hrefs.populated() {
		return mqueue.ErrNotAuthenticated
	}

	return nil
}

// guard runs the operation preconditions in order under the read lock.
func (s *Session) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, check := range []precondition{s.requireClientID, s.requireAuthenticated} {
		err := check()
		if err != nil {
			return err
		}
	}

	return nil
}

// requestHeaders merges the session identity headers with caller-supplied
// headers; the caller's entries win.
func (s *Session) requestHeaders(headers map[string]string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := map[string]string{
		headerClientID:  s.clientID,
		headerAuthToken: s.token,
	}

	for key, value := range headers {
		merged[key] = value
	}

	return merged
}

// queueHref expands the single-queue template for the given name.
func (s *Session) queueHref(queueName string) (string, error) {
	s.mu.RLock()
	template := s.hrefs.queue
	s.mu.RUnlock()

	path, err := href.Expand(template, map[string]string{"queue_name": queueName})
	if err != nil {
		return "", fmt.Errorf("expanding queue href: %w", err)
	}

	return path, nil
}

// executor returns the current request executor.
func (s *Session) executor() *http.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.httpClient
}

// CreateQueue implements mqueue.Session.CreateQueue. Any non-2xx response
// surfaces unrefined; creation has no 404 special case.
func (s *Session) CreateQueue(ctx context.Context, queueName string, ttl int, headers map[string]string) (*mqueue.Queue, error) {
	err := s.guard()
	if err != nil {
		return nil, err
	}

	path, err := s.queueHref(queueName)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"messages": map[string]interface{}{"ttl": ttl},
	}

	_, err = s.executor().Put(ctx, path, s.requestHeaders(headers), body)
	if err != nil {
		return nil, err
	}

	return mqueue.NewQueue(s, path, queueName, body), nil
}

// GetQueue implements mqueue.Session.GetQueue. A 404 response is refined into
// *mqueue.QueueNotFoundError carrying the queue name; any other error status
// passes through unchanged.
func (s *Session) GetQueue(ctx context.Context, queueName string, headers map[string]string) (*mqueue.Queue, error) {
	err := s.guard()
	if err != nil {
		return nil, err
	}

	path, err := s.queueHref(queueName)
	if err != nil {
		return nil, err
	}

	resp, err := s.executor().Get(ctx, path, s.requestHeaders(headers))
	if err != nil {
		return nil, refineNotFound(err, queueName)
	}

	var metadata map[string]interface{}

	err = resp.JSON(&metadata)
	if err != nil {
		return nil, err
	}

	return mqueue.NewQueue(s, path, queueName, metadata), nil
}

// GetQueues implements mqueue.Session.GetQueues. Preconditions are checked
// eagerly; the listing itself is fetched on first use of the iterator and
// exposed lazily in service order.
func (s *Session) GetQueues(ctx context.Context, headers map[string]string) (*mqueue.QueueIterator, error) {
	err := s.guard()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	path := s.hrefs.queues
	s.mu.RUnlock()

	merged := s.requestHeaders(headers)

	return mqueue.NewQueueIterator(func() ([]*mqueue.Queue, error) {
		resp, err := s.executor().Get(ctx, path, merged)
		if err != nil {
			return nil, err
		}

		var listing mqueue.QueueListing

		err = resp.JSON(&listing)
		if err != nil {
			return nil, err
		}

		queues := make([]*mqueue.Queue, 0, len(listing.Queues))
		for _, entry := range listing.Queues {
			queues = append(queues, mqueue.NewQueue(s, entry.Href, entry.Name, entry.Metadata))
		}

		return queues, nil
	}), nil
}

// DeleteQueue implements mqueue.Session.DeleteQueue. A 404 response is
// refined into *mqueue.QueueNotFoundError; any 2xx returns nil.
func (s *Session) DeleteQueue(ctx context.Context, queueName string, headers map[string]string) error {
	err := s.guard()
	if err != nil {
		return err
	}

	path, err := s.queueHref(queueName)
	if err != nil {
		return err
	}

	_, err = s.executor().Delete(ctx, path, s.requestHeaders(headers))
	if err != nil {
		return refineNotFound(err, queueName)
	}

	return nil
}

// GetQueueMetadata implements mqueue.QueueOperations.GetQueueMetadata and
// returns the decoded body verbatim, without wrapping it in a handle. Unlike
// GetQueue, a 404 here passes through as a plain protocol error.
func (s *Session) GetQueueMetadata(ctx context.Context, queueName string, headers map[string]string) (map[string]interface{}, error) {
	err := s.guard()
	if err != nil {
		return nil, err
	}

	path, err := s.queueHref(queueName)
	if err != nil {
		return nil, err
	}

	resp, err := s.executor().Get(ctx, path, s.requestHeaders(headers))
	if err != nil {
		return nil, err
	}

	var metadata map[string]interface{}

	err = resp.JSON(&metadata)
	if err != nil {
		return nil, err
	}

	return metadata, nil
}

// refineNotFound maps a 404 protocol error on a queue-addressed call to the
// queue not-found error; everything else is returned unchanged.
func refineNotFound(err error, queueName string) error {
	clientErr, ok := mqueue.IsClientError(err)
	if ok && clientErr.StatusCode == 404 {
		return &mqueue.QueueNotFoundError{Name: queueName}
	}

	return err
}
