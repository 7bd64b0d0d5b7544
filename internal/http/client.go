// Package http provides the request executor for the queue service REST API.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

const defaultUserAgent = "mqueue-go"

// Request represents an HTTP request to the queue service.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response represents an HTTP response from the queue service. Body holds the
// raw bytes; callers decode as needed. Headers are collapsed to their first
// value.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// JSON decodes the response body into v. An empty body is a no-op.
func (r *Response) JSON(v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}

	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithCACert sets the path of a PEM trust anchor used for https endpoints.
func WithCACert(path string) Option {
	return func(c *Client) {
		c.caCert = path
	}
}

// WithRetryConfig enables retries for transient failures (>=500, 429, and
// connection errors). Retries are off unless this option is applied.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// Client executes requests against one service endpoint. The underlying
// transport is selected from the endpoint scheme on first use and pooled
// across calls.
type Client struct {
	endpoint     string
	userAgent    string
	caCert       string
	logger       Logger
	debug        bool
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	initOnce   sync.Once
	httpClient *nethttp.Client
	initErr    error
}

// NewClient creates a request executor bound to the given endpoint. The
// endpoint scheme is validated on the first request.
func NewClient(endpoint string, opts ...Option) *Client {
	client := &Client{
		endpoint:     endpoint,
		userAgent:    defaultUserAgent,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Endpoint returns the endpoint this client is bound to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// transportFor selects the transport for the endpoint scheme: plain for http,
// TLS (with the optional trust anchor) for https. Any other scheme fails with
// an UnsupportedSchemeError naming the href that triggered the lookup.
func (c *Client) transportFor(parsed *url.URL, href string) (*nethttp.Transport, error) {
	switch parsed.Scheme {
	case "http":
		return nethttp.DefaultTransport.(*nethttp.Transport).Clone(), nil
	case "https":
		transport := nethttp.DefaultTransport.(*nethttp.Transport).Clone()

		if c.caCert != "" {
			pem, err := os.ReadFile(c.caCert)
			if err != nil {
				return nil, fmt.Errorf("reading CA cert %q: %w", c.caCert, err)
			}

			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates found in %q", c.caCert)
			}

			transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		}

		return transport, nil
	default:
		return nil, &mqueue.UnsupportedSchemeError{Scheme: parsed.Scheme, Href: href}
	}
}

// init builds the pooled HTTP client on first use.
func (c *Client) init(href string) error {
	c.initOnce.Do(func() {
		parsed, err := url.Parse(c.endpoint)
		if err != nil {
			c.initErr = fmt.Errorf("parsing endpoint %q: %w", c.endpoint, err)

			return
		}

		transport, err := c.transportFor(parsed, href)
		if err != nil {
			c.initErr = err

			return
		}

		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = c.retryMax
		retryClient.RetryWaitMin = c.retryWaitMin
		retryClient.RetryWaitMax = c.retryWaitMax
		retryClient.Logger = nil
		retryClient.HTTPClient.Transport = transport
		// Hand exhausted responses back unchanged so status classification
		// stays with Do.
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

		c.httpClient = retryClient.StandardClient()
	})

	return c.initErr
}

// Do executes the request and classifies the outcome. Status codes in the
// 200-299 range are success; any other status returns the response together
// with a *mqueue.ClientError carrying the method, href, status, and raw body.
// The connection is released after the response is fully read, on both
// success and error paths.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.endpoint + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	err := c.init(fullURL)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    collapseHeaders(httpResp.Header),
		Body:       respBody,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &mqueue.ClientError{
			Method:     req.Method,
			Href:       fullURL,
			StatusCode: httpResp.StatusCode,
			Body:       respBody,
		}
	}

	return resp, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Headers: headers})
}

// Put executes a PUT request with the given body.
func (c *Client) Put(ctx context.Context, path string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Headers: headers, Body: body})
}

// Post executes a POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Headers: headers, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, Headers: headers})
}

// encodeBody serializes the request body. Strings and byte slices are sent
// raw; any other value is JSON-encoded.
func encodeBody(body interface{}) ([]byte, string, error) {
	switch value := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return []byte(value), "", nil
	case []byte:
		return value, "", nil
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return encoded, "application/json", nil
	}
}

func collapseHeaders(header nethttp.Header) map[string]string {
	collapsed := make(map[string]string, len(header))
	for key := range header {
		collapsed[key] = header.Get(key)
	}

	return collapsed
}
