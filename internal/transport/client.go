package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/pkg/domain"
)

// DefaultBaseURL is the public Wit API endpoint.
const DefaultBaseURL = "https://api.wit.ai"

// DefaultAPIVersion pins the API behavior via the accept header.
const DefaultAPIVersion = "20160516"

// Client is the HTTP transport adapter for the Wit API. It performs one
// request per call and maps failures onto the domain error taxonomy:
// *domain.TransportError for network trouble, *domain.APIError for non-OK
// statuses and for JSON bodies carrying an "error" field.
type Client struct {
	base    string
	token   string
	version string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures the transport client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (useful against a stub server).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = strings.TrimRight(base, "/") }
}

// WithAPIVersion overrides the pinned API version.
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.version = version }
}

// WithHTTPClient injects a custom *http.Client. Timeouts belong here; the
// driver never applies its own.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger for request/response debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a transport client authenticated with the given access token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		token:   token,
		version: DefaultAPIVersion,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs one request and decodes the JSON response into out (out may be
// nil). It implements ports.Requester.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body io.Reader, header http.Header, out any) error {
	op := method + " " + path

	full := c.base + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.wit."+c.version+"+json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	c.logger.Debug("wit request", "method", method, "url", c.base+path, "params", params.Encode())

	res, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}

	// The API signals success strictly as 200; anything above is a refusal.
	if res.StatusCode > http.StatusOK {
		return &domain.APIError{Status: res.StatusCode, Message: refusalMessage(res, raw)}
	}

	// A 200 body can still carry an application-level error field.
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("invalid JSON response: %w", err)}
	}
	if probe.Error != "" {
		return &domain.APIError{Message: probe.Error}
	}

	c.logger.Debug("wit response", "method", method, "url", c.base+path, "status", res.StatusCode)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// refusalMessage prefers the body's error field over the HTTP status text.
func refusalMessage(res *http.Response, raw []byte) string {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != "" {
		return probe.Error
	}
	return http.StatusText(res.StatusCode)
}
