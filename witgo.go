package witgo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/google/uuid"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/internal/runtime"
	"github.com/aretw0/witgo/internal/transport"
	"github.com/aretw0/witgo/pkg/actions"
	"github.com/aretw0/witgo/pkg/domain"
	"github.com/aretw0/witgo/pkg/ports"
	"github.com/aretw0/witgo/pkg/session"
)

// DefaultMaxSteps bounds a RunActions call when the caller passes no budget.
const DefaultMaxSteps = 5

// Client is the high-level entry point for the witgo library. It wraps the
// transport, the action registry, the session tracker and the conversation
// driver behind a simplified API.
type Client struct {
	requester ports.Requester
	registry  *actions.Registry
	tracker   *session.Tracker
	driver    *runtime.Driver
	logger    *slog.Logger

	hooks            domain.LifecycleHooks
	maxSteps         int
	stopAfterMessage bool

	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithActions sets the validated action registry used by RunActions. A
// client without a registry can still call Message, Speech and Converse.
func WithActions(reg *actions.Registry) Option {
	return func(c *Client) { c.registry = reg }
}

// WithLogger sets a structured logger for the client and its driver.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithBaseURL overrides the API endpoint. Defaults to the WIT_URL
// environment variable, then the public endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithAPIVersion overrides the pinned API version. Defaults to the
// WIT_API_VERSION environment variable, then the library default.
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithHTTPClient injects the *http.Client used by the transport. Apply
// request timeouts here.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRequester replaces the whole transport layer. Intended for test
// doubles; when set, the HTTP options above are ignored.
func WithRequester(r ports.Requester) Option {
	return func(c *Client) { c.requester = r }
}

// WithHooks registers lifecycle hooks on the conversation driver.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) { c.hooks = c.hooks.Merge(hooks) }
}

// WithMaxSteps sets the default step budget for RunActions.
func WithMaxSteps(n int) Option {
	return func(c *Client) { c.maxSteps = n }
}

// WithStopAfterMessage controls whether a message turn concludes a run
// (default true) or the loop continues until an explicit stop.
func WithStopAfterMessage(stop bool) Option {
	return func(c *Client) { c.stopAfterMessage = stop }
}

// New creates a client authenticated with the given access token.
func New(accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	c := &Client{
		tracker:          session.NewTracker(),
		logger:           logging.NewNop(),
		maxSteps:         DefaultMaxSteps,
		stopAfterMessage: true,
		baseURL:          envOr("WIT_URL", transport.DefaultBaseURL),
		apiVersion:       envOr("WIT_API_VERSION", transport.DefaultAPIVersion),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.requester == nil {
		topts := []transport.Option{
			transport.WithBaseURL(c.baseURL),
			transport.WithAPIVersion(c.apiVersion),
			transport.WithLogger(c.logger),
		}
		if c.httpClient != nil {
			topts = append(topts, transport.WithHTTPClient(c.httpClient))
		}
		c.requester = transport.New(accessToken, topts...)
	}

	if c.registry != nil {
		c.driver = runtime.NewDriver(c.converseTurn, c.registry, c.tracker,
			runtime.WithLogger(c.logger),
			runtime.WithHooks(c.hooks),
			runtime.WithStopAfterMessage(c.stopAfterMessage),
		)
	}
	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewSessionID generates a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// QueryOption configures a Message or Speech call.
type QueryOption func(*queryConfig)

type queryConfig struct {
	context domain.Context
	n       int
	verbose bool
}

// WithContext sends the given conversation context alongside the query.
func WithContext(c domain.Context) QueryOption {
	return func(q *queryConfig) { q.context = c }
}

// WithN limits the number of intent candidates returned.
func WithN(n int) QueryOption {
	return func(q *queryConfig) { q.n = n }
}

// WithVerbose asks the API for verbose output.
func WithVerbose() QueryOption {
	return func(q *queryConfig) { q.verbose = true }
}

func (q *queryConfig) params() (url.Values, error) {
	params := url.Values{}
	if q.verbose {
		params.Set("verbose", "true")
	}
	if q.n > 0 {
		params.Set("n", fmt.Sprint(q.n))
	}
	if len(q.context) > 0 {
		data, err := json.Marshal(q.context)
		if err != nil {
			return nil, fmt.Errorf("failed to encode context: %w", err)
		}
		params.Set("context", string(data))
	}
	return params, nil
}

// Message sends one utterance to /message and returns its structured
// interpretation. No conversation state is involved.
func (c *Client) Message(ctx context.Context, q string, opts ...QueryOption) (*domain.MessageResponse, error) {
	var qc queryConfig
	for _, opt := range opts {
		opt(&qc)
	}
	params, err := qc.params()
	if err != nil {
		return nil, err
	}
	if q != "" {
		params.Set("q", q)
	}

	var out domain.MessageResponse
	if err := c.requester.Do(ctx, http.MethodGet, "/message", params, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Speech streams an audio payload to /speech and returns the same structured
// interpretation shape as Message. contentType describes the audio encoding
// (e.g. "audio/wav").
func (c *Client) Speech(ctx context.Context, audio io.Reader, contentType string, opts ...QueryOption) (*domain.MessageResponse, error) {
	var qc queryConfig
	for _, opt := range opts {
		opt(&qc)
	}
	params, err := qc.params()
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	var out domain.MessageResponse
	if err := c.requester.Do(ctx, http.MethodPost, "/speech", params, audio, header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Converse performs a single decision-endpoint turn without driving the
// action loop. Most hosts want RunActions instead.
func (c *Client) Converse(ctx context.Context, sessionID, message string, cv domain.Context) (*domain.ConverseResponse, error) {
	return c.converseTurn(ctx, sessionID, message, cv)
}

func (c *Client) converseTurn(ctx context.Context, sessionID, message string, cv domain.Context) (*domain.ConverseResponse, error) {
	params := url.Values{}
	params.Set("session_id", sessionID)
	if message != "" {
		params.Set("q", message)
	}

	if cv == nil {
		cv = domain.NewContext()
	}
	body, err := json.Marshal(cv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode context: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	var out domain.ConverseResponse
	if err := c.requester.Do(ctx, http.MethodPost, "/converse", params, bytes.NewReader(body), header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunActions drives the conversation for sessionID from the user message,
// invoking registered actions until the service concludes or maxSteps turns
// have been used. A maxSteps of zero or less applies the client default.
// The returned context is the input for the session's next RunActions call.
func (c *Client) RunActions(ctx context.Context, sessionID, message string, cv domain.Context, maxSteps int) (domain.Context, error) {
	if c.driver == nil {
		return nil, &domain.ConstructionError{Reason: "RunActions requires an action registry (use WithActions)"}
	}
	if maxSteps <= 0 {
		maxSteps = c.maxSteps
	}
	return c.driver.RunActions(ctx, sessionID, message, cv, maxSteps)
}
