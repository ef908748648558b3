package actions

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/pkg/domain"
)

// Request carries the turn payload handed to every handler: the session the
// turn belongs to, a snapshot of the conversation context, the original user
// message of the run, and the entities extracted so far.
type Request struct {
	SessionID string
	Context   domain.Context
	Message   string
	Entities  domain.Entities
}

// Response carries the bot message payload handed to the terminal handler.
type Response struct {
	Text         string
	QuickReplies []string
}

// TerminalHandler is invoked when the service wants to speak to the user.
// In the request/response flavor this is the "send" callback; in the legacy
// flavor it is "say".
type TerminalHandler func(ctx context.Context, req Request, resp Response) error

// ActionHandler is a named custom action. It receives a context snapshot and
// returns the updated context for the next turn. Returning a nil context is a
// contract violation the driver tolerates by substituting an empty one.
type ActionHandler func(ctx context.Context, req Request) (domain.Context, error)

// ErrorHandler is notified, best effort, when the service returns the error
// kind for a turn. The run still fails afterwards.
type ErrorHandler func(ctx context.Context, req Request, err error)

// Flavor selects which handler set the registry requires.
type Flavor int

const (
	// FlavorRequestResponse is the current callback contract: a "send"
	// terminal handler plus any custom actions.
	FlavorRequestResponse Flavor = iota

	// FlavorLegacy is the historical contract: "say" terminal, a "merge"
	// slot-filling action and an error handler are all required.
	FlavorLegacy
)

// Registry holds the validated handler set for a client.
type Registry struct {
	flavor   Flavor
	terminal TerminalHandler
	named    map[string]ActionHandler
	onError  ErrorHandler
}

type config struct {
	reg     Registry
	lenient bool
	logger  *slog.Logger
}

// Option configures registry construction.
type Option func(*config)

// WithTerminal sets the terminal ("send"/"say") handler.
func WithTerminal(h TerminalHandler) Option {
	return func(c *config) { c.reg.terminal = h }
}

// WithAction registers a named action handler. Registering the same name
// twice keeps the last handler.
func WithAction(name string, h ActionHandler) Option {
	return func(c *config) { c.reg.named[name] = h }
}

// WithErrorHandler sets the handler notified on remote refusals.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) { c.reg.onError = h }
}

// WithLenientValidation downgrades construction failures to warnings. The
// registry is returned as-is and missing handlers surface at dispatch time
// instead.
func WithLenientValidation() Option {
	return func(c *config) { c.lenient = true }
}

// WithLogger sets the logger used for lenient-mode warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New builds and validates a registry. In strict mode (the default) a missing
// required handler or a nil handler value yields *domain.ConstructionError;
// with WithLenientValidation the problems are logged and construction
// proceeds.
func New(flavor Flavor, opts ...Option) (*Registry, error) {
	c := config{
		reg:    Registry{flavor: flavor, named: make(map[string]ActionHandler)},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if problems := c.reg.validate(); len(problems) > 0 {
		msg := strings.Join(problems, "; ")
		if !c.lenient {
			return nil, &domain.ConstructionError{Reason: msg}
		}
		c.logger.Warn("action registry validation failed", "problems", msg)
	}
	return &c.reg, nil
}

func (r *Registry) validate() []string {
	var problems []string

	switch r.flavor {
	case FlavorLegacy:
		if r.terminal == nil {
			problems = append(problems, "legacy flavor requires a 'say' terminal handler")
		}
		if h, ok := r.named["merge"]; !ok || h == nil {
			problems = append(problems, "legacy flavor requires a 'merge' action handler")
		}
		if r.onError == nil {
			problems = append(problems, "legacy flavor requires an error handler")
		}
	default:
		if r.terminal == nil {
			problems = append(problems, "a 'send' terminal handler is required")
		}
	}

	// Nil named handlers are never silently substituted.
	var nilNames []string
	for name, h := range r.named {
		if h == nil {
			nilNames = append(nilNames, name)
		}
	}
	sort.Strings(nilNames)
	for _, name := range nilNames {
		problems = append(problems, "action '"+name+"' has a nil handler")
	}
	return problems
}

// Flavor reports which callback contract the registry was built for.
func (r *Registry) Flavor() Flavor { return r.flavor }

// Terminal returns the terminal handler, or nil if none was registered
// (possible only in lenient mode).
func (r *Registry) Terminal() TerminalHandler { return r.terminal }

// ErrorHandler returns the registered error handler, or nil.
func (r *Registry) ErrorHandler() ErrorHandler { return r.onError }

// Get looks up a named action handler. A missing or nil entry yields
// *domain.UnknownActionError, which is fatal to the current turn sequence.
func (r *Registry) Get(name string) (ActionHandler, error) {
	h, ok := r.named[name]
	if !ok || h == nil {
		return nil, &domain.UnknownActionError{Name: name}
	}
	return h, nil
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
