package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/pkg/actions"
	"github.com/aretw0/witgo/pkg/domain"
	"github.com/aretw0/witgo/pkg/session"
)

// ConverseFunc performs one decision-endpoint call for a turn. The message
// is non-empty only on the first turn of a run.
type ConverseFunc func(ctx context.Context, sessionID, message string, c domain.Context) (*domain.ConverseResponse, error)

// Driver executes the action-dispatch loop: it repeatedly calls the decision
// endpoint, classifies the response, invokes the registered handlers and
// threads the context from turn to turn until the conversation concludes or
// the step budget runs out.
//
// Concurrency is handled by generation checking, not locking: each run claims
// a generation from the tracker, and checks before dispatching each turn that
// no newer run has claimed the session. A superseded run stops cooperatively
// without further side effects.
type Driver struct {
	converse         ConverseFunc
	registry         *actions.Registry
	tracker          *session.Tracker
	logger           *slog.Logger
	hooks            domain.LifecycleHooks
	stopAfterMessage bool
}

// DriverOption configures the driver.
type DriverOption func(*Driver)

// WithLogger sets the driver's logger.
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = logger }
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) DriverOption {
	return func(d *Driver) { d.hooks = hooks }
}

// WithStopAfterMessage controls whether a message turn concludes the run
// (the default) or the loop keeps calling the decision endpoint after the
// terminal handler fires. Both behaviors exist in the wild; the policy is
// explicit so hosts get the one their callbacks expect.
func WithStopAfterMessage(stop bool) DriverOption {
	return func(d *Driver) { d.stopAfterMessage = stop }
}

// NewDriver wires a driver from its collaborators.
func NewDriver(converse ConverseFunc, registry *actions.Registry, tracker *session.Tracker, opts ...DriverOption) *Driver {
	d := &Driver{
		converse:         converse,
		registry:         registry,
		tracker:          tracker,
		logger:           logging.NewNop(),
		stopAfterMessage: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunActions drives the conversation for sessionID starting from the user
// message and the supplied context, for at most maxSteps turns. It returns
// the final context.
//
// A run superseded by a newer RunActions call for the same session returns
// the context accumulated so far with a nil error: supersession is expected,
// not a failure. Every other abnormal condition propagates as a domain error
// and is never retried here.
func (d *Driver) RunActions(ctx context.Context, sessionID, message string, c domain.Context, maxSteps int) (domain.Context, error) {
	if c == nil {
		c = domain.NewContext()
	}

	generation := d.tracker.Begin(sessionID)
	defer d.tracker.End(sessionID, generation)

	remaining := maxSteps
	userMessage := message // preserved for handler payloads across turns

	for {
		if remaining <= 0 {
			return c, fmt.Errorf("session %q: %w", sessionID, domain.ErrMaxStepsExceeded)
		}

		started := time.Now()
		resp, err := d.converse(ctx, sessionID, message, c)
		if err != nil {
			return c, err
		}
		step, err := Classify(resp)
		if err != nil {
			return c, err
		}
		d.emitTurn(ctx, sessionID, generation, remaining, step, time.Since(started))

		// Race-avoidance rule: only the most recently started run may keep
		// invoking handlers on this session.
		if current, ok := d.tracker.Current(sessionID); !ok || current != generation {
			d.logger.Debug("run superseded, stopping", "session_id", sessionID, "generation", generation)
			d.emitStale(ctx, sessionID, generation, remaining)
			return c, nil
		}

		req := actions.Request{
			SessionID: sessionID,
			Context:   c.Clone(),
			Message:   userMessage,
			Entities:  step.Entities,
		}

		switch step.Kind {
		case KindStop:
			return c, nil

		case KindError:
			refusal := &domain.RemoteRefusalError{SessionID: sessionID}
			if h := d.registry.ErrorHandler(); h != nil {
				h(ctx, req, refusal)
			}
			return c, refusal

		case KindMessage:
			if err := d.deliverMessage(ctx, req, step); err != nil {
				return c, err
			}
			if d.stopAfterMessage {
				return c, nil
			}
			remaining--
			message = ""

		case KindAction:
			next, err := d.dispatchAction(ctx, req, step)
			if err != nil {
				return c, err
			}
			c = next
			remaining--
			// Only the first call of a run carries the user-entered text.
			message = ""
		}
	}
}

func (d *Driver) deliverMessage(ctx context.Context, req actions.Request, step Step) error {
	terminal := d.registry.Terminal()
	if terminal == nil {
		name := "send"
		if d.registry.Flavor() == actions.FlavorLegacy {
			name = "say"
		}
		return &domain.UnknownActionError{Name: name}
	}

	resp := actions.Response{Text: step.Text, QuickReplies: step.QuickReplies}
	if err := terminal(ctx, req, resp); err != nil {
		return fmt.Errorf("terminal handler failed: %w", err)
	}
	if d.hooks.OnMessage != nil {
		d.hooks.OnMessage(ctx, &domain.MessageEvent{
			Timestamp:    time.Now(),
			Type:         domain.EventMessage,
			SessionID:    req.SessionID,
			Text:         step.Text,
			QuickReplies: step.QuickReplies,
		})
	}
	return nil
}

func (d *Driver) dispatchAction(ctx context.Context, req actions.Request, step Step) (domain.Context, error) {
	handler, err := d.registry.Get(step.Action)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	if d.hooks.OnActionCall != nil {
		d.hooks.OnActionCall(ctx, &domain.ActionEvent{
			Timestamp: started,
			Type:      domain.EventActionCall,
			SessionID: req.SessionID,
			Action:    step.Action,
		})
	}

	next, err := handler(ctx, req)

	if d.hooks.OnActionReturn != nil {
		d.hooks.OnActionReturn(ctx, &domain.ActionEvent{
			Timestamp: time.Now(),
			Type:      domain.EventActionReturn,
			SessionID: req.SessionID,
			Action:    step.Action,
			IsError:   err != nil,
			Duration:  time.Since(started),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("action %q failed: %w", step.Action, err)
	}

	// Handler contract violation, tolerated: substitute an empty context so
	// the conversation can proceed.
	if next == nil {
		d.logger.Warn("action returned no context, substituting an empty one",
			"action", step.Action, "session_id", req.SessionID)
		next = domain.NewContext()
	}
	return next, nil
}

func (d *Driver) emitTurn(ctx context.Context, sessionID string, generation uint64, remaining int, step Step, dur time.Duration) {
	if d.hooks.OnTurn == nil {
		return
	}
	d.hooks.OnTurn(ctx, &domain.TurnEvent{
		Timestamp:  time.Now(),
		Type:       domain.EventTurn,
		SessionID:  sessionID,
		Generation: generation,
		Step:       remaining,
		Kind:       string(step.Kind),
		Duration:   dur,
	})
}

func (d *Driver) emitStale(ctx context.Context, sessionID string, generation uint64, remaining int) {
	if d.hooks.OnStale == nil {
		return
	}
	d.hooks.OnStale(ctx, &domain.TurnEvent{
		Timestamp:  time.Now(),
		Type:       domain.EventStale,
		SessionID:  sessionID,
		Generation: generation,
		Step:       remaining,
	})
}
