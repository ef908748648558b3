package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/witgo/pkg/domain"
)

// NewLoggingHooks returns hooks that log every driver event at debug level.
// Useful for CLI --debug runs and for tests that want a conversation trace.
func NewLoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, ev *domain.TurnEvent) {
			logger.Debug("turn",
				"session_id", ev.SessionID,
				"generation", ev.Generation,
				"kind", ev.Kind,
				"steps_remaining", ev.Step,
				"duration", ev.Duration,
			)
		},
		OnActionCall: func(_ context.Context, ev *domain.ActionEvent) {
			logger.Debug("action call", "session_id", ev.SessionID, "action", ev.Action)
		},
		OnActionReturn: func(_ context.Context, ev *domain.ActionEvent) {
			logger.Debug("action return",
				"session_id", ev.SessionID,
				"action", ev.Action,
				"is_error", ev.IsError,
				"duration", ev.Duration,
			)
		},
		OnMessage: func(_ context.Context, ev *domain.MessageEvent) {
			logger.Debug("message", "session_id", ev.SessionID, "text", ev.Text)
		},
		OnStale: func(_ context.Context, ev *domain.TurnEvent) {
			logger.Debug("run superseded", "session_id", ev.SessionID, "generation", ev.Generation)
		},
	}
}
