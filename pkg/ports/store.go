package ports

import (
	"context"

	"github.com/aretw0/witgo/pkg/domain"
)

// ContextStore persists conversation contexts between client invocations.
// This is optional infrastructure for hosts that want a session to survive a
// process restart (e.g. the interactive CLI); the conversation driver itself
// never touches it.
type ContextStore interface {
	// Save persists the context for a session ID.
	Save(ctx context.Context, sessionID string, c domain.Context) error

	// Load retrieves the context for a session ID. Returns
	// domain.ErrSessionNotFound when the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.Context, error)

	// Delete removes the context for a session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs with a persisted context.
	List(ctx context.Context) ([]string, error)
}
