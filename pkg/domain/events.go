package domain

import (
	"context"
	"time"
)

// EventType categorizes driver lifecycle events.
type EventType string

const (
	EventTurn         EventType = "turn"
	EventActionCall   EventType = "action_call"
	EventActionReturn EventType = "action_return"
	EventMessage      EventType = "message"
	EventStale        EventType = "stale"
)

// TurnEvent describes one request/response cycle against the decision
// endpoint.
type TurnEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	Generation uint64    `json:"generation"`
	Step       int       `json:"step"` // steps remaining before this turn
	Kind       string    `json:"kind"` // classified response kind
	Duration   time.Duration
}

// ActionEvent describes the dispatch of a registered action handler.
type ActionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Action    string    `json:"action"`
	IsError   bool      `json:"is_error,omitempty"`
	Duration  time.Duration
}

// MessageEvent describes a terminal message delivered to the host.
type MessageEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	Type         EventType `json:"type"`
	SessionID    string    `json:"session_id"`
	Text         string    `json:"text"`
	QuickReplies []string  `json:"quickreplies,omitempty"`
}

// LifecycleHooks are observability callbacks fired by the conversation
// driver. All fields are optional; nil hooks are skipped. Hooks run
// synchronously on the driver's goroutine and must not block.
type LifecycleHooks struct {
	OnTurn         func(context.Context, *TurnEvent)
	OnActionCall   func(context.Context, *ActionEvent)
	OnActionReturn func(context.Context, *ActionEvent)
	OnMessage      func(context.Context, *MessageEvent)
	OnStale        func(context.Context, *TurnEvent)
}

// Merge combines two hook sets; both callbacks fire, h's first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTurn:         mergeHook(h.OnTurn, other.OnTurn),
		OnActionCall:   mergeHook(h.OnActionCall, other.OnActionCall),
		OnActionReturn: mergeHook(h.OnActionReturn, other.OnActionReturn),
		OnMessage:      mergeHook(h.OnMessage, other.OnMessage),
		OnStale:        mergeHook(h.OnStale, other.OnStale),
	}
}

func mergeHook[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, ev E) {
		a(ctx, ev)
		b(ctx, ev)
	}
}
