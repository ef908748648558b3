package domain

import (
	"errors"
	"fmt"
)

// ErrMaxStepsExceeded is returned by the conversation driver when the step
// budget is exhausted before the remote service concluded the conversation.
// It is the safety valve against infinite action chains and is never
// swallowed.
var ErrMaxStepsExceeded = errors.New("max converse steps exceeded")

// ErrSessionNotFound is returned when a session ID cannot be found in a
// context store.
var ErrSessionNotFound = errors.New("session not found")

// TransportError wraps a network-level failure reaching the remote endpoint.
// The driver does not retry it.
type TransportError struct {
	Op  string // "GET /message", "POST /converse", ...
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an explicit refusal from the API: a non-OK HTTP status or a
// JSON body carrying an "error" field. It is surfaced instead of a normal
// result.
type APIError struct {
	Status  int    // 0 when the failure came from the body, not the status
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("wit responded with status %d: %s", e.Status, e.Message)
	}
	return "wit responded with an error: " + e.Message
}

// ProtocolError reports a converse response whose shape could not be
// classified. Tag is empty when the tag field was missing entirely.
type ProtocolError struct {
	Tag string
}

func (e *ProtocolError) Error() string {
	if e.Tag == "" {
		return "converse response has no type tag"
	}
	return fmt.Sprintf("converse response has unknown type %q", e.Tag)
}

// RemoteRefusalError is the canonical "I don't know what to do" condition:
// the decision endpoint returned the error kind for the turn.
type RemoteRefusalError struct {
	SessionID string
}

func (e *RemoteRefusalError) Error() string {
	return fmt.Sprintf("wit could not resolve a next step for session %q", e.SessionID)
}

// UnknownActionError reports a classified action with no registered handler.
// It is fatal to the current run; no further remote calls are made.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("no handler registered for action %q", e.Name)
}

// ConstructionError reports an invalid action registry at strict-mode
// construction.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return "invalid action registry: " + e.Reason
}
