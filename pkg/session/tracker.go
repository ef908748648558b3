package session

import "sync"

// Tracker records, per session ID, the generation of the most recently
// started conversation run. It is owned by the client instance, never by
// package-level state, so independent clients in one process do not share
// sessions.
//
// Begin, Current and End are atomic with respect to each other; they are the
// only genuinely shared mutable state between concurrent runs.
type Tracker struct {
	mu   sync.Mutex
	gens map[string]uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{gens: make(map[string]uint64)}
}

// Begin claims a new generation for the session and returns it. Any run
// holding an older generation for the same session is thereby superseded.
func (t *Tracker) Begin(sessionID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gens[sessionID]++
	return t.gens[sessionID]
}

// Current returns the session's current generation. The second return is
// false when no run is in flight for the session.
func (t *Tracker) Current(sessionID string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	gen, ok := t.gens[sessionID]
	return gen, ok
}

// End removes the session's entry iff its current generation still equals
// generation. A superseded run calling End is a no-op: the newer run owns
// cleanup.
func (t *Tracker) End(sessionID string, generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gens[sessionID] == generation {
		delete(t.gens, sessionID)
	}
}

// Active returns the number of sessions with an in-flight run.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.gens)
}
