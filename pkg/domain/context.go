package domain

// Context is the conversation state threaded across turns. It is opaque
// payload to the driver: the remote service and the registered actions decide
// what lives in it (slots filled so far, computed results, flags).
//
// Ownership rule: the run that holds the session's current generation owns
// the context. Handlers always receive a snapshot (see Clone) to mutate and
// return, never the live reference, so a stale run cannot corrupt the context
// of the run that superseded it.
type Context map[string]any

// NewContext returns an empty, non-nil context.
func NewContext() Context {
	return make(Context)
}

// Clone returns a shallow copy of the context. Nested values are shared;
// handlers that mutate nested structures should replace them wholesale.
func (c Context) Clone() Context {
	if c == nil {
		return make(Context)
	}
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
