package domain

// Intent is one intent candidate resolved for an utterance.
type Intent struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Trait is one trait value resolved for an utterance (e.g. sentiment).
type Trait struct {
	ID         string  `json:"id"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// MessageResponse is the structured interpretation returned by the /message
// and /speech endpoints.
type MessageResponse struct {
	Text     string             `json:"text"`
	Intents  []Intent           `json:"intents"`
	Entities Entities           `json:"entities"`
	Traits   map[string][]Trait `json:"traits"`
}

// TopIntent returns the highest-confidence intent, or nil when the service
// resolved none.
func (m *MessageResponse) TopIntent() *Intent {
	if m == nil || len(m.Intents) == 0 {
		return nil
	}
	best := &m.Intents[0]
	for i := range m.Intents[1:] {
		if m.Intents[i+1].Confidence > best.Confidence {
			best = &m.Intents[i+1]
		}
	}
	return best
}
