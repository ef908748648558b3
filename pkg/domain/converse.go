package domain

// Converse response type tags as they appear on the wire. ConverseTypeMerge
// is a legacy shape still emitted by older API versions; the classifier
// normalizes it to an action named "merge".
const (
	ConverseTypeStop    = "stop"
	ConverseTypeMessage = "msg"
	ConverseTypeAction  = "action"
	ConverseTypeMerge   = "merge"
	ConverseTypeError   = "error"
)

// ConverseResponse is the raw decision-endpoint payload for one turn. It is
// ephemeral: consumed by the classifier within a single turn, never
// persisted.
type ConverseResponse struct {
	// Type is the response kind tag. An empty Type means the remote payload
	// lacked a recognizable tag field.
	Type string `json:"type"`

	// Msg and QuickReplies are set for ConverseTypeMessage.
	Msg          string   `json:"msg,omitempty"`
	QuickReplies []string `json:"quickreplies,omitempty"`

	// Action is set for ConverseTypeAction.
	Action string `json:"action,omitempty"`

	// Entities carries the entities extracted so far. Present on action and
	// merge responses.
	Entities Entities `json:"entities,omitempty"`

	// Confidence is the service's confidence in this decision.
	Confidence float64 `json:"confidence,omitempty"`
}
