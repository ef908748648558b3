package runtime

import "github.com/aretw0/witgo/pkg/domain"

// Kind is the classified response kind. The set is closed: every converse
// response maps to exactly one kind or fails classification.
type Kind string

const (
	KindStop    Kind = "stop"
	KindMessage Kind = "message"
	KindAction  Kind = "action"
	KindError   Kind = "error"
)

// Step is the classified form of one converse response: the kind tag plus
// the kind-specific payload the driver dispatches on.
type Step struct {
	Kind         Kind
	Text         string
	QuickReplies []string
	Action       string
	Entities     domain.Entities
}

// Classify interprets a raw converse response into a Step. It is a pure
// function of its input.
//
// The legacy "merge" tag is normalized here, never in the driver: it
// classifies as an action named "merge", preserving old remote-service
// behavior under the current scheme. A missing or unknown tag fails with
// *domain.ProtocolError.
func Classify(resp *domain.ConverseResponse) (Step, error) {
	switch resp.Type {
	case domain.ConverseTypeStop:
		return Step{Kind: KindStop}, nil
	case domain.ConverseTypeMessage:
		return Step{Kind: KindMessage, Text: resp.Msg, QuickReplies: resp.QuickReplies}, nil
	case domain.ConverseTypeAction:
		return Step{Kind: KindAction, Action: resp.Action, Entities: resp.Entities}, nil
	case domain.ConverseTypeMerge:
		return Step{Kind: KindAction, Action: "merge", Entities: resp.Entities}, nil
	case domain.ConverseTypeError:
		return Step{Kind: KindError}, nil
	case "":
		return Step{}, &domain.ProtocolError{}
	default:
		return Step{}, &domain.ProtocolError{Tag: resp.Type}
	}
}
