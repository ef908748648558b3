package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Entity is a single extracted entity occurrence as returned by the API.
// The shape is schema-free on the wire; the common fields are "value",
// "confidence", "start" and "end".
type Entity map[string]any

// Entities maps an entity name (e.g. "location", or the namespaced
// "wit$datetime:datetime" form) to the occurrences found in the utterance.
type Entities map[string][]Entity

// FirstEntityValue returns the resolved value of the first occurrence of the
// named entity, or "" if the entity is absent or carries no usable value.
// When the value is itself an object (interval or resolved values), its
// nested "value" field is used.
func FirstEntityValue(entities Entities, name string) string {
	occ, ok := entities[name]
	if !ok || len(occ) == 0 {
		return ""
	}
	val, ok := occ[0]["value"]
	if !ok {
		return ""
	}
	if nested, ok := val.(map[string]any); ok {
		val = nested["value"]
	}
	s, _ := val.(string)
	return s
}

// DecodeEntity decodes an entity occurrence into a caller-supplied struct,
// honoring `mapstructure` tags. Numeric wire values decode into the target's
// numeric kinds.
func DecodeEntity(e Entity, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to build entity decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(e)); err != nil {
		return fmt.Errorf("failed to decode entity: %w", err)
	}
	return nil
}
