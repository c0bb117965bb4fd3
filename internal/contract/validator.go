// Package contract validates the data passed across engine boundaries.
//
// A Spec declares the field set an engine consumes or produces: names,
// kinds, and optionality. Validation reports every violation in a single
// aggregated error rather than failing on the first one, which keeps
// integration debugging efficient. The same specs are applied to engine
// inputs and outputs.
package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// Kind is the runtime kind a field must have.
type Kind int

const (
	String Kind = iota + 1
	Number
	Bool
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Field declares one contract field. Elem constrains list element kinds;
// zero means elements are unchecked.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Elem     Kind
}

// Spec is a named contract: the declared field set for one engine boundary.
type Spec struct {
	Name   string
	Fields []Field
}

// Document converts a context value into the map form the validator checks,
// via a JSON round trip. Field names follow the value's JSON encoding.
func Document(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrContractViolated.Code, "encode contract document", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.WrapEngineError(domain.ErrContractViolated.Code, "decode contract document", err)
	}
	return doc, nil
}

// Validate checks doc against the spec and returns an error listing all
// violations if any are found. A required field that is absent or null is
// reported as missing; a present field with the wrong runtime kind is
// reported as mismatched. List element kinds are checked recursively.
func (s Spec) Validate(doc map[string]any) error {
	var violations []string

	for _, f := range s.Fields {
		value, present := doc[f.Name]
		if !present || value == nil {
			if f.Required {
				violations = append(violations, fmt.Sprintf("missing required field %q", f.Name))
			}
			continue
		}

		if !kindMatches(f.Kind, value) {
			violations = append(violations, fmt.Sprintf(
				"field %q has kind %s, want %s", f.Name, kindOf(value), f.Kind))
			continue
		}

		if f.Kind == List && f.Elem != 0 {
			items := value.([]any)
			for i, item := range items {
				if item == nil || !kindMatches(f.Elem, item) {
					violations = append(violations, fmt.Sprintf(
						"field %q element %d has kind %s, want %s", f.Name, i, kindOf(item), f.Elem))
				}
			}
		}
	}

	if len(violations) > 0 {
		msg := fmt.Sprintf("contract %s: %s", s.Name, strings.Join(violations, "; "))
		return domain.NewEngineError(domain.ErrContractViolated.Code, msg)
	}
	return nil
}

// ValidateValue runs Document and Validate in one step.
func (s Spec) ValidateValue(v any) error {
	doc, err := Document(v)
	if err != nil {
		return err
	}
	return s.Validate(doc)
}

func kindMatches(k Kind, v any) bool {
	switch k {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		switch v.(type) {
		case float64, float32, int, int64, json.Number:
			return true
		}
		return false
	case Bool:
		_, ok := v.(bool)
		return ok
	case List:
		_, ok := v.([]any)
		return ok
	case Map:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
