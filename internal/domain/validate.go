package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Arguments is the raw argument object of one tool call, decoded from JSON.
// Numbers arrive as float64 or json.Number depending on the decoder.
type Arguments map[string]interface{}

// Validate checks a raw argument object against an operation's contract.
// It runs two passes: a base shape pass over every supplied field (positive
// integral IDs, non-empty names, suite_mode within [1,3], non-empty positive
// id lists) and a required-field pass keyed on the operation. All violations
// are collected so the caller receives one issue per broken constraint.
func Validate(op Operation, args Arguments) error {
	spec, ok := Lookup(op)
	if !ok {
		return &ValidationError{
			Operation: op,
			Issues:    []FieldIssue{{Field: "operation", Message: fmt.Sprintf("unknown operation %q", op)}},
		}
	}

	var issues []FieldIssue

	// Check base field shapes for every supplied argument
	for _, field := range FamilyFields(spec.Family) {
		value, present := args[field.Name]
		if !present {
			continue
		}
		if value == nil {
			if !spec.allowsNull(field.Name) {
				issues = append(issues, FieldIssue{Field: field.Name, Message: "must not be null"})
			}
			continue
		}
		if issue, ok := checkShape(field, value); !ok {
			issues = append(issues, issue)
		}
	}

	// Check that every field the operation requires is present
	for _, name := range spec.Required {
		if _, present := args[name]; !present {
			issues = append(issues, FieldIssue{Field: name, Message: "required"})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Operation: op, Issues: issues}
	}
	return nil
}

// allowsNull reports whether the operation accepts an explicit null for the
// named field. Only nullable reparent fields qualify.
func (s OpSpec) allowsNull(name string) bool {
	for _, n := range s.Nullable {
		if n == name {
			return true
		}
	}
	return false
}

// checkShape validates one supplied value against its field kind.
func checkShape(field Field, value interface{}) (FieldIssue, bool) {
	switch field.Kind {
	case KindID, KindNullableID:
		n, ok := asInt(value)
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an integer"}, false
		}
		if n <= 0 {
			return FieldIssue{Field: field.Name, Message: "must be a positive integer"}, false
		}
	case KindLimit:
		n, ok := asInt(value)
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an integer"}, false
		}
		if n <= 0 {
			return FieldIssue{Field: field.Name, Message: "must be a positive integer"}, false
		}
	case KindOffset:
		n, ok := asInt(value)
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an integer"}, false
		}
		if n < 0 {
			return FieldIssue{Field: field.Name, Message: "must not be negative"}, false
		}
	case KindSuiteMode:
		n, ok := asInt(value)
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an integer"}, false
		}
		if n < 1 || n > 3 {
			return FieldIssue{Field: field.Name, Message: "must be between 1 and 3"}, false
		}
	case KindName:
		s, ok := value.(string)
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be a string"}, false
		}
		if s == "" {
			return FieldIssue{Field: field.Name, Message: "must not be empty"}, false
		}
	case KindText:
		if _, ok := value.(string); !ok {
			return FieldIssue{Field: field.Name, Message: "must be a string"}, false
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return FieldIssue{Field: field.Name, Message: "must be a boolean"}, false
		}
	case KindIDList:
		list, ok := value.([]interface{})
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an array of integers"}, false
		}
		if len(list) == 0 {
			return FieldIssue{Field: field.Name, Message: "must not be empty"}, false
		}
		for i, item := range list {
			n, ok := asInt(item)
			if !ok || n <= 0 {
				return FieldIssue{Field: field.Name, Message: fmt.Sprintf("element %d must be a positive integer", i)}, false
			}
		}
	case KindStepList:
		list, ok := value.([]interface{})
		if !ok {
			return FieldIssue{Field: field.Name, Message: "must be an array of objects"}, false
		}
		for i, item := range list {
			if _, ok := item.(map[string]interface{}); !ok {
				return FieldIssue{Field: field.Name, Message: fmt.Sprintf("element %d must be an object", i)}, false
			}
		}
	}
	return FieldIssue{}, true
}

// asInt converts a decoded JSON value to an int64, accepting only integral
// numbers. Fractional values are rejected rather than truncated, and values
// outside the int64 range are rejected rather than converted.
func asInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		// math.MaxInt64 rounds up to 2^63 as a float64, so the upper
		// bound has to be excluded.
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
