package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeResponse converts the body of a successful remote call into the
// text returned to the caller. Delete operations answer with a fixed success
// message regardless of body, except soft deletes, which return the remote's
// preview of the affected entities. Everything else is pretty-printed when it
// parses as JSON and returned verbatim when it does not.
func NormalizeResponse(op Operation, args Arguments, body []byte) string {
	spec, _ := Lookup(op)
	text := strings.TrimSpace(string(body))

	if spec.Delete {
		// A soft delete surfaces the remote preview so the caller can see
		// what would be removed. A preview that does not parse falls back
		// to the fixed message.
		if softRequested(spec, args) {
			if pretty, ok := prettyJSON(text); ok {
				return pretty
			}
		}
		return successMessage(op)
	}

	if text == "" {
		return successMessage(op)
	}

	if pretty, ok := prettyJSON(text); ok {
		return pretty
	}

	// The remote does not guarantee JSON for every endpoint
	return text
}

// softRequested reports whether the call asked for a deletion preview.
func softRequested(spec OpSpec, args Arguments) bool {
	if !spec.Soft {
		return false
	}
	enabled, ok := args["soft"].(bool)
	return ok && enabled
}

// successMessage is the fixed result for operations whose response body
// carries no information worth forwarding.
func successMessage(op Operation) string {
	return fmt.Sprintf("Successfully executed %s.", op)
}

// prettyJSON re-indents a JSON document for readability. The second return
// value is false when the input is not a single valid JSON document.
func prettyJSON(text string) (string, bool) {
	// Decode stops after the first complete JSON value, so a body with
	// trailing content has to be rejected up front to stay verbatim.
	if !json.Valid([]byte(text)) {
		return "", false
	}
	var decoded interface{}
	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil {
		return "", false
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return "", false
	}
	return string(pretty), true
}
