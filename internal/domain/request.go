package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// apiPath is the remote API entry point. The remote routes every call through
// index.php, so the path itself opens the query string and any further
// parameters are appended with '&'.
const apiPath = "/index.php?/api/v2/"

// ResolvedRequest is one fully formed HTTP call against the remote API. It is
// constructed fresh per tool call and discarded once the call completes.
type ResolvedRequest struct {
	Method string
	URL    string
	Body   []byte // JSON payload, nil when the operation carries none
}

// HasBody reports whether the request carries a JSON payload.
func (r *ResolvedRequest) HasBody() bool {
	return r.Body != nil
}

// BuildRequest maps a validated operation request onto the remote API. It is
// a pure function of its inputs: the URL is the base endpoint plus the
// operation verb, the positional entity id, and the query filters that were
// supplied; the body forwards the remaining arguments per the operation's
// body assembly rules.
func BuildRequest(baseURL string, op Operation, args Arguments) (*ResolvedRequest, error) {
	spec, ok := Lookup(op)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	// Build the URL path from the operation verb and the positional id
	var sb strings.Builder
	sb.WriteString(baseURL)
	sb.WriteString(apiPath)
	sb.WriteString(op.String())
	if spec.PathArg != "" {
		id, ok := asInt(args[spec.PathArg])
		if !ok {
			return nil, fmt.Errorf("operation %s requires integer %s", op, spec.PathArg)
		}
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatInt(id, 10))
	}

	// Append the query filters that were supplied
	for _, name := range spec.Query {
		value, present := args[name]
		if !present || value == nil {
			continue
		}
		sb.WriteByte('&')
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(queryValue(value)))
	}

	// The soft flag uses the remote's numeric convention
	if spec.Soft {
		if soft, present := args["soft"]; present {
			if enabled, ok := soft.(bool); ok {
				sb.WriteString("&soft=")
				if enabled {
					sb.WriteByte('1')
				} else {
					sb.WriteByte('0')
				}
			}
		}
	}

	body, err := buildBody(spec, args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s body: %w", op, err)
	}

	return &ResolvedRequest{
		Method: spec.Method,
		URL:    sb.String(),
		Body:   body,
	}, nil
}

// buildBody assembles the JSON payload for write operations. Passthrough
// operations forward every argument not consumed by the URL; the rest forward
// only their declared body fields. An explicit null survives for nullable
// fields so the remote can tell "move to root" apart from "leave unchanged".
func buildBody(spec OpSpec, args Arguments) ([]byte, error) {
	if !spec.Passthrough && len(spec.BodyFields) == 0 {
		return nil, nil
	}

	payload := make(map[string]interface{})
	if spec.Passthrough {
		consumed := map[string]bool{"operation": true, "soft": true}
		if spec.PathArg != "" {
			consumed[spec.PathArg] = true
		}
		for _, name := range spec.Query {
			consumed[name] = true
		}
		for name, value := range args {
			if !consumed[name] {
				payload[name] = value
			}
		}
	} else {
		for _, name := range spec.BodyFields {
			if value, present := args[name]; present {
				payload[name] = value
			}
		}
	}

	return json.Marshal(payload)
}

// queryValue renders a query parameter value in the remote's conventions:
// booleans become 1/0, integers lose any float formatting artifacts.
func queryValue(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case string:
		return v
	default:
		if n, ok := asInt(value); ok {
			return strconv.FormatInt(n, 10)
		}
		return fmt.Sprintf("%v", value)
	}
}
