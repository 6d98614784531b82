package domain

import (
	"fmt"
	"strings"
)

// APIError represents a non-2xx response from the TestRail API.
// It carries the status code, status text, and the raw response body so the
// caller sees exactly what the remote side reported.
type APIError struct {
	StatusCode int
	StatusText string
	Body       string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error (status %d %s): %s", e.StatusCode, e.StatusText, e.Body)
	}
	return fmt.Sprintf("API error (status %d %s)", e.StatusCode, e.StatusText)
}

// NewAPIError creates a new APIError with the given status code, status text,
// and response body.
func NewAPIError(statusCode int, statusText string, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		StatusText: statusText,
		Body:       body,
	}
}

// FieldIssue describes a single violated constraint on one argument field.
type FieldIssue struct {
	Field   string
	Message string
}

// String renders the issue as "field: message".
func (i FieldIssue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError reports every argument constraint an operation request
// violated. Each field that failed produces its own issue so the caller can
// correct all of them at once.
type ValidationError struct {
	Operation Operation
	Issues    []FieldIssue
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	issues := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		issues[i] = issue.String()
	}
	return fmt.Sprintf("invalid arguments for %s: %s", e.Operation, strings.Join(issues, "; "))
}

// HasField reports whether the error contains an issue for the named field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
