package domain

import (
	"context"
)

// Invoker sends resolved requests to the remote TestRail API.
// The infrastructure layer implements it with an authenticated HTTP client;
// tests substitute in-memory fakes.
type Invoker interface {
	// BaseURL returns the configured root URL of the TestRail instance,
	// without a trailing slash.
	BaseURL() string

	// Send executes one resolved request and returns the raw response body.
	// A non-2xx response is returned as an *APIError carrying the status
	// code, status text, and body verbatim. Any other error means the call
	// itself could not complete.
	Send(ctx context.Context, req *ResolvedRequest) ([]byte, error)
}
