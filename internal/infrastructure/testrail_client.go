package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"testrail-mcp-server/internal/domain"
)

// TestRailClient issues resolved requests against a TestRail instance.
// It implements the domain.Invoker interface. All calls share one
// authenticated HTTP client; the client holds no other state, so it is safe
// for concurrent use.
type TestRailClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTestRailClient creates a new TestRail API client.
// The baseURL should be the root URL of the TestRail instance
// (e.g., "https://example.testrail.io"). The httpClient should be an
// authenticated client from domain.NewAuthenticatedClient.
func NewTestRailClient(baseURL string, httpClient *http.Client) *TestRailClient {
	return &TestRailClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured base URL for the TestRail instance.
func (c *TestRailClient) BaseURL() string {
	return c.baseURL
}

// Send executes one resolved request and returns the raw response body.
// A non-2xx status becomes a *domain.APIError carrying the status code,
// status text, and response body verbatim.
func (c *TestRailClient) Send(ctx context.Context, req *domain.ResolvedRequest) ([]byte, error) {
	// Create the HTTP request
	var payload io.Reader
	if req.HasBody() {
		payload = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set common headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	// Execute the request using the authenticated HTTP client
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error status codes
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewAPIError(resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
	}

	return body, nil
}
