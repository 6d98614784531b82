package domain

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// Credentials stores the TestRail identity used for Basic authentication.
// TestRail authenticates every API call with the account email and an API key.
type Credentials struct {
	Email  string
	APIKey string
}

// CredentialsFromConfig extracts credentials from a validated configuration.
func CredentialsFromConfig(config *Config) *Credentials {
	return &Credentials{
		Email:  config.TestRail.Email,
		APIKey: config.TestRail.APIKey,
	}
}

// Validate checks that both credential fields are present.
func (c *Credentials) Validate() error {
	if c == nil {
		return fmt.Errorf("credentials cannot be nil")
	}
	if c.Email == "" {
		return fmt.Errorf("email is required for basic authentication")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is required for basic authentication")
	}
	return nil
}

// NewAuthenticatedClient returns an HTTP client that attaches the Basic
// authentication header to every request it sends.
// Returns an error if the credentials are incomplete.
func NewAuthenticatedClient(creds *Credentials) (*http.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: &basicAuthTransport{
			base:        http.DefaultTransport,
			credentials: creds,
		},
	}, nil
}

// basicAuthTransport is an http.RoundTripper that adds the Basic
// authentication header.
type basicAuthTransport struct {
	base        http.RoundTripper
	credentials *Credentials
}

// RoundTrip implements http.RoundTripper by adding the authentication header.
func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())

	auth := t.credentials.Email + ":" + t.credentials.APIKey
	encodedAuth := base64.StdEncoding.EncodeToString([]byte(auth))
	clonedReq.Header.Set("Authorization", "Basic "+encodedAuth)

	return t.base.RoundTrip(clonedReq)
}
