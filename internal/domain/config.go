package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
// This is the root configuration structure loaded from YAML files,
// optionally overridden by environment variables.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	TestRail  TestRailConfig  `yaml:"testrail"`
	Tools     ToolsConfig     `yaml:"tools"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TestRailConfig defines the connection to the TestRail instance.
// All three values are required and are read once at startup.
type TestRailConfig struct {
	BaseURL string `yaml:"base_url"`
	Email   string `yaml:"email"`
	APIKey  string `yaml:"api_key"`
}

// ToolsConfig defines how TestRail tools are registered.
type ToolsConfig struct {
	Mode string `yaml:"mode"` // "combined" (one tool per family) or "split" (one tool per operation)
}

// Tool registration modes.
const (
	ToolModeCombined = "combined"
	ToolModeSplit    = "split"
)

// Environment variables that override the TestRail connection values.
const (
	EnvBaseURL = "TESTRAIL_BASE_URL"
	EnvEmail   = "TESTRAIL_EMAIL"
	EnvAPIKey  = "TESTRAIL_API_KEY"
)

// LoadConfig reads and validates configuration from a YAML file.
// A missing file is not fatal when the environment supplies the TestRail
// connection values; parse errors and validation failures are.
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
		}
	case os.IsNotExist(err):
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides replaces TestRail connection values with environment
// variables when they are set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.TestRail.BaseURL = v
	}
	if v := os.Getenv(EnvEmail); v != "" {
		c.TestRail.Email = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.TestRail.APIKey = v
	}
}

// applyDefaults fills in optional settings before validation.
func (c *Config) applyDefaults() {
	if c.Transport.Type == "" {
		c.Transport.Type = "stdio"
	}
	if c.Transport.Type == "http" && c.Transport.HTTP.Host == "" {
		c.Transport.HTTP.Host = "localhost"
	}
	if c.Tools.Mode == "" {
		c.Tools.Mode = ToolModeCombined
	}
	c.TestRail.BaseURL = strings.TrimRight(c.TestRail.BaseURL, "/")
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.TestRail.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.Tools.Mode != ToolModeCombined && c.Tools.Mode != ToolModeSplit {
		errors = append(errors, fmt.Sprintf("invalid tools mode '%s': must be 'combined' or 'split'", c.Tools.Mode))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates the TestRail connection configuration.
func (tc *TestRailConfig) Validate() error {
	var errors []string

	if tc.BaseURL == "" {
		errors = append(errors, "testrail base_url is required")
	} else {
		parsedURL, err := url.Parse(tc.BaseURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("testrail base_url is invalid: %v", err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, "testrail base_url must use http or https scheme")
		} else if parsedURL.Host == "" {
			errors = append(errors, "testrail base_url must include a host")
		}
	}

	if tc.Email == "" {
		errors = append(errors, "testrail email is required")
	} else if _, err := mail.ParseAddress(tc.Email); err != nil {
		errors = append(errors, fmt.Sprintf("testrail email '%s' is not a valid address", tc.Email))
	}

	if tc.APIKey == "" {
		errors = append(errors, "testrail api_key is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
