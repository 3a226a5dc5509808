package config

import "fmt"

// HTTPConfig configures the operator API.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// AuditToken protects GET /api/audit when set.
	AuditToken string `json:"audit_token"`
	// ShutdownSeconds bounds the graceful shutdown.
	ShutdownSeconds int `json:"shutdown_seconds"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ShutdownSeconds <= 0 {
		c.ShutdownSeconds = 5
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("http addr is required")
	}
	return nil
}
