package llm

import (
	"net/http"
	"time"
)

const DefaultTimeout = 60 * time.Second

// Config selects and configures one backend.
type Config struct {
	Provider string
	APIKey   string
	Model    string // provider default when empty
	BaseURL  string // provider default when empty
	Timeout  time.Duration
}

// HTTPClient returns a client bounded by the configured timeout.
func (c Config) HTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// ModelOr returns the configured model or fallback when none is set.
func (c Config) ModelOr(fallback string) string {
	if c.Model != "" {
		return c.Model
	}
	return fallback
}
