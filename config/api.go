package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "http://localhost:8081"
	defaultAPITimeout = 30 * time.Second
)

// APIConfig contains the backend REST API client configuration.
type APIConfig struct {
	// BaseURL is the single backend base URL every call is resolved against.
	BaseURL string `env:"API_URL" envDefault:"http://localhost:8081"`

	// Timeout bounds each request, including the replay after a refresh.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64 `env:"API_RATE_LIMIT" envDefault:"0"`

	// RateBurst is the limiter burst size when RateLimit is set.
	RateBurst int `env:"API_RATE_BURST" envDefault:"10"`

	// UserAgent is sent with every request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"shoestore-client"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIBaseURL
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.RateLimit < 0 {
		a.RateLimit = 0
	}
	if a.RateBurst < 1 {
		a.RateBurst = 1
	}
	a.UserAgent = strings.TrimSpace(a.UserAgent)
}
