package web

import (
	"fmt"
	"os"
	"time"
)

// Config holds web server settings.
type Config struct {
	// Addr is the listen address. Default: ":8501"
	Addr string

	// MaxUploadBytes caps the uploaded PDF and JSON request bodies.
	MaxUploadBytes int64

	// SessionIdle is how long an unused session is kept.
	SessionIdle time.Duration

	// SweepInterval is how often idle sessions are removed.
	SweepInterval time.Duration

	// Timeout bounds one generation. Zero means no limit.
	Timeout time.Duration

	// PreferredModel and FallbackModel drive the model dropdown.
	PreferredModel string
	FallbackModel  string

	// SecureCookie marks the session cookie Secure. Enable behind TLS.
	SecureCookie bool
}

// DefaultConfig returns the settings used by `examgen serve`.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8501",
		MaxUploadBytes: 20 << 20,
		SessionIdle:    2 * time.Hour,
		SweepInterval:  10 * time.Minute,
		Timeout:        3 * time.Minute,
		PreferredModel: "1.5-flash",
		FallbackModel:  "gemini-1.5-flash",
	}
}

// ConfigFromEnv applies EXAMGEN_ADDR over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if a := os.Getenv("EXAMGEN_ADDR"); a != "" {
		cfg.Addr = a
	}
	return cfg
}

// Validate checks the limits.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes)
	}
	if c.SessionIdle <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("session idle and sweep interval must be positive")
	}
	if c.FallbackModel == "" {
		return fmt.Errorf("fallback model is required")
	}
	return nil
}
