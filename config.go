package langbridge

import (
	"log/slog"
	"time"

	"github.com/ourstudio-se/langbridge/languages"
	"github.com/ourstudio-se/langbridge/preference"
	"github.com/ourstudio-se/langbridge/translate"
)

// Config configures a Bot instance.
type Config struct {
	// Provider is the translation backend.
	// Required.
	Provider translate.Provider

	// Preferences is the per-user language preference store.
	// Required.
	Preferences preference.Store

	// Languages is the ordered set of supported languages; the first entry is
	// the canonical language downstream logic operates in.
	// Required, at least two languages.
	Languages *languages.Registry

	// Handler is the terminal turn logic.
	// Optional - defaults to the language selection dialog.
	Handler TurnHandler

	// Middleware runs after the language adaptation middleware, in order.
	// Optional.
	Middleware []Middleware

	// Logger is the structured logger.
	// Optional - defaults to slog.Default().
	Logger *slog.Logger

	// RequestTimeout is the maximum time for processing one turn over HTTP.
	// Defaults to 30 seconds.
	RequestTimeout time.Duration

	// AllowedOrigins for CORS in the HTTP server.
	// Defaults to allowing all origins.
	AllowedOrigins []string
}

// withDefaults applies default values to the config.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	return c
}

// validate checks that required config fields are set.
func (c Config) validate() error {
	if c.Provider == nil {
		return NewMissingDependencyError("translation provider")
	}
	if c.Preferences == nil {
		return NewMissingDependencyError("preference store")
	}
	if c.Languages == nil {
		return NewMissingDependencyError("language registry")
	}
	if c.Languages.Len() < 2 {
		return NewConfigurationError("at least two languages are required", nil)
	}
	return nil
}
