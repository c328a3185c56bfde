package translate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ourstudio-se/langbridge/languages"
)

// Client wraps a Provider with the translation contract the middleware relies
// on: the bare-code guard and the empty-candidate pass-through.
type Client struct {
	provider Provider
	langs    *languages.Registry
	logger   *slog.Logger
}

// NewClient creates a guarded translation client.
func NewClient(provider Provider, langs *languages.Registry, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		provider: provider,
		langs:    langs,
		logger:   logger,
	}
}

// Translate translates text into the target language.
//
// Text that is exactly a supported language code is returned unchanged:
// generic providers are known to mangle bare codes ("en" to "in", "es" to
// "it"), which would break the code token the language dialog echoes back.
//
// A provider response with no candidates degrades to the original text.
// Transport failures propagate as *ProviderError.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if c.langs.IsSupported(strings.ToLower(text)) {
		return text, nil
	}

	start := time.Now()
	candidates, err := c.provider.Translate(ctx, text, targetLanguage)
	observeRequest(c.provider.Name(), time.Since(start))

	if err != nil {
		countRequest(c.provider.Name(), statusError)
		return "", err
	}

	if len(candidates) == 0 {
		countRequest(c.provider.Name(), statusSoftFallback)
		c.logger.Warn("provider returned no candidates, passing text through",
			slog.String("provider", c.provider.Name()),
			slog.String("target_language", targetLanguage),
		)
		return text, nil
	}

	countRequest(c.provider.Name(), statusOK)
	c.logger.Debug("text translated",
		slog.String("provider", c.provider.Name()),
		slog.String("target_language", targetLanguage),
		slog.Duration("duration", time.Since(start)),
	)

	return candidates[0].Text, nil
}
