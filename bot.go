package langbridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ourstudio-se/langbridge/languages"
	"github.com/ourstudio-se/langbridge/preference"
	"github.com/ourstudio-se/langbridge/translate"
)

// Bot is the per-turn processing pipeline: the language adaptation middleware,
// any additional middleware, and a terminal handler.
type Bot struct {
	config     Config
	translator *translate.Client
	prefs      preference.Store
	langs      *languages.Registry
	middleware []Middleware
	handler    TurnHandler
	logger     *slog.Logger
}

// New creates a new Bot instance with the given configuration.
func New(cfg Config) (*Bot, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	translator := translate.NewClient(cfg.Provider, cfg.Languages, cfg.Logger)

	middleware := make([]Middleware, 0, len(cfg.Middleware)+1)
	middleware = append(middleware, NewLanguageMiddleware(translator, cfg.Preferences, cfg.Languages, cfg.Logger))
	middleware = append(middleware, cfg.Middleware...)

	handler := cfg.Handler
	if handler == nil {
		handler = NewLanguageDialog(cfg.Preferences, cfg.Languages, cfg.Logger).Handle
	}

	return &Bot{
		config:     cfg,
		translator: translator,
		prefs:      cfg.Preferences,
		langs:      cfg.Languages,
		middleware: middleware,
		handler:    handler,
		logger:     cfg.Logger,
	}, nil
}

// Translator returns the guarded translation client the bot uses.
func (b *Bot) Translator() *translate.Client {
	return b.translator
}

// Languages returns the configured language registry.
func (b *Bot) Languages() *languages.Registry {
	return b.langs
}

// ProcessActivity runs one inbound activity through the middleware chain and
// the handler, delivering replies through transport. When the preference
// store batches writes, they are flushed once at the end of a successful
// turn; a failed or cancelled turn leaves the store untouched.
func (b *Bot) ProcessActivity(ctx context.Context, transport Transport, activity Activity) error {
	if activity.ID == "" {
		activity.ID = NewActivityID()
	}

	tc := NewTurnContext(transport, activity)

	b.logger.Debug("processing turn",
		slog.String("activity_id", activity.ID),
		slog.String("scope_key", tc.ScopeKey()),
	)

	if err := b.runMiddleware(ctx, tc, 0); err != nil {
		return err
	}

	if flusher, ok := b.prefs.(preference.Flusher); ok {
		if err := flusher.Flush(ctx); err != nil {
			return NewStoreError("flushing preference changes", err)
		}
	}

	return nil
}

// HTTPHandler returns an HTTP handler exposing the bot.
func (b *Bot) HTTPHandler() http.Handler {
	return NewServer(b).Handler()
}

func (b *Bot) runMiddleware(ctx context.Context, tc *TurnContext, index int) error {
	if index >= len(b.middleware) {
		return b.handler(ctx, tc)
	}

	next := func(ctx context.Context) error {
		return b.runMiddleware(ctx, tc, index+1)
	}

	return b.middleware[index].OnTurn(ctx, tc, next)
}
