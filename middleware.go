package langbridge

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ourstudio-se/langbridge/languages"
	"github.com/ourstudio-se/langbridge/preference"
	"github.com/ourstudio-se/langbridge/translate"
)

// NextFunc continues the turn with the next middleware or the handler.
type NextFunc func(ctx context.Context) error

// Middleware wraps the processing of one turn.
type Middleware interface {
	// OnTurn processes the turn and must invoke next exactly once to hand
	// control downstream.
	OnTurn(ctx context.Context, tc *TurnContext, next NextFunc) error
}

// LanguageMiddleware adapts a turn between the user's preferred language and
// the canonical language downstream logic operates in. Inbound text is
// translated to the canonical language before the handler sees it; outbound
// replies are translated to the preference in force at send time.
type LanguageMiddleware struct {
	translator *translate.Client
	prefs      preference.Store
	langs      *languages.Registry
	logger     *slog.Logger
}

// NewLanguageMiddleware creates the adaptation middleware.
func NewLanguageMiddleware(translator *translate.Client, prefs preference.Store, langs *languages.Registry, logger *slog.Logger) *LanguageMiddleware {
	if logger == nil {
		logger = slog.Default()
	}

	return &LanguageMiddleware{
		translator: translator,
		prefs:      prefs,
		langs:      langs,
		logger:     logger,
	}
}

// OnTurn translates the inbound activity when the user's preference differs
// from the canonical language, registers the outbound interceptor, and hands
// control downstream.
func (m *LanguageMiddleware) OnTurn(ctx context.Context, tc *TurnContext, next NextFunc) error {
	canonical := m.langs.Default().Code
	preferred := m.preferredLanguage(ctx, tc)

	if preferred != canonical {
		if text := tc.Activity().Text; text != "" {
			translated, err := m.translator.Translate(ctx, text, canonical)
			if err != nil {
				return err
			}

			inbound := tc.Activity().WithText(translated)
			inbound.Locale = canonical
			tc.SetActivity(inbound)

			m.logger.Debug("inbound activity translated",
				slog.String("from", preferred),
				slog.String("to", canonical),
			)
		}
	}

	tc.OnSendActivities(m.translateOutbound)

	return next(ctx)
}

// translateOutbound translates one outbound batch into the user's preferred
// language. The preference is re-read at send time so a change requested this
// very turn is honored for the reply confirming it. Replies within a batch
// are independent and translated concurrently; the batch proceeds only once
// all of them are done.
func (m *LanguageMiddleware) translateOutbound(ctx context.Context, tc *TurnContext, activities []Activity, next SendFunc) error {
	canonical := m.langs.Default().Code
	preferred := m.preferredLanguage(ctx, tc)

	if preferred == canonical {
		return next(ctx, activities)
	}

	out := make([]Activity, len(activities))
	g, gctx := errgroup.WithContext(ctx)

	for i, activity := range activities {
		if activity.Type != ActivityTypeMessage || activity.Text == "" {
			out[i] = activity
			continue
		}

		i, activity := i, activity
		g.Go(func() error {
			translated, err := m.translator.Translate(gctx, activity.Text, preferred)
			if err != nil {
				return err
			}

			reply := activity.WithText(translated)
			reply.Locale = preferred
			out[i] = reply
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return next(ctx, out)
}

// preferredLanguage resolves the user's language for this turn. A store read
// failure degrades to the canonical language so the conversation keeps
// flowing; the turn may come back in the wrong language, nothing worse.
func (m *LanguageMiddleware) preferredLanguage(ctx context.Context, tc *TurnContext) string {
	canonical := m.langs.Default().Code

	preferred, err := m.prefs.Get(ctx, tc.ScopeKey(), canonical)
	if err != nil {
		m.logger.Warn("preference read failed, falling back to canonical language",
			slog.String("scope_key", tc.ScopeKey()),
			slog.String("error", err.Error()),
		)
		return canonical
	}

	if !m.langs.IsSupported(preferred) {
		return canonical
	}

	return preferred
}
