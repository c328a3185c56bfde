package langbridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ourstudio-se/langbridge/languages"
	"github.com/ourstudio-se/langbridge/preference"
)

// LanguageDialog is the default terminal handler: it recognizes explicit
// language-switch commands, persists the new preference, and otherwise
// presents the supported languages as selectable options.
//
// The dialog operates entirely in the canonical language. It never calls the
// translation provider; outbound adaptation is the middleware's job.
type LanguageDialog struct {
	prefs  preference.Store
	langs  *languages.Registry
	logger *slog.Logger
}

// NewLanguageDialog creates the language selection dialog.
func NewLanguageDialog(prefs preference.Store, langs *languages.Registry, logger *slog.Logger) *LanguageDialog {
	if logger == nil {
		logger = slog.Default()
	}

	return &LanguageDialog{
		prefs:  prefs,
		langs:  langs,
		logger: logger,
	}
}

// Handle processes one turn.
func (d *LanguageDialog) Handle(ctx context.Context, tc *TurnContext) error {
	activity := tc.Activity()
	if activity.Type != ActivityTypeMessage {
		return nil
	}

	canonical := d.langs.Default().Code

	current, err := d.prefs.Get(ctx, tc.ScopeKey(), canonical)
	if err != nil {
		d.logger.Warn("preference read failed, assuming canonical language",
			slog.String("scope_key", tc.ScopeKey()),
			slog.String("error", err.Error()),
		)
		current = canonical
	}

	if IsLanguageChangeRequested(d.langs, activity.Text, current) {
		code := strings.ToLower(strings.TrimSpace(activity.Text))

		// The confirmation must only go out once the preference is durable.
		if err := d.prefs.Set(ctx, tc.ScopeKey(), code); err != nil {
			return NewStoreError("persisting language preference", err)
		}

		d.logger.Debug("language preference changed",
			slog.String("scope_key", tc.ScopeKey()),
			slog.String("language", code),
		)

		return tc.SendText(ctx, fmt.Sprintf("Your current language code is: %s", code))
	}

	reply := tc.Activity().Reply("Choose your language:")
	for _, lang := range d.langs.All() {
		reply.SuggestedActions = append(reply.SuggestedActions, SuggestedAction{
			Title: lang.Name,
			Value: lang.Code,
		})
	}

	return tc.SendActivity(ctx, reply)
}
