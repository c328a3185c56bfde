package langbridge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ourstudio-se/langbridge/preference"
	"github.com/ourstudio-se/langbridge/translate"
)

func TestLanguageMiddleware_InboundTranslation(t *testing.T) {
	t.Run("default preference leaves inbound text alone", func(t *testing.T) {
		provider := &mockProvider{translations: map[string]string{}}
		bot := newTestBot(t, provider, preference.NewMemoryStore())

		var seen string
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			seen = tc.Activity().Text
			return nil
		}

		if err := bot.ProcessActivity(context.Background(), &captureTransport{}, userMessage("Hola")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if seen != "Hola" {
			t.Errorf("expected untranslated text, got %q", seen)
		}
		if provider.calls != 0 {
			t.Errorf("expected no provider calls, got %d", provider.calls)
		}
	})

	t.Run("non-default preference translates inbound before the handler", func(t *testing.T) {
		provider := &mockProvider{translations: map[string]string{
			"Quiero más información->en": "I want more information",
		}}
		prefs := preference.NewMemoryStore()
		prefs.Set(context.Background(), "user-1", "es")
		bot := newTestBot(t, provider, prefs)

		var seen string
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			seen = tc.Activity().Text
			return nil
		}

		if err := bot.ProcessActivity(context.Background(), &captureTransport{}, userMessage("Quiero más información")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if seen != "I want more information" {
			t.Errorf("expected canonical text, got %q", seen)
		}
	})

	t.Run("empty inbound text skips translation", func(t *testing.T) {
		provider := &mockProvider{}
		prefs := preference.NewMemoryStore()
		prefs.Set(context.Background(), "user-1", "es")
		bot := newTestBot(t, provider, prefs)
		bot.handler = func(ctx context.Context, tc *TurnContext) error { return nil }

		activity := userMessage("")
		activity.Type = ActivityTypeConversationUpdate
		if err := bot.ProcessActivity(context.Background(), &captureTransport{}, activity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if provider.calls != 0 {
			t.Errorf("expected no provider calls for empty text, got %d", provider.calls)
		}
	})

	t.Run("store read failure degrades to canonical language", func(t *testing.T) {
		provider := &mockProvider{}
		store := &brokenStore{inner: preference.NewMemoryStore(), getErr: errors.New("store down")}
		bot := newTestBot(t, provider, store)

		var seen string
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			seen = tc.Activity().Text
			return tc.SendText(ctx, "reply")
		}

		transport := &captureTransport{}
		if err := bot.ProcessActivity(context.Background(), transport, userMessage("Hola")); err != nil {
			t.Fatalf("expected turn to survive store failure, got %v", err)
		}

		if seen != "Hola" {
			t.Errorf("expected pass-through text, got %q", seen)
		}
		if provider.calls != 0 {
			t.Errorf("expected no provider calls, got %d", provider.calls)
		}
		if len(transport.all()) != 1 || transport.all()[0].Text != "reply" {
			t.Errorf("expected reply delivered untranslated, got %+v", transport.all())
		}
	})
}

func TestLanguageMiddleware_OutboundTranslation(t *testing.T) {
	t.Run("replies are translated to the preference at send time", func(t *testing.T) {
		provider := &mockProvider{translations: map[string]string{
			"Quiero más información->en": "I want more information",
			"Here you go->es":            "Aquí tiene",
		}}
		prefs := preference.NewMemoryStore()
		prefs.Set(context.Background(), "user-1", "es")
		bot := newTestBot(t, provider, prefs)
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			return tc.SendText(ctx, "Here you go")
		}

		transport := &captureTransport{}
		if err := bot.ProcessActivity(context.Background(), transport, userMessage("Quiero más información")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		replies := transport.all()
		if len(replies) != 1 {
			t.Fatalf("expected one reply, got %d", len(replies))
		}
		if replies[0].Text != "Aquí tiene" {
			t.Errorf("expected translated reply, got %q", replies[0].Text)
		}
		if replies[0].Locale != "es" {
			t.Errorf("expected locale es, got %q", replies[0].Locale)
		}
	})

	t.Run("preference changed mid-turn is honored for the confirmation", func(t *testing.T) {
		// Scenario: preference en, user sends the bare code "es". The dialog
		// stores "es" and replies with the code token; the outbound hook
		// re-reads the store and the bare-code guard keeps the token intact.
		provider := &mockProvider{translations: map[string]string{}}
		prefs := preference.NewMemoryStore()
		bot := newTestBot(t, provider, prefs)

		transport := &captureTransport{}
		if err := bot.ProcessActivity(context.Background(), transport, userMessage("es")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := prefs.Get(context.Background(), "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored != "es" {
			t.Errorf("expected preference set to es, got %q", stored)
		}

		replies := transport.all()
		if len(replies) != 1 {
			t.Fatalf("expected one reply, got %d", len(replies))
		}
		if replies[0].Text != "Your current language code is: es" {
			t.Errorf("unexpected confirmation: %q", replies[0].Text)
		}
	})

	t.Run("batch members translate independently", func(t *testing.T) {
		provider := &mockProvider{translations: map[string]string{
			"First->es":  "Primero",
			"Second->es": "Segundo",
		}}
		prefs := preference.NewMemoryStore()
		prefs.Set(context.Background(), "user-1", "es")
		bot := newTestBot(t, provider, prefs)
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			a := tc.Activity()
			return tc.SendActivity(ctx, a.Reply("First"), a.Reply("Second"))
		}

		transport := &captureTransport{}
		if err := bot.ProcessActivity(context.Background(), transport, userMessage("hello")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(transport.batches) != 1 {
			t.Fatalf("expected one delivered batch, got %d", len(transport.batches))
		}
		batch := transport.batches[0]
		if len(batch) != 2 || batch[0].Text != "Primero" || batch[1].Text != "Segundo" {
			t.Errorf("expected ordered translated batch, got %+v", batch)
		}
	})

	t.Run("provider failure propagates and leaves the preference unchanged", func(t *testing.T) {
		provider := &mockProvider{err: &translate.ProviderError{Provider: "mock", StatusCode: 500, Message: "boom"}}
		prefs := preference.NewMemoryStore()
		prefs.Set(context.Background(), "user-1", "es")
		bot := newTestBot(t, provider, prefs)
		bot.handler = func(ctx context.Context, tc *TurnContext) error {
			return tc.SendText(ctx, "reply")
		}

		transport := &captureTransport{}
		activity := userMessage("")
		activity.Text = "" // inbound translation skipped, failure hits outbound
		err := bot.ProcessActivity(context.Background(), transport, activity)

		var perr *translate.ProviderError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *translate.ProviderError, got %v", err)
		}
		if len(transport.all()) != 0 {
			t.Errorf("expected no delivery after failure, got %+v", transport.all())
		}

		stored, err := prefs.Get(context.Background(), "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored != "es" {
			t.Errorf("expected preference unchanged, got %q", stored)
		}
	})
}

func TestLanguageDialog(t *testing.T) {
	t.Run("ordinary message presents language options", func(t *testing.T) {
		// Scenario: preference unset, user writes "Hola". Inbound adaptation
		// is a no-op (preference defaults to canonical), the dialog treats it
		// as conversation and lists the supported languages.
		bot := newTestBot(t, &mockProvider{}, preference.NewMemoryStore())

		transport := &captureTransport{}
		if err := bot.ProcessActivity(context.Background(), transport, userMessage("Hola")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		replies := transport.all()
		if len(replies) != 1 {
			t.Fatalf("expected one reply, got %d", len(replies))
		}
		if !strings.Contains(replies[0].Text, "Choose your language") {
			t.Errorf("expected options prompt, got %q", replies[0].Text)
		}
		if len(replies[0].SuggestedActions) != 2 {
			t.Fatalf("expected two options, got %d", len(replies[0].SuggestedActions))
		}
		if replies[0].SuggestedActions[0].Value != "en" || replies[0].SuggestedActions[1].Value != "es" {
			t.Errorf("unexpected options: %+v", replies[0].SuggestedActions)
		}
	})

	t.Run("store write failure suppresses the confirmation", func(t *testing.T) {
		store := &brokenStore{inner: preference.NewMemoryStore(), setErr: errors.New("disk full")}
		bot := newTestBot(t, &mockProvider{}, store)

		transport := &captureTransport{}
		err := bot.ProcessActivity(context.Background(), transport, userMessage("es"))
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
		if len(transport.all()) != 0 {
			t.Errorf("expected no confirmation after failed write, got %+v", transport.all())
		}
	})
}
