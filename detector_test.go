package langbridge

import (
	"testing"
)

func TestIsLanguageChangeRequested(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("matches a bare supported code differing from current", func(t *testing.T) {
		cases := []string{"es", "ES", "Es", " es ", "\tes\n"}
		for _, utterance := range cases {
			if !IsLanguageChangeRequested(registry, utterance, "en") {
				t.Errorf("expected %q to be a change request", utterance)
			}
		}
	})

	t.Run("no-op switch to the current language is not a request", func(t *testing.T) {
		for _, code := range registry.Codes() {
			if IsLanguageChangeRequested(registry, code, code) {
				t.Errorf("expected %q -> %q to be a no-op", code, code)
			}
		}
	})

	t.Run("any pair of distinct supported codes is a request", func(t *testing.T) {
		for _, from := range registry.Codes() {
			for _, to := range registry.Codes() {
				if from == to {
					continue
				}
				if !IsLanguageChangeRequested(registry, to, from) {
					t.Errorf("expected %q -> %q to be a request", from, to)
				}
			}
		}
	})

	t.Run("non-code utterances never match", func(t *testing.T) {
		cases := []string{
			"",
			"hello",
			"es please",
			"please es",
			"e s",
			"esp",
			"english",
			"Hola",
		}
		for _, utterance := range cases {
			if IsLanguageChangeRequested(registry, utterance, "en") {
				t.Errorf("expected %q not to be a change request", utterance)
			}
		}
	})
}
