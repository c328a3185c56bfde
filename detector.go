package langbridge

import (
	"strings"

	"github.com/ourstudio-se/langbridge/languages"
)

// IsLanguageChangeRequested reports whether utterance is an explicit request
// to switch languages: the whole message, trimmed and lower-cased, must be a
// supported language code that differs from currentLanguage. Anything else,
// including a code surrounded by other words, is ordinary conversation.
func IsLanguageChangeRequested(langs *languages.Registry, utterance, currentLanguage string) bool {
	if utterance == "" {
		return false
	}

	code := strings.ToLower(strings.TrimSpace(utterance))
	if !langs.IsSupported(code) {
		return false
	}

	return code != strings.ToLower(strings.TrimSpace(currentLanguage))
}
