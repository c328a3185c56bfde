// Package languages holds the set of languages a bot is configured to speak.
//
// The registry is ordered: the first language is the canonical one, the
// language all downstream business logic operates in.
package languages

import (
	"fmt"
	"strings"
)

// Language is a single supported language.
type Language struct {
	// Code is the ISO 639-1 code users type to switch to this language.
	Code string `yaml:"code" json:"code"`

	// Name is the human-readable display name shown in option lists.
	Name string `yaml:"name" json:"name"`
}

// Registry is an ordered, immutable set of supported languages.
type Registry struct {
	ordered []Language
	byCode  map[string]Language
}

// NewRegistry creates a registry from an ordered list of languages.
// The first language is the default (canonical) one. Codes are normalized
// to lower case and must be unique.
func NewRegistry(langs ...Language) (*Registry, error) {
	if len(langs) == 0 {
		return nil, fmt.Errorf("at least one language is required")
	}

	r := &Registry{
		byCode: make(map[string]Language, len(langs)),
	}

	for _, lang := range langs {
		code := strings.ToLower(strings.TrimSpace(lang.Code))
		if code == "" {
			return nil, fmt.Errorf("language code is required")
		}
		if _, exists := r.byCode[code]; exists {
			return nil, fmt.Errorf("duplicate language code: %s", code)
		}

		lang.Code = code
		r.ordered = append(r.ordered, lang)
		r.byCode[code] = lang
	}

	return r, nil
}

// Default returns the canonical language (the first registered one).
func (r *Registry) Default() Language {
	return r.ordered[0]
}

// IsSupported reports whether code is one of the registered language codes.
// The code must already be normalized (lower case, no surrounding whitespace).
func (r *Registry) IsSupported(code string) bool {
	_, ok := r.byCode[code]
	return ok
}

// Get returns the language registered under code.
func (r *Registry) Get(code string) (Language, bool) {
	lang, ok := r.byCode[code]
	return lang, ok
}

// All returns the languages in registration order.
func (r *Registry) All() []Language {
	out := make([]Language, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Codes returns the language codes in registration order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.ordered))
	for i, lang := range r.ordered {
		codes[i] = lang.Code
	}
	return codes
}

// Len returns the number of registered languages.
func (r *Registry) Len() int {
	return len(r.ordered)
}
