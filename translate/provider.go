// Package translate defines the translation provider contract and the guarded
// client the adaptation middleware talks to.
package translate

import (
	"context"
	"fmt"
)

// Candidate is one translation alternative returned by a provider.
// Providers return candidates in preference order.
type Candidate struct {
	Text string
}

// Provider issues a single translation request to an external service.
// The source language is never sent; providers auto-detect it.
type Provider interface {
	// Name identifies the provider backend (used in logs and metrics).
	Name() string

	// Translate translates text into the target language and returns the
	// candidate translations, best first. An empty candidate list is a valid
	// response and means the provider produced no translation.
	Translate(ctx context.Context, text, targetLanguage string) ([]Candidate, error)
}

// ProviderError is a transport or protocol level failure of a provider call:
// a non-success status, a network error, or a malformed response body.
type ProviderError struct {
	// Provider is the backend that failed.
	Provider string

	// StatusCode is the HTTP status, when the failure is an HTTP one.
	StatusCode int

	// Message describes the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s provider: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
