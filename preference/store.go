// Package preference stores per-user language preferences.
//
// The store owns preference state entirely; the adaptation middleware reads it
// at turn start and again at send time, and the language dialog writes it on an
// explicit change request. A preference is created lazily on first read via the
// caller-supplied default and is never deleted by this module.
package preference

import "context"

// Store is the per-user preference accessor.
type Store interface {
	// Get returns the preference stored under scopeKey, or defaultValue when
	// none is stored yet.
	Get(ctx context.Context, scopeKey, defaultValue string) (string, error)

	// Set stores the preference under scopeKey.
	Set(ctx context.Context, scopeKey, value string) error
}

// Flusher is implemented by stores that batch writes until the end of a turn.
// The turn pipeline calls Flush once per successful turn.
type Flusher interface {
	Flush(ctx context.Context) error
}
