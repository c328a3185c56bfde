package preference

import (
	"context"
	"fmt"
	"sync"
)

// Buffered wraps a Store so that writes are held in memory until Flush.
// Reads see pending writes. This mirrors runtimes whose per-user state is
// mutated during the turn and persisted once when the turn ends.
type Buffered struct {
	inner Store

	mu      sync.Mutex
	pending map[string]string
}

// NewBuffered creates a write-behind wrapper around inner.
func NewBuffered(inner Store) *Buffered {
	return &Buffered{
		inner:   inner,
		pending: make(map[string]string),
	}
}

// Get returns the pending write for scopeKey if one exists, otherwise reads
// through to the inner store.
func (b *Buffered) Get(ctx context.Context, scopeKey, defaultValue string) (string, error) {
	b.mu.Lock()
	value, ok := b.pending[scopeKey]
	b.mu.Unlock()

	if ok {
		return value, nil
	}
	return b.inner.Get(ctx, scopeKey, defaultValue)
}

// Set records the preference without touching the inner store.
func (b *Buffered) Set(ctx context.Context, scopeKey, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending[scopeKey] = value
	return nil
}

// Flush writes all pending preferences to the inner store. Entries that were
// written successfully are cleared even when a later write fails.
func (b *Buffered) Flush(ctx context.Context) error {
	b.mu.Lock()
	pending := b.pending
	b.pending = make(map[string]string)
	b.mu.Unlock()

	for scopeKey, value := range pending {
		if err := b.inner.Set(ctx, scopeKey, value); err != nil {
			b.mu.Lock()
			b.pending[scopeKey] = value
			b.mu.Unlock()
			return fmt.Errorf("flushing preference for %s: %w", scopeKey, err)
		}
	}

	return nil
}
