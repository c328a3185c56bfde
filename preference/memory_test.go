package preference

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("returns default when unset", func(t *testing.T) {
		value, err := store.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "en" {
			t.Errorf("expected default en, got %q", value)
		}
	})

	t.Run("returns stored value after set", func(t *testing.T) {
		if err := store.Set(ctx, "user-1", "es"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		value, err := store.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "es" {
			t.Errorf("expected es, got %q", value)
		}
	})

	t.Run("scope keys are independent", func(t *testing.T) {
		value, err := store.Get(ctx, "user-2", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "en" {
			t.Errorf("expected default en for a different user, got %q", value)
		}
	})
}

// failingStore errors on every write.
type failingStore struct {
	Store
	setErr error
}

func (f *failingStore) Set(ctx context.Context, scopeKey, value string) error {
	return f.setErr
}

func TestBuffered(t *testing.T) {
	ctx := context.Background()

	t.Run("reads see pending writes before flush", func(t *testing.T) {
		inner := NewMemoryStore()
		buffered := NewBuffered(inner)

		if err := buffered.Set(ctx, "user-1", "es"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		value, err := buffered.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "es" {
			t.Errorf("expected pending write to be visible, got %q", value)
		}

		// Not yet persisted.
		value, err = inner.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "en" {
			t.Errorf("expected inner store untouched before flush, got %q", value)
		}
	})

	t.Run("flush writes through", func(t *testing.T) {
		inner := NewMemoryStore()
		buffered := NewBuffered(inner)

		if err := buffered.Set(ctx, "user-1", "es"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := buffered.Flush(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		value, err := inner.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "es" {
			t.Errorf("expected es after flush, got %q", value)
		}
	})

	t.Run("failed flush keeps the pending write", func(t *testing.T) {
		inner := &failingStore{Store: NewMemoryStore(), setErr: errors.New("down")}
		buffered := NewBuffered(inner)

		if err := buffered.Set(ctx, "user-1", "es"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := buffered.Flush(ctx); err == nil {
			t.Fatal("expected flush error")
		}

		value, err := buffered.Get(ctx, "user-1", "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "es" {
			t.Errorf("expected pending write retained after failed flush, got %q", value)
		}
	})
}
