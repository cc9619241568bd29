package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetMissOnAbsentKey(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	if _, err := m.Get(context.Background(), "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get error = %v, want ErrCacheMiss", err)
	}
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error = %v, want nil", err)
	}

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error = %v, want nil", err)
	}
	if string(got) != "payload" {
		t.Fatalf("Get = %q, want payload", got)
	}

	// Mutating the returned slice must not corrupt the stored value.
	got[0] = 'X'
	again, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("second Get error = %v, want nil", err)
	}
	if string(again) != "payload" {
		t.Fatalf("stored value mutated to %q", again)
	}
}

func TestMemoryExpiresByElapsedTime(t *testing.T) {
	t.Parallel()

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return current }
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("Set error = %v, want nil", err)
	}

	current = current.Add(4 * time.Minute)
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before deadline error = %v, want nil", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get after deadline error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return current }
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error = %v, want nil", err)
	}

	current = current.Add(1000 * time.Hour)
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("Get error = %v, want nil for ttl<=0", err)
	}
}

func TestMemoryDel(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error = %v, want nil", err)
	}
	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del error = %v, want nil", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get after Del error = %v, want ErrCacheMiss", err)
	}
}

func TestNoopProviderNeverStores(t *testing.T) {
	t.Parallel()

	var p Provider = NoopProvider{}
	ctx := context.Background()

	if err := p.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error = %v, want nil", err)
	}
	if _, err := p.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get error = %v, want ErrCacheMiss", err)
	}
}
