package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	type payload struct {
		Summary string `json:"summary"`
		Tokens  int    `json:"tokens"`
	}

	in := payload{Summary: "computes a factorial", Tokens: 12}
	if err := cache.Set("abc123", in); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var out payload
	ok, err := cache.Get("abc123", &out)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	var v string
	ok, err := cache.Get("missing", &v)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() ok = true for missing key, want miss")
	}
}

func TestCacheExpired(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if err := cache.Set("k", "v"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var v string
	ok, err := cache.Get("k", &v)
	if ok {
		t.Error("Get() ok = true for expired entry")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Get() err = %v, want ErrExpired", err)
	}
}

func TestCacheNamespace(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	a := cache.Namespace("a:")
	b := cache.Namespace("b:")

	if err := a.Set("key", "from-a"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var v string
	if ok, _ := b.Get("key", &v); ok {
		t.Error("namespace b sees key written by namespace a")
	}
	if ok, _ := a.Get("key", &v); !ok || v != "from-a" {
		t.Errorf("namespace a Get() = %q, %v; want from-a, true", v, ok)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("Retry() = nil, want error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 (permanent errors must not retry)", calls)
	}
}

func TestRetryRetriesRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}
