package services

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheWrap(t *testing.T) {
	cache := NewMemoryCache()
	calls := 0
	producer := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.Wrap("k", time.Minute, []string{"tag"}, producer)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if got != "value" {
			t.Fatalf("Wrap returned %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("producer ran %d times, want 1 (read-through hit)", calls)
	}
}

func TestMemoryCacheProducerError(t *testing.T) {
	cache := NewMemoryCache()
	boom := errors.New("boom")

	_, err := cache.Wrap("k", time.Minute, nil, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped producer error, got %v", err)
	}

	// Failure must not be cached
	got, err := cache.Wrap("k", time.Minute, nil, func() (interface{}, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("Wrap after failure = (%v, %v), want (42, nil)", got, err)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	cache := NewMemoryCache()
	calls := 0
	producer := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := cache.Wrap("k", time.Nanosecond, nil, producer); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	got, err := cache.Wrap("k", time.Minute, nil, producer)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("expired entry should re-run producer, got %v", got)
	}
}

func TestMemoryCacheInvalidateByTags(t *testing.T) {
	cache := NewMemoryCache()
	calls := map[string]int{}
	producer := func(key string) func() (interface{}, error) {
		return func() (interface{}, error) {
			calls[key]++
			return key, nil
		}
	}

	cache.Wrap("profile:u1", time.Minute, []string{ProfileTag("u1")}, producer("profile:u1"))
	cache.Wrap("profile:u2", time.Minute, []string{ProfileTag("u2")}, producer("profile:u2"))
	cache.Wrap("board", time.Minute, []string{TagLeaderboard}, producer("board"))

	cache.InvalidateByTags([]string{ProfileTag("u1")})

	cache.Wrap("profile:u1", time.Minute, []string{ProfileTag("u1")}, producer("profile:u1"))
	cache.Wrap("profile:u2", time.Minute, []string{ProfileTag("u2")}, producer("profile:u2"))
	cache.Wrap("board", time.Minute, []string{TagLeaderboard}, producer("board"))

	if calls["profile:u1"] != 2 {
		t.Errorf("invalidated key produced %d times, want 2", calls["profile:u1"])
	}
	if calls["profile:u2"] != 1 || calls["board"] != 1 {
		t.Errorf("untouched keys re-produced: u2=%d board=%d", calls["profile:u2"], calls["board"])
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("gamification", "profile", "u1"); got != "gamification:profile:u1" {
		t.Errorf("CacheKey = %q", got)
	}
}
