package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSlidingWindowAllow(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	window := 2 * time.Second
	limiter := SlidingWindow{Client: client, Prefix: "test:", Window: window, Max: 2}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, "key")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("expected request %d to be allowed", i)
		}
		if decision.Remaining != 2-(i+1) {
			t.Fatalf("unexpected remaining: %d", decision.Remaining)
		}
	}

	decision, err := limiter.Allow(ctx, "key")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if decision.Allowed {
		t.Fatal("expected third request to be rejected")
	}
	if decision.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", decision.Remaining)
	}

	mr.FastForward(window)

	decision, err = limiter.Allow(ctx, "key")
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected request after window to be allowed")
	}
}

func TestSlidingWindowDisabledWithoutClient(t *testing.T) {
	limiter := SlidingWindow{Max: 5, Window: time.Second}
	decision, err := limiter.Allow(context.Background(), "key")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected nil client to disable enforcement")
	}
}

func TestSlidingWindowKeysAreIndependent(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	limiter := SlidingWindow{Client: client, Prefix: "test:", Window: time.Minute, Max: 1}
	ctx := context.Background()

	if d, _ := limiter.Allow(ctx, "alice"); !d.Allowed {
		t.Fatal("first request for alice must pass")
	}
	if d, _ := limiter.Allow(ctx, "bob"); !d.Allowed {
		t.Fatal("first request for bob must pass")
	}
	if d, _ := limiter.Allow(ctx, "alice"); d.Allowed {
		t.Fatal("second request for alice must be rejected")
	}
}
