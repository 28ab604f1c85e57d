package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedis_UnreachableServerReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limiter := NewRedis(rdb, 30*time.Second, WithPrefix("test:"))
	if limiter.prefix != "test" {
		t.Errorf("Expected trimmed prefix 'test', got %q", limiter.prefix)
	}
	if limiter.Window() != 30*time.Second {
		t.Errorf("Expected 30s window, got %v", limiter.Window())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := limiter.Allow(ctx, "1.2.3.4"); err == nil {
		t.Fatal("Expected error from unreachable redis")
	}
}
