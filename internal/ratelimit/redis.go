package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a limiter shared by every instance using the same Redis.
// SET NX with a TTL equal to the window is the atomic check-and-set;
// expiry replaces the sweep.
type Redis struct {
	rdb    *redis.Client
	prefix string
	window time.Duration
}

// RedisOption configures a Redis limiter
type RedisOption func(*Redis)

// WithPrefix sets the key prefix
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = strings.Trim(prefix, ":") }
}

// NewRedis creates a Redis-backed limiter
func NewRedis(rdb *redis.Client, window time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{
		rdb:    rdb,
		prefix: "comments:ratelimit",
		window: window,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allow implements Limiter
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	k := r.prefix + ":" + key

	ok, err := r.rdb.SetNX(ctx, k, time.Now().UnixMilli(), r.window).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit set: %w", err)
	}
	if ok {
		return Decision{Allowed: true}, nil
	}

	ttl, err := r.rdb.PTTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = r.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

// Window returns the configured window
func (r *Redis) Window() time.Duration { return r.window }
