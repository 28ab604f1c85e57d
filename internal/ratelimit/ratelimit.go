// Package ratelimit throttles comment submissions per client key.
//
// A key is allowed once per window. Rejected attempts do not extend the window.
package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Decision is the outcome of a limiter check
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait when not allowed
	RetryAfter time.Duration
}

// Limiter decides whether a key may proceed now and, if so, records it
// in one atomic step
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// UnknownClient is the shared bucket for requests without forwarding headers
const UnknownClient = "unknown"

// ClientIP resolves the client address from the first X-Forwarded-For entry
// or X-Real-IP, falling back to UnknownClient
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return UnknownClient
}
