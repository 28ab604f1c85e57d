package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a single-process limiter keeping the last accepted time per key.
// State is lost on restart and is not shared between instances.
type Memory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	window  time.Duration
	now     func() time.Time
}

// MemoryOption configures a Memory limiter
type MemoryOption func(*Memory)

// WithClock overrides the time source
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates an in-memory limiter with the given window
func NewMemory(window time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]time.Time),
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allow implements Limiter
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	return m.Check(key, m.now()), nil
}

// Check sweeps expired entries, then either rejects key or records now for it
func (m *Memory) Check(key string, now time.Time) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, last := range m.entries {
		if now.Sub(last) > m.window {
			delete(m.entries, k)
		}
	}

	if last, ok := m.entries[key]; ok {
		if elapsed := now.Sub(last); elapsed < m.window {
			return Decision{Allowed: false, RetryAfter: m.window - elapsed}
		}
	}

	m.entries[key] = now
	return Decision{Allowed: true}
}

// Len returns the number of tracked keys
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Window returns the configured window
func (m *Memory) Window() time.Duration { return m.window }
