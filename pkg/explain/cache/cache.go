// Package cache stores generated explanations so repeated matchups do not
// call the LLM again.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store is a string cache with per-entry expiry.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	Close() error
}

// Key builds the cache key for a matchup. Names are case-folded so that
// "Georgia"/"georgia" share an entry.
func Key(victor, loser string) string {
	return strings.ToLower(strings.TrimSpace(victor)) + "\x00" + strings.ToLower(strings.TrimSpace(loser))
}

type entry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-process store. A zero ttl never expires entries.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
