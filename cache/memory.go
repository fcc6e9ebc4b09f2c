// Package cache provides caching implementations for Binspire users loaded
// as the owner of history entries and issues.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/user"
)

// Memory cache defaults.
const (
	DefaultTTL     = time.Minute
	DefaultMaxSize = 10000
)

// Compile-time interface check.
var _ binspire.Cache = (*Memory)(nil)

// Memory is an in-memory cache with TTL-based expiration and a size bound.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type entry struct {
	user      user.User
	expiresAt time.Time
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMaxSize sets the maximum number of cache entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxSize = n
		}
	}
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     DefaultTTL,
		maxSize: DefaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetUser returns a copy of a cached user.
func (m *Memory) GetUser(_ context.Context, userID string) (*user.User, bool) {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, userID)
		m.mu.Unlock()
		return nil, false
	}
	u := e.user
	return &u, true
}

// SetUser stores a copy of u.
func (m *Memory) SetUser(_ context.Context, u *user.User) {
	if u == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[u.ID]; !exists && len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize {
			m.evictOne()
		}
	}

	m.entries[u.ID] = &entry{
		user:      *u,
		expiresAt: m.now().Add(m.ttl),
	}
}

// InvalidateUser removes a cached user.
func (m *Memory) InvalidateUser(_ context.Context, userID string) {
	m.mu.Lock()
	delete(m.entries, userID)
	m.mu.Unlock()
}

// Len returns the number of entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := m.now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// evictOne removes the entry closest to expiry. Must hold write lock.
func (m *Memory) evictOne() {
	var (
		oldest string
		at     time.Time
	)
	for k, e := range m.entries {
		if oldest == "" || e.expiresAt.Before(at) {
			oldest, at = k, e.expiresAt
		}
	}
	delete(m.entries, oldest)
}
