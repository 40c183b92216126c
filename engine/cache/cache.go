package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Rows is a cached result set.
type Rows = []map[string]any

// Cache stores query results by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Rows, bool, error)
	Set(ctx context.Context, key string, rows Rows) error
	Clear(ctx context.Context) error
}

// Key derives a cache key for sql within namespace.
func Key(namespace, sql string) string {
	sum := sha256.Sum256([]byte(sql))
	if namespace == "" {
		return hex.EncodeToString(sum[:])
	}
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Copy returns rows with every row map duplicated, so callers may mutate the
// result without touching a cached entry.
func Copy(rows Rows) Rows {
	if rows == nil {
		return nil
	}
	out := make(Rows, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out
}

// ============================================
// IN-MEMORY
// ============================================

// Memory is a size-bounded in-process cache with optional expiry. Rows are
// copied on the way in and out.
type Memory struct {
	lru *expirable.LRU[string, Rows]
}

// NewMemory returns a cache holding at most size entries (0 means unbounded)
// that expire after ttl (0 means never).
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, Rows](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (Rows, bool, error) {
	rows, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return Copy(rows), true, nil
}

func (m *Memory) Set(_ context.Context, key string, rows Rows) error {
	m.lru.Add(key, Copy(rows))
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.lru.Purge()
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}
