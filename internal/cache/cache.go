// Package cache memoises expensive model output by content address.
//
// Entries live for the lifetime of the process and are never evicted; a
// session touches a handful of transcripts, so the bound is the number of
// distinct inputs processed since start-up.
package cache

import (
	"sync"

	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
)

// Cache is safe for concurrent readers and writers.
type Cache[V any] struct {
	name    string
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries map[Key]V
}

// New creates an empty cache. name labels its metrics.
func New[V any](name string, m *metrics.Metrics) *Cache[V] {
	return &Cache[V]{
		name:    name,
		metrics: m,
		entries: make(map[Key]V),
	}
}

// Lookup returns the value stored under k. A miss returns the zero value and false.
func (c *Cache[V]) Lookup(k Key) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[k]
	c.mu.RUnlock()

	c.metrics.CacheLookup(c.name, ok)
	return v, ok
}

// Store records v under k, replacing any previous value.
func (c *Cache[V]) Store(k Key, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]V)
}
