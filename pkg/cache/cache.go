// Package cache stores, per hierarchy key, the last snapshot that produced
// a successful rebuild. Entries have no TTL; they live until replaced by
// the build runner or removed when the hierarchy is unregistered. The
// cache is safe to discard: the next change-detection pass simply treats
// every hierarchy as changed once.
package cache

import (
	"sync"

	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/snapshot"
)

// Cache is a change-detection cache keyed by hierarchy.
type Cache struct {
	mu      sync.Mutex
	entries map[scene.HierarchyKey]*snapshot.Snapshot
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[scene.HierarchyKey]*snapshot.Snapshot)}
}

// Get returns the cached snapshot for key, or nil.
func (c *Cache) Get(key scene.HierarchyKey) *snapshot.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// Put replaces the cached snapshot for key. Only the build runner calls
// this, after a fully successful rebuild.
func (c *Cache) Put(key scene.HierarchyKey, s *snapshot.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = s
}

// Remove drops the cached snapshot for key.
func (c *Cache) Remove(key scene.HierarchyKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of cached hierarchies.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
