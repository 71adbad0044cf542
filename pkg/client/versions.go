package client

import "sync"

// versionCache tracks the last-observed version of each document: the
// precondition supplied with conditional writes. It is plain local state
// owned by one Client, so independent clients (and tests) never interfere.
type versionCache struct {
	mu      sync.RWMutex
	entries map[string]int64
}

func newVersionCache() *versionCache {
	return &versionCache{entries: make(map[string]int64)}
}

// get returns the cached version, or zero when no baseline is known.
// Zero preconditions are always satisfied by the store.
func (c *versionCache) get(name string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[name]
}

// set records the version observed by a successful read or write.
func (c *versionCache) set(name string, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = version
}

// invalidate drops the baseline for a document. Only the conflict-reload
// path needs this; the next read repopulates the entry.
func (c *versionCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

func (c *versionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
