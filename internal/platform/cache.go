// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"sync"
	"time"
)

// =============================================================================
// TTL CACHE
// =============================================================================

const (
	cacheMaxEntries = 300
	cacheTTL        = 30 * time.Minute
)

type cacheEntry[V any] struct {
	value   V
	expires time.Time
}

// ttlCache is a small bounded cache keyed by string. When full, an arbitrary
// expired entry is evicted first; failing that, an arbitrary live one.
type ttlCache[V any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[V]
	ttl     time.Duration
	max     int
	now     func() time.Time
}

func newTTLCache[V any]() *ttlCache[V] {
	return &ttlCache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     cacheTTL,
		max:     cacheMaxEntries,
		now:     time.Now,
	}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.max {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry[V]{value: value, expires: c.now().Add(c.ttl)}
}

func (c *ttlCache[V]) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			return
		}
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}
