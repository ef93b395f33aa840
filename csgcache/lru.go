package csgcache

import "container/list"

// memoryBoundedLRU is a least-recently-used cache bounded by total
// estimated byte size rather than entry count: inserting an entry evicts
// the oldest entries until the new total fits within capacityBytes.
type memoryBoundedLRU[K comparable, V any] struct {
	capacityBytes int64
	currentBytes  int64
	sizeOf        func(V) int64

	order   *list.List // list of *lruEntry[K, V], front = most recently used
	entries map[K]*list.Element
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
	bytes int64
}

func newMemoryBoundedLRU[K comparable, V any](capacityBytes int64, sizeOf func(V) int64) *memoryBoundedLRU[K, V] {
	return &memoryBoundedLRU[K, V]{
		capacityBytes: capacityBytes,
		sizeOf:        sizeOf,
		order:         list.New(),
		entries:       make(map[K]*list.Element),
	}
}

// Get returns the cached value for key, promoting it to most-recently-used.
func (c *memoryBoundedLRU[K, V]) Get(key K) (V, bool) {
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserts or replaces the value for key, then evicts least-recently
// used entries until the cache fits within its byte capacity. A value
// whose own estimated size exceeds capacityBytes is rejected outright,
// leaving any existing entries (including a prior value for key)
// untouched, rather than evicting everything else to make room for an
// entry that could never fit anyway.
func (c *memoryBoundedLRU[K, V]) Put(key K, value V) {
	size := c.sizeOf(value)
	if size > c.capacityBytes {
		return
	}

	if el, ok := c.entries[key]; ok {
		old := el.Value.(*lruEntry[K, V])
		c.currentBytes -= old.bytes
		el.Value = &lruEntry[K, V]{key: key, value: value, bytes: size}
		c.currentBytes += size
		c.order.MoveToFront(el)
	} else {
		el := c.order.PushFront(&lruEntry[K, V]{key: key, value: value, bytes: size})
		c.entries[key] = el
		c.currentBytes += size
	}

	for c.currentBytes > c.capacityBytes && c.order.Len() > 0 {
		back := c.order.Back()
		if back == nil {
			break
		}
		entry := back.Value.(*lruEntry[K, V])
		c.currentBytes -= entry.bytes
		delete(c.entries, entry.key)
		c.order.Remove(back)
	}
}

// Clear empties the cache, resetting its memory usage to zero.
func (c *memoryBoundedLRU[K, V]) Clear() {
	c.order = list.New()
	c.entries = make(map[K]*list.Element)
	c.currentBytes = 0
}

// Len returns the number of cached entries.
func (c *memoryBoundedLRU[K, V]) Len() int { return c.order.Len() }

// CurrentBytes returns the cache's current estimated memory usage.
func (c *memoryBoundedLRU[K, V]) CurrentBytes() int64 { return c.currentBytes }
