package csgcache

import (
	"sync"

	"github.com/atomcore/atomcore/csg"
)

// Default capacities, matching the original kernel's defaults: 200 MiB for
// meshes (the more expensive, more numerous artifact) and 56 MiB for
// sketches.
const (
	DefaultMeshCapacityBytes   = 200 * 1024 * 1024
	DefaultSketchCapacityBytes = 56 * 1024 * 1024
)

// Stats is a snapshot of cache hit/miss counters and memory usage,
// safe to read after Cache.Stats() without further synchronization.
type Stats struct {
	MeshHits, MeshMisses     uint64
	SketchHits, SketchMisses uint64
	MeshBytes, MeshCapacity  int64
	SketchBytes              int64
	SketchCapacity           int64
}

// MeshHitRate returns the fraction of mesh lookups that were hits, or 0
// when there have been no lookups yet.
func (s Stats) MeshHitRate() float64 {
	total := s.MeshHits + s.MeshMisses
	if total == 0 {
		return 0
	}
	return float64(s.MeshHits) / float64(total)
}

// SketchHitRate returns the fraction of sketch lookups that were hits.
func (s Stats) SketchHitRate() float64 {
	total := s.SketchHits + s.SketchMisses
	if total == 0 {
		return 0
	}
	return float64(s.SketchHits) / float64(total)
}

// TotalLookups returns the combined mesh and sketch lookup count.
func (s Stats) TotalLookups() uint64 {
	return s.MeshHits + s.MeshMisses + s.SketchHits + s.SketchMisses
}

// Cache holds two independent memory-bounded LRU caches, one for meshes
// and one for sketches, each keyed by a GeoNode's structural content
// hash. A nil *Cache is valid to call any method on and behaves as an
// always-miss, never-store cache, so callers can pass a nil cache to skip
// caching without a separate code path.
type Cache struct {
	mu sync.Mutex

	meshes   *memoryBoundedLRU[[32]byte, csg.Mesh]
	sketches *memoryBoundedLRU[[32]byte, csg.Sketch]

	meshHits, meshMisses     uint64
	sketchHits, sketchMisses uint64
}

// New builds a Cache with the given byte capacities for its mesh and
// sketch caches.
func New(meshCapacityBytes, sketchCapacityBytes int64) *Cache {
	return &Cache{
		meshes:   newMemoryBoundedLRU[[32]byte, csg.Mesh](meshCapacityBytes, estimateMeshSize),
		sketches: newMemoryBoundedLRU[[32]byte, csg.Sketch](sketchCapacityBytes, estimateSketchSize),
	}
}

// NewWithDefaults builds a Cache using DefaultMeshCapacityBytes and
// DefaultSketchCapacityBytes.
func NewWithDefaults() *Cache {
	return New(DefaultMeshCapacityBytes, DefaultSketchCapacityBytes)
}

// GetMesh looks up a cached mesh by hash. Safe to call on a nil *Cache.
func (c *Cache) GetMesh(key [32]byte) (csg.Mesh, bool) {
	if c == nil {
		return csg.Mesh{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.meshes.Get(key)
	if ok {
		c.meshHits++
	} else {
		c.meshMisses++
	}
	return m, ok
}

// PutMesh inserts a mesh by hash. Safe to call on a nil *Cache (no-op).
func (c *Cache) PutMesh(key [32]byte, mesh csg.Mesh) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes.Put(key, mesh)
}

// GetSketch looks up a cached sketch by hash. Safe to call on a nil *Cache.
func (c *Cache) GetSketch(key [32]byte) (csg.Sketch, bool) {
	if c == nil {
		return csg.Sketch{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sketches.Get(key)
	if ok {
		c.sketchHits++
	} else {
		c.sketchMisses++
	}
	return s, ok
}

// PutSketch inserts a sketch by hash. Safe to call on a nil *Cache (no-op).
func (c *Cache) PutSketch(key [32]byte, sketch csg.Sketch) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sketches.Put(key, sketch)
}

// Clear empties both caches, preserving their capacities, and resets
// hit/miss counters.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes.Clear()
	c.sketches.Clear()
	c.meshHits, c.meshMisses = 0, 0
	c.sketchHits, c.sketchMisses = 0, 0
}

// Stats returns a snapshot of the cache's current hit/miss counters and
// memory usage.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		MeshHits:       c.meshHits,
		MeshMisses:     c.meshMisses,
		SketchHits:     c.sketchHits,
		SketchMisses:   c.sketchMisses,
		MeshBytes:      c.meshes.CurrentBytes(),
		MeshCapacity:   c.meshes.capacityBytes,
		SketchBytes:    c.sketches.CurrentBytes(),
		SketchCapacity: c.sketches.capacityBytes,
	}
}

// MeshCount returns the number of meshes currently cached.
func (c *Cache) MeshCount() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meshes.Len()
}

// SketchCount returns the number of sketches currently cached.
func (c *Cache) SketchCount() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sketches.Len()
}
