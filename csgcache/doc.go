// Package csgcache memoizes the explicit csg.Mesh/csg.Sketch conversions
// of a GeoNode tree behind a pair of independent, memory-bounded LRU
// caches keyed by structural content hash, so re-converting an unchanged
// subtree is a cache hit regardless of where in a larger tree it sits.
package csgcache
