// Package eval walks a node.NodeNetwork and produces NetworkResult values.
//
// Evaluation is recursive and memoised: evaluating a node first evaluates
// every wired argument (recursing into upstream nodes), then hands the
// resolved values to the node type's registered BuiltinFunc, or — for a
// node type that is itself a NodeNetwork promoted to a custom type — descends
// into that sub-network's return node with the caller's arguments bound to
// its parameter nodes. A node's result is cached per distinct evaluation
// context (the stack of enclosing custom-network frames it was reached
// through), keyed by a blake3 digest of that context plus the node id, so
// a diamond-shaped network never evaluates a shared ancestor twice and a
// function value invoked with different bound arguments is never confused
// with another invocation's cached result.
//
// Geometry-typed results carry a *geonode.GeoNode rather than a concrete
// mesh; turning that into a render-ready mesh is the caller's job, via
// either geonode's implicit/dual-contour preview path or its CSG
// conversion path (both backed by a shared csgcache.Cache).
package eval
