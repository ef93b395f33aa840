// Package geonode defines GeoNode, the construction-history tree that
// backs every solid and sketch in a design: a small sum type of
// primitives, transforms, and boolean combinators. GeoNode trees are
// evaluated two ways — as an implicit signed-distance function (for dual
// contouring a preview mesh) and by direct conversion into an explicit
// csg.Mesh/csg.Sketch (for booleans and final geometry) — and are
// content-hashed so identical trees share cached results regardless of
// how they were built.
package geonode
