// Package csg implements the constructive-solid-geometry kernel: planes,
// polygons, a BSP tree for exact boolean meshes, 2D sketches, and the
// extrude operation that lifts a sketch into a mesh.
//
// Boolean operations on meshes follow the classical polygon-CSG recipe
// (clip/invert sequences over a pair of BSP trees). 2D sketch booleans
// instead combine the two sketches' signed distance fields (min/max/max
// with negation, mirroring the solid booleans' semantics) and re-extract
// the boundary with marching squares, avoiding a full general-polygon
// clipping implementation for shapes that may be non-convex or hold holes.
package csg
