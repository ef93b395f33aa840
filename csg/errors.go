package csg

import "errors"

// Sentinel errors for the csg package.
var (
	// ErrEmptyPolygon indicates an operation was asked to build a polygon
	// from fewer than 3 vertices.
	ErrEmptyPolygon = errors.New("csg: polygon has fewer than 3 vertices")

	// ErrSingularTransform indicates a Transform whose linear part is not
	// invertible, so no inverse-transformed sample point can be computed.
	ErrSingularTransform = errors.New("csg: singular transform")

	// ErrEmptyMesh indicates an operation that requires at least one
	// polygon was given a mesh with none.
	ErrEmptyMesh = errors.New("csg: empty mesh")
)
