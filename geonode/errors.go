package geonode

import "errors"

// Sentinel errors for the geonode package.
var (
	// ErrUnsupportedKind indicates a GeoNode.Kind value outside the
	// defined enumeration was encountered during evaluation or conversion.
	ErrUnsupportedKind = errors.New("geonode: unsupported node kind")

	// ErrNotSolid indicates a 2D-only node (e.g. Circle) was converted
	// to a mesh.
	ErrNotSolid = errors.New("geonode: node does not describe a 3D solid")

	// ErrNotSketch indicates the converse of ErrNotSolid.
	ErrNotSketch = errors.New("geonode: node does not describe a 2D sketch")

	// ErrSingularDirection indicates an Extrude node whose direction
	// vector has zero length.
	ErrSingularDirection = errors.New("geonode: zero-length extrude direction")
)
