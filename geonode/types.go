package geonode

import "github.com/atomcore/atomcore/latticemath"

// Kind enumerates the variants of GeoNode.
type Kind int

const (
	KindHalfSpace Kind = iota
	KindHalfPlane
	KindSphere
	KindCircle
	KindCuboid
	KindRect
	KindPolygon
	KindExtrude
	KindTransform
	KindUnion2D
	KindUnion3D
	KindIntersection2D
	KindIntersection3D
	KindDifference2D
	KindDifference3D
)

// GeoNode is one node of a construction-history tree describing a solid
// (3D) or sketch (2D) shape. Only the fields relevant to Kind are
// populated; this mirrors a tagged union using Go's zero-value-friendly
// struct-of-optionals idiom rather than an interface hierarchy, since
// every variant needs uniform structural hashing and evaluation dispatch.
type GeoNode struct {
	Kind Kind

	// HalfSpace (Center, Normal), Sphere (Center), Cuboid (MinCorner3, Extent3)
	Center     latticemath.DVec3
	Normal     latticemath.DVec3
	MinCorner3 latticemath.DVec3
	Extent3    latticemath.DVec3

	// HalfPlane
	Point1 latticemath.DVec2
	Point2 latticemath.DVec2

	// Circle (Center2); Radius is shared by Sphere and Circle
	Center2 latticemath.DVec2
	Radius  float64

	// Rect
	MinCorner2 latticemath.DVec2
	Extent2    latticemath.DVec2

	// Polygon
	Vertices []latticemath.DVec2

	// Extrude
	Height    float64
	Direction latticemath.DVec3
	Infinite  bool

	// Transform
	Rotation    latticemath.Quaternion
	Translation latticemath.DVec3

	// Union2D/Union3D/Intersection2D/Intersection3D
	Shapes []*GeoNode

	// Extrude/Transform (single child) and Difference2D/Difference3D (base)
	Shape *GeoNode
	Base  *GeoNode
	Sub   *GeoNode

	cachedHash *[32]byte
}

// Is3D reports whether the node describes a solid (as opposed to a
// sketch), decided by Kind alone: Extrude, Transform and the 3D boolean
// kinds count as solids without their children being inspected.
func (n *GeoNode) Is3D() bool {
	switch n.Kind {
	case KindHalfSpace, KindSphere, KindCuboid, KindExtrude, KindTransform, KindUnion3D, KindIntersection3D, KindDifference3D:
		return true
	default:
		return false
	}
}

// NewHalfSpace builds a half-space node: the solid on the side of the
// plane through Center opposite Normal (Normal points out of the solid).
func NewHalfSpace(normal, center latticemath.DVec3) *GeoNode {
	return &GeoNode{Kind: KindHalfSpace, Normal: normal, Center: center}
}

// NewSphere builds a sphere node.
func NewSphere(center latticemath.DVec3, radius float64) *GeoNode {
	return &GeoNode{Kind: KindSphere, Center: center, Radius: radius}
}

// NewCuboid builds an axis-aligned box node from its minimum corner and
// per-axis extent.
func NewCuboid(minCorner, extent latticemath.DVec3) *GeoNode {
	return &GeoNode{Kind: KindCuboid, MinCorner3: minCorner, Extent3: extent}
}

// NewHalfPlane builds a 2D half-plane node bounded by the line through
// point1 and point2, with the solid region to the line's right (looking
// from point1 toward point2).
func NewHalfPlane(point1, point2 latticemath.DVec2) *GeoNode {
	return &GeoNode{Kind: KindHalfPlane, Point1: point1, Point2: point2}
}

// NewCircle builds a 2D circle node.
func NewCircle(center latticemath.DVec2, radius float64) *GeoNode {
	return &GeoNode{Kind: KindCircle, Center2: center, Radius: radius}
}

// NewRect builds a 2D axis-aligned rectangle node.
func NewRect(minCorner, extent latticemath.DVec2) *GeoNode {
	return &GeoNode{Kind: KindRect, MinCorner2: minCorner, Extent2: extent}
}

// NewPolygon builds a 2D polygon node from an ordered vertex ring.
func NewPolygon(vertices []latticemath.DVec2) *GeoNode {
	return &GeoNode{Kind: KindPolygon, Vertices: append([]latticemath.DVec2(nil), vertices...)}
}

// NewExtrude lifts shape (a 2D node, whose X/Y map to the solid's X/Z)
// into a solid, either for a finite height or infinitely. direction is
// stored and hashed, and an infinite extrusion with a zero-length
// direction is rejected, but neither ToCSGMesh nor SignedDistance sweeps
// along it: both always extrude along +Y.
func NewExtrude(shape *GeoNode, height float64, direction latticemath.DVec3, infinite bool) *GeoNode {
	return &GeoNode{Kind: KindExtrude, Shape: shape, Height: height, Direction: direction, Infinite: infinite}
}

// NewTransform wraps shape in a rigid transform (rotate then translate).
func NewTransform(shape *GeoNode, rotation latticemath.Quaternion, translation latticemath.DVec3) *GeoNode {
	return &GeoNode{Kind: KindTransform, Shape: shape, Rotation: rotation, Translation: translation}
}

// NewUnion3D/NewIntersection3D combine solids; NewUnion2D/NewIntersection2D
// combine sketches.
func NewUnion3D(shapes ...*GeoNode) *GeoNode { return &GeoNode{Kind: KindUnion3D, Shapes: shapes} }
func NewIntersection3D(shapes ...*GeoNode) *GeoNode {
	return &GeoNode{Kind: KindIntersection3D, Shapes: shapes}
}
func NewDifference3D(base, sub *GeoNode) *GeoNode {
	return &GeoNode{Kind: KindDifference3D, Base: base, Sub: sub}
}
func NewUnion2D(shapes ...*GeoNode) *GeoNode { return &GeoNode{Kind: KindUnion2D, Shapes: shapes} }
func NewIntersection2D(shapes ...*GeoNode) *GeoNode {
	return &GeoNode{Kind: KindIntersection2D, Shapes: shapes}
}
func NewDifference2D(base, sub *GeoNode) *GeoNode {
	return &GeoNode{Kind: KindDifference2D, Base: base, Sub: sub}
}
