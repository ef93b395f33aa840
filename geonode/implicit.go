package geonode

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
)

// SignedDistance evaluates n as an implicit signed-distance function at p:
// negative inside the solid, positive outside, used by DualContour to
// sample a fast preview mesh without running the exact polygon booleans
// that ToCSGMesh performs. Only 3D-solid node kinds are meaningful here;
// a non-3D kind returns +Inf.
func (n *GeoNode) SignedDistance(p latticemath.DVec3) float64 {
	switch n.Kind {
	case KindHalfSpace:
		return signedDistanceHalfSpace(n, p)
	case KindSphere:
		return p.Sub(n.Center).Length() - n.Radius
	case KindCuboid:
		return signedDistanceCuboid(n, p)
	case KindTransform:
		local := n.Rotation.Conjugate().MulVec3(p.Sub(n.Translation))
		return n.Shape.SignedDistance(local)
	case KindUnion3D:
		d := math.Inf(1)
		for _, s := range n.Shapes {
			d = math.Min(d, s.SignedDistance(p))
		}
		return d
	case KindIntersection3D:
		d := math.Inf(-1)
		for _, s := range n.Shapes {
			d = math.Max(d, s.SignedDistance(p))
		}
		return d
	case KindDifference3D:
		return math.Max(n.Base.SignedDistance(p), -n.Sub.SignedDistance(p))
	case KindExtrude:
		return signedDistanceExtrude(n, p)
	default:
		return math.Inf(1)
	}
}

func signedDistanceHalfSpace(n *GeoNode, p latticemath.DVec3) float64 {
	normal := n.Normal.Normalized()
	return normal.Dot(p.Sub(n.Center))
}

func signedDistanceCuboid(n *GeoNode, p latticemath.DVec3) float64 {
	maxCorner := n.MinCorner3.Add(n.Extent3)
	xVal := math.Max(n.MinCorner3.X-p.X, p.X-maxCorner.X)
	yVal := math.Max(n.MinCorner3.Y-p.Y, p.Y-maxCorner.Y)
	zVal := math.Max(n.MinCorner3.Z-p.Z, p.Z-maxCorner.Z)
	return math.Max(math.Max(xVal, yVal), zVal)
}

// signedDistanceExtrude treats the extrusion's cross-section distance as
// the shape's own planar signed distance (evaluated in the XZ plane,
// mirroring csg.Extrude's +Y axis convention) combined with the finite-
// height clamp along Y; an infinite extrusion ignores the Y clamp.
func signedDistanceExtrude(n *GeoNode, p latticemath.DVec3) float64 {
	planar := n.Shape.SignedDistance2D(latticemath.DVec2{X: p.X, Y: p.Z})
	if n.Infinite {
		return planar
	}
	yVal := math.Max(-p.Y, p.Y-n.Height)
	return math.Max(planar, yVal)
}

// SignedDistance2D evaluates a 2D-sketch node kind at p; 3D-only kinds
// return +Inf.
func (n *GeoNode) SignedDistance2D(p latticemath.DVec2) float64 {
	switch n.Kind {
	case KindHalfPlane:
		dir := n.Point2.Sub(n.Point1).Normalized()
		normal := latticemath.DVec2{X: -dir.Y, Y: dir.X}
		return normal.Dot(p.Sub(n.Point1))
	case KindCircle:
		return p.Sub(n.Center2).Length() - n.Radius
	case KindRect:
		maxCorner := n.MinCorner2.Add(n.Extent2)
		xVal := math.Max(n.MinCorner2.X-p.X, p.X-maxCorner.X)
		yVal := math.Max(n.MinCorner2.Y-p.Y, p.Y-maxCorner.Y)
		return math.Max(xVal, yVal)
	case KindPolygon:
		return polygonSignedDistance(n.Vertices, p)
	case KindUnion2D:
		d := math.Inf(1)
		for _, s := range n.Shapes {
			d = math.Min(d, s.SignedDistance2D(p))
		}
		return d
	case KindIntersection2D:
		d := math.Inf(-1)
		for _, s := range n.Shapes {
			d = math.Max(d, s.SignedDistance2D(p))
		}
		return d
	case KindDifference2D:
		return math.Max(n.Base.SignedDistance2D(p), -n.Sub.SignedDistance2D(p))
	default:
		return math.Inf(1)
	}
}

func polygonSignedDistance(vertices []latticemath.DVec2, p latticemath.DVec2) float64 {
	if len(vertices) < 3 {
		return math.Inf(1)
	}
	dist := math.Inf(1)
	inside := false
	n := len(vertices)
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		d := pointSegmentDistance2D(p, a, b)
		if d < dist {
			dist = d
		}
		if (a.Y <= p.Y) != (b.Y <= p.Y) {
			t := (p.Y - a.Y) / (b.Y - a.Y)
			xCross := a.X + t*(b.X-a.X)
			if xCross > p.X {
				inside = !inside
			}
		}
	}
	if inside {
		return -dist
	}
	return dist
}

func pointSegmentDistance2D(p, a, b latticemath.DVec2) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.Dot(ab)
	t := 0.0
	if lenSq > 1e-12 {
		t = ap.Dot(ab) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Length()
}
