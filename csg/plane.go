package csg

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
)

// Epsilon is the tolerance used by plane/polygon classification throughout
// the kernel.
const Epsilon = 1e-8

// Vertex is a mesh vertex: position plus a (not necessarily unit) normal,
// interpolated linearly when polygons are split.
type Vertex struct {
	Pos    latticemath.DVec3
	Normal latticemath.DVec3
}

// Interpolate returns the vertex at parameter t (in [0,1]) between v and o,
// linearly interpolating both position and normal.
func (v Vertex) Interpolate(o Vertex, t float64) Vertex {
	return Vertex{
		Pos:    v.Pos.Lerp(o.Pos, t),
		Normal: v.Normal.Lerp(o.Normal, t).Normalized(),
	}
}

// Flip returns v with its normal reversed.
func (v Vertex) Flip() Vertex {
	return Vertex{Pos: v.Pos, Normal: v.Normal.Scale(-1)}
}

// Classification constants for plane/polygon relative position, matching
// the csgrs convention of OR-able bitmasks so a spanning polygon's combined
// classification is exactly FRONT|BACK.
const (
	Coplanar = 0
	Front    = 1
	Back     = 2
	Spanning = 3
)

// Plane is an oriented plane in real space: unit Normal and signed offset W
// such that Normal.Dot(p) == W for p on the plane.
type Plane struct {
	Normal latticemath.DVec3
	W      float64
}

// NewPlaneFromPoints builds the plane through three non-collinear points,
// oriented so its normal is (b-a) x (c-a).
func NewPlaneFromPoints(a, b, c latticemath.DVec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalized()
	return Plane{Normal: n, W: n.Dot(a)}
}

// Flip reverses the plane's orientation in place semantics (returns the
// flipped plane; Plane is a small value type).
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Scale(-1), W: -p.W}
}

// OrientPoint classifies a point against the plane: Front/Back/Coplanar.
func (p Plane) OrientPoint(pt latticemath.DVec3) int {
	t := p.Normal.Dot(pt) - p.W
	switch {
	case t < -Epsilon:
		return Back
	case t > Epsilon:
		return Front
	default:
		return Coplanar
	}
}

// ClassifyPolygon classifies poly against p as Coplanar/Front/Back/Spanning
// by OR-ing the classification of every vertex.
func (p Plane) ClassifyPolygon(poly Polygon) int {
	var acc int
	for _, v := range poly.Vertices {
		acc |= p.OrientPoint(v.Pos)
	}
	return acc
}

// OrientPlane classifies another plane's normal against p: Front if the two
// normals point the same way, Back otherwise. Used to classify a coplanar
// polygon produced by a split into the correct front/back coplanar bucket.
func (p Plane) OrientPlane(o Plane) int {
	if p.Normal.Dot(o.Normal) > 0 {
		return Front
	}
	return Back
}

// SplitPolygon partitions poly against p into up to four buckets:
// coplanar-front, coplanar-back (each containing poly itself, unsplit, when
// the whole polygon is coplanar), front, and back (each possibly containing
// newly created pieces when poly spans the plane).
func (p Plane) SplitPolygon(poly Polygon) (coplanarFront, coplanarBack []Polygon, front, back []Polygon) {
	types := make([]int, len(poly.Vertices))
	var polygonType int
	for i, v := range poly.Vertices {
		types[i] = p.OrientPoint(v.Pos)
		polygonType |= types[i]
	}

	switch polygonType {
	case Coplanar:
		if p.OrientPlane(poly.Plane) == Front {
			coplanarFront = append(coplanarFront, poly)
		} else {
			coplanarBack = append(coplanarBack, poly)
		}
	case Front:
		front = append(front, poly)
	case Back:
		back = append(back, poly)
	case Spanning:
		var f, b []Vertex
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.Vertices[i], poly.Vertices[j]
			if ti != Back {
				f = append(f, vi)
			}
			if ti != Front {
				b = append(b, vi)
			}
			if (ti | tj) == Spanning {
				denom := p.Normal.Dot(vj.Pos.Sub(vi.Pos))
				if math.Abs(denom) > Epsilon {
					t := (p.W - p.Normal.Dot(vi.Pos)) / denom
					vNew := vi.Interpolate(vj, t)
					f = append(f, vNew)
					b = append(b, vNew)
				}
			}
		}
		if len(f) >= 3 {
			front = append(front, Polygon{Vertices: f, Plane: poly.Plane})
		}
		if len(b) >= 3 {
			back = append(back, Polygon{Vertices: b, Plane: poly.Plane})
		}
	}
	return
}
