package csg

import "math"

// Point2D is a point in the sketch plane.
type Point2D struct {
	X, Y float64
}

// Polygon2D is a single closed ring of a Sketch. Outer boundaries and holes
// are not distinguished explicitly: interior/exterior is determined by the
// even-odd rule over every ring in the owning Sketch, so a hole is simply a
// ring nested inside another.
type Polygon2D struct {
	Points []Point2D
}

// Sketch is a 2D region described by a set of closed rings, filled under
// the even-odd rule.
type Sketch struct {
	Rings []Polygon2D
}

// NewSketch wraps a ring slice as a Sketch.
func NewSketch(rings []Polygon2D) Sketch {
	return Sketch{Rings: rings}
}

// Inside reports whether p lies within the sketch's filled region, using
// even-odd ray casting summed across every ring.
func (s Sketch) Inside(p Point2D) bool {
	odd := false
	for _, ring := range s.Rings {
		if rayCastCrosses(ring, p) {
			odd = !odd
		}
	}
	return odd
}

// rayCastCrosses counts, modulo 2, how many edges of ring a horizontal ray
// cast from p to +X crosses. Ties at an edge's upper endpoint are broken by
// the half-open convention [y0, y1) so a ray through a shared vertex is
// counted exactly once by whichever edge treats it as its lower endpoint.
func rayCastCrosses(ring Polygon2D, p Point2D) bool {
	n := len(ring.Points)
	crosses := false
	for i := 0; i < n; i++ {
		a := ring.Points[i]
		b := ring.Points[(i+1)%n]
		if (a.Y <= p.Y) == (b.Y <= p.Y) {
			continue
		}
		t := (p.Y - a.Y) / (b.Y - a.Y)
		xCross := a.X + t*(b.X-a.X)
		if xCross > p.X {
			crosses = !crosses
		}
	}
	return crosses
}

// SignedDistance returns the distance from p to the nearest edge of the
// sketch, negative when p is inside the filled region.
func (s Sketch) SignedDistance(p Point2D) float64 {
	if len(s.Rings) == 0 {
		return math.Inf(1)
	}
	dist := math.Inf(1)
	for _, ring := range s.Rings {
		n := len(ring.Points)
		for i := 0; i < n; i++ {
			a := ring.Points[i]
			b := ring.Points[(i+1)%n]
			d := pointSegmentDistance(p, a, b)
			if d < dist {
				dist = d
			}
		}
	}
	if s.Inside(p) {
		return -dist
	}
	return dist
}

func pointSegmentDistance(p, a, b Point2D) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	var t float64
	if lenSq > Epsilon {
		t = (apx*abx + apy*aby) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx, cy := a.X+t*abx, a.Y+t*aby
	dx, dy := p.X-cx, p.Y-cy
	return math.Sqrt(dx*dx + dy*dy)
}

// SketchUnion2D combines two sketches by contouring the minimum of their
// signed distance fields.
func SketchUnion2D(a, b Sketch, bounds SketchBounds, resolution float64) Sketch {
	return contourSketch(bounds, resolution, func(p Point2D) float64 {
		return math.Min(a.SignedDistance(p), b.SignedDistance(p))
	})
}

// SketchIntersection2D combines two sketches by contouring the maximum of
// their signed distance fields.
func SketchIntersection2D(a, b Sketch, bounds SketchBounds, resolution float64) Sketch {
	return contourSketch(bounds, resolution, func(p Point2D) float64 {
		return math.Max(a.SignedDistance(p), b.SignedDistance(p))
	})
}

// SketchDifference2D subtracts b from a by contouring max(da, -db).
func SketchDifference2D(a, b Sketch, bounds SketchBounds, resolution float64) Sketch {
	return contourSketch(bounds, resolution, func(p Point2D) float64 {
		return math.Max(a.SignedDistance(p), -b.SignedDistance(p))
	})
}

// SketchBounds is the sampling window used when re-contouring a combined
// sketch field.
type SketchBounds struct {
	MinX, MinY, MaxX, MaxY float64
}
