package gadget

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

// Ray is a half-line in world space used for gadget hit-testing and
// dragging, cast from the viewport camera through a screen pixel.
type Ray struct {
	Origin    latticemath.DVec3
	Direction latticemath.DVec3 // assumed normalized
}

// Gadget is a 3D manipulator bound to one node's data. HitTest identifies
// which handle (if any) a ray hits; StartDrag/Drag/EndDrag track a
// manipulation of that handle; SyncData writes the gadget's current
// (possibly still being dragged) state into data, matching §4.7's "on
// end_drag, gadgets quantise the dragged continuous value into the
// discrete node-data field".
type Gadget interface {
	HitTest(ray Ray) (handle int, ok bool)
	StartDrag(handle int, ray Ray)
	Drag(handle int, ray Ray)
	EndDrag()
	SyncData(data node.NodeData)
}

// cylinderHitTest reports whether ray passes within radius of the finite
// axis segment a-b, returning the ray parameter of closest approach.
// Handles are picked by nearest-axis-distance rather than an exact
// surface intersection solve, which is adequate for manipulator hit
// testing.
func cylinderHitTest(a, b latticemath.DVec3, radius float64, ray Ray) (t float64, ok bool) {
	axis := b.Sub(a)
	axisLen := axis.Length()
	if axisLen < 1e-12 {
		return 0, false
	}
	axisDir := axis.Scale(1 / axisLen)

	d1 := ray.Direction
	d2 := axisDir
	r := ray.Origin.Sub(a)

	aa := d1.Dot(d1)
	bb := d1.Dot(d2)
	cc := d2.Dot(d2)
	dd := d1.Dot(r)
	ee := d2.Dot(r)

	denom := aa*cc - bb*bb
	var rayT, axisS float64
	if math.Abs(denom) < 1e-12 {
		rayT = 0
		axisS = ee
	} else {
		rayT = (bb*ee - cc*dd) / denom
		axisS = (aa*ee - bb*dd) / denom
	}
	if rayT < 0 {
		rayT = 0
	}
	if axisS < 0 {
		axisS = 0
	} else if axisS > axisLen {
		axisS = axisLen
	}

	rayPoint := ray.Origin.Add(ray.Direction.Scale(rayT))
	axisPoint := a.Add(axisDir.Scale(axisS))
	if rayPoint.DistanceTo(axisPoint) <= radius {
		return rayT, true
	}
	return 0, false
}

// sphereHitTest returns the ray parameter of the nearest intersection of
// ray with the sphere of the given radius centred at center, or ok=false
// if the ray misses.
func sphereHitTest(center latticemath.DVec3, radius float64, ray Ray) (t float64, ok bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false
}

// closestParamOnAxis returns the parameter t such that origin + dir*t is
// the point on the line through origin along dir closest to ray, used by
// the shift handle (which only moves along the gadget's fixed axis).
func closestParamOnAxis(origin, dir latticemath.DVec3, ray Ray) float64 {
	// Standard closest-point-between-two-lines solve, specialized to the
	// first line passing through the origin.
	d1 := dir
	d2 := ray.Direction
	r := origin.Sub(ray.Origin)

	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d2.Dot(d2)
	d := d1.Dot(r)
	e := d2.Dot(r)

	denom := a*c - b*b
	if math.Abs(denom) < 1e-12 {
		return 0
	}
	return (b*e - c*d) / denom
}
