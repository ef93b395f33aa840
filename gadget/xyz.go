package gadget

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

const xyzHandleLength = 3.0
const xyzHandleRadius = 0.3

// XyzData is the discrete state of an xyz-positioned node: an integer
// lattice offset along each axis, expressed as a multiple of
// Subdivision-many subdivisions per lattice spacing.
type XyzData struct {
	Offset      latticemath.IVec3
	Subdivision int64
}

func (d *XyzData) Clone() node.NodeData {
	c := *d
	return &c
}

var xyzAxes = [3]latticemath.DVec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// XyzGadget exposes three axis handles whose drag steps snap to an
// integer multiple of the lattice spacing divided by Subdivision, per
// §4.7's "drag steps snap to an integer lattice multiplier determined
// by subdivision".
type XyzGadget struct {
	Offset      latticemath.DVec3 // continuous drag state, in world units
	Subdivision int64
	Dragging    bool
}

// NewXyzGadget constructs a gadget synced to the given discrete state.
func NewXyzGadget(d XyzData) *XyzGadget {
	sub := d.Subdivision
	if sub < 1 {
		sub = 1
	}
	step := latticeSpacingAngstrom / float64(sub)
	return &XyzGadget{
		Offset: latticemath.DVec3{
			X: float64(d.Offset.X) * step,
			Y: float64(d.Offset.Y) * step,
			Z: float64(d.Offset.Z) * step,
		},
		Subdivision: sub,
	}
}

func (g *XyzGadget) handleEnds(axis int) (a, b latticemath.DVec3) {
	dir := xyzAxes[axis]
	center := g.Offset.Add(dir.Scale(xyzHandleLength))
	a = center.Sub(dir.Scale(0.5 * xyzHandleLength))
	b = center.Add(dir.Scale(0.5 * xyzHandleLength))
	return
}

func (g *XyzGadget) HitTest(ray Ray) (int, bool) {
	for axis := 0; axis < 3; axis++ {
		a, b := g.handleEnds(axis)
		if _, ok := cylinderHitTest(a, b, xyzHandleRadius, ray); ok {
			return axis, true
		}
	}
	return 0, false
}

func (g *XyzGadget) StartDrag(handle int, ray Ray) {
	g.Dragging = true
}

func (g *XyzGadget) Drag(handle int, ray Ray) {
	if handle < 0 || handle > 2 {
		return
	}
	dir := xyzAxes[handle]
	t := closestParamOnAxis(g.offsetWithoutAxis(handle), dir, ray)
	switch handle {
	case 0:
		g.Offset.X = t
	case 1:
		g.Offset.Y = t
	case 2:
		g.Offset.Z = t
	}
}

// offsetWithoutAxis returns the current offset with the dragged axis's
// component zeroed, so the drag line passes through the gadget's other
// two fixed coordinates.
func (g *XyzGadget) offsetWithoutAxis(axis int) latticemath.DVec3 {
	o := g.Offset
	switch axis {
	case 0:
		o.X = 0
	case 1:
		o.Y = 0
	case 2:
		o.Z = 0
	}
	return o
}

func (g *XyzGadget) EndDrag() {
	g.Dragging = false
	step := latticeSpacingAngstrom / float64(g.Subdivision)
	g.Offset = latticemath.DVec3{
		X: math.Round(g.Offset.X/step) * step,
		Y: math.Round(g.Offset.Y/step) * step,
		Z: math.Round(g.Offset.Z/step) * step,
	}
}

func (g *XyzGadget) quantizedOffset() latticemath.IVec3 {
	step := latticeSpacingAngstrom / float64(g.Subdivision)
	return latticemath.IVec3{
		X: int64(math.Round(g.Offset.X / step)),
		Y: int64(math.Round(g.Offset.Y / step)),
		Z: int64(math.Round(g.Offset.Z / step)),
	}
}

func (g *XyzGadget) SyncData(data node.NodeData) {
	if d, ok := data.(*XyzData); ok {
		d.Offset = g.quantizedOffset()
		d.Subdivision = g.Subdivision
	}
}
