package gadget

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

// Half-space gadget geometry constants, matching the proportions of
// half_space_gadget.rs's GADGET_LENGTH/handle radii (tessellation and
// material are a host-renderer concern, out of scope here).
const (
	halfSpaceGadgetLength  = 6.0
	directionHandleRadius  = 0.5
	directionHandleLength  = 0.6
	shiftHandleRadius      = 0.4
	shiftHandleLength      = 1.2
	latticeSpacingAngstrom = 1.0 // unit-cell size the shift offset is scaled by
)

// HalfSpaceData is the discrete state a half-space node stores: a plane
// normal as a Miller index and an integer shift along it, in lattice
// spacing units.
type HalfSpaceData struct {
	MillerIndex latticemath.IVec3
	Shift       int64
}

func (d *HalfSpaceData) Clone() node.NodeData {
	c := *d
	return &c
}

// HalfSpaceGadget is the two-handle manipulator (shift along normal,
// direction sphere) described by half_space_gadget.rs. Handle 0 is the
// shift handle, handle 1 is the direction handle.
type HalfSpaceGadget struct {
	MillerIndex       latticemath.IVec3
	Shift             int64
	Dir               latticemath.DVec3 // normalized, continuous drag state
	ShiftHandleOffset float64
	Dragging          bool
}

// NewHalfSpaceGadget constructs a gadget synced to the given discrete
// state, computing its continuous direction/offset from it the way
// HalfSpaceGadget::new does.
func NewHalfSpaceGadget(millerIndex latticemath.IVec3, shift int64) *HalfSpaceGadget {
	dir := millerIndex.ToDVec3().Normalized()
	mag := millerIndex.ToDVec3().Length()
	offset := 0.0
	if mag > 1e-12 {
		offset = (float64(shift) / mag) * latticeSpacingAngstrom
	}
	return &HalfSpaceGadget{
		MillerIndex:       millerIndex,
		Shift:             shift,
		Dir:               dir,
		ShiftHandleOffset: offset,
	}
}

func (g *HalfSpaceGadget) shiftHandleCenter() latticemath.DVec3 {
	return g.Dir.Scale(g.ShiftHandleOffset)
}

func (g *HalfSpaceGadget) directionHandleCenter() latticemath.DVec3 {
	return g.Dir.Scale(halfSpaceGadgetLength)
}

func (g *HalfSpaceGadget) HitTest(ray Ray) (int, bool) {
	shiftCenter := g.shiftHandleCenter()
	a := shiftCenter.Sub(g.Dir.Scale(0.5 * shiftHandleLength))
	b := shiftCenter.Add(g.Dir.Scale(0.5 * shiftHandleLength))
	if _, ok := cylinderHitTest(a, b, shiftHandleRadius, ray); ok {
		return 0, true
	}

	dirCenter := g.directionHandleCenter()
	a = dirCenter.Sub(g.Dir.Scale(0.5 * directionHandleLength))
	b = dirCenter.Add(g.Dir.Scale(0.5 * directionHandleLength))
	if _, ok := cylinderHitTest(a, b, directionHandleRadius, ray); ok {
		return 1, true
	}

	return 0, false
}

func (g *HalfSpaceGadget) StartDrag(handle int, ray Ray) {
	g.Dragging = true
}

func (g *HalfSpaceGadget) Drag(handle int, ray Ray) {
	switch handle {
	case 0:
		t := closestParamOnAxis(latticemath.DVec3{}, g.Dir, ray)
		g.ShiftHandleOffset = t
		g.Shift = g.offsetToQuantizedShift(t)
	case 1:
		if t, ok := sphereHitTest(latticemath.DVec3{}, halfSpaceGadgetLength, ray); ok {
			endPoint := ray.Origin.Add(ray.Direction.Scale(t))
			g.Dir = endPoint.Normalized()
			g.MillerIndex = latticemath.QuantizeMillerDirection(g.Dir)
			g.Shift = g.offsetToQuantizedShift(g.ShiftHandleOffset)
		}
	}
}

func (g *HalfSpaceGadget) EndDrag() {
	g.Dragging = false
	g.Dir = g.MillerIndex.ToDVec3().Normalized()
	mag := g.MillerIndex.ToDVec3().Length()
	if mag > 1e-12 {
		g.ShiftHandleOffset = (float64(g.Shift) / mag) * latticeSpacingAngstrom
	}
}

func (g *HalfSpaceGadget) SyncData(data node.NodeData) {
	if d, ok := data.(*HalfSpaceData); ok {
		d.MillerIndex = g.MillerIndex
		d.Shift = g.Shift
	}
}

// offsetToQuantizedShift rounds a continuous offset along Dir to the
// nearest integer number of lattice spacings, matching end_drag's
// rounding policy for the discrete shift field.
func (g *HalfSpaceGadget) offsetToQuantizedShift(offset float64) int64 {
	mag := g.MillerIndex.ToDVec3().Length()
	if mag < 1e-12 {
		return 0
	}
	return int64(math.Round(offset * mag / latticeSpacingAngstrom))
}
