package gadget

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

// LatticeRotationData is the state of a lattice-rotation node: a unit
// quaternion holding the orientation as last dragged; it is not snapped to
// rotations that map the lattice onto itself.
type LatticeRotationData struct {
	Orientation latticemath.Quaternion
}

func (d *LatticeRotationData) Clone() node.NodeData {
	c := *d
	return &c
}

const latticeRotationHandleRadius = 0.4

// LatticeRotationGadget is a single free-rotation handle: dragging it
// reorients Orientation continuously, and EndDrag leaves it as dragged
// (unlike the half-space/xyz gadgets, rotation has no natural integer
// quantisation grid to snap to).
type LatticeRotationGadget struct {
	Orientation latticemath.Quaternion
	Dragging    bool
}

// NewLatticeRotationGadget constructs a gadget synced to the given
// discrete state.
func NewLatticeRotationGadget(d LatticeRotationData) *LatticeRotationGadget {
	return &LatticeRotationGadget{Orientation: d.Orientation}
}

func (g *LatticeRotationGadget) HitTest(ray Ray) (int, bool) {
	if _, ok := sphereHitTest(latticemath.DVec3{}, latticeRotationHandleRadius, ray); ok {
		return 0, true
	}
	return 0, false
}

func (g *LatticeRotationGadget) StartDrag(handle int, ray Ray) {
	g.Dragging = true
}

// Drag reorients the handle so its reference axis (+Z) points at the
// ray's intersection with the handle sphere, mirroring the half-space
// gadget's direction-handle drag but without Miller-index quantisation.
func (g *LatticeRotationGadget) Drag(handle int, ray Ray) {
	t, ok := sphereHitTest(latticemath.DVec3{}, latticeRotationHandleRadius, ray)
	if !ok {
		return
	}
	target := ray.Origin.Add(ray.Direction.Scale(t)).Normalized()
	g.Orientation = rotationArc(latticemath.DVec3{Z: 1}, target)
}

// rotationArc returns the shortest-arc rotation taking the unit vector
// from to the unit vector to.
func rotationArc(from, to latticemath.DVec3) latticemath.Quaternion {
	dot := from.Dot(to)
	if dot > 1-1e-12 {
		return latticemath.IdentityQuaternion()
	}
	if dot < -1+1e-12 {
		// 180 degree turn: pick any axis perpendicular to from.
		axis := from.Cross(latticemath.DVec3{X: 1})
		if axis.Length() < 1e-9 {
			axis = from.Cross(latticemath.DVec3{Y: 1})
		}
		q, err := latticemath.FromAxisAngle(axis, math.Pi)
		if err != nil {
			return latticemath.IdentityQuaternion()
		}
		return q
	}
	axis := from.Cross(to)
	angle := math.Acos(dot)
	q, err := latticemath.FromAxisAngle(axis, angle)
	if err != nil {
		return latticemath.IdentityQuaternion()
	}
	return q
}

func (g *LatticeRotationGadget) EndDrag() {
	g.Dragging = false
}

func (g *LatticeRotationGadget) SyncData(data node.NodeData) {
	if d, ok := data.(*LatticeRotationData); ok {
		d.Orientation = g.Orientation
	}
}
