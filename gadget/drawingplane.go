package gadget

import "github.com/atomcore/atomcore/node"

// DrawingPlaneData is the discrete state of a drawing-plane node: a
// half-space plane plus a subdivision factor controlling the in-plane
// grid spacing.
type DrawingPlaneData struct {
	HalfSpaceData
	Subdivision int64
}

func (d *DrawingPlaneData) Clone() node.NodeData {
	c := *d
	return &c
}

// DrawingPlaneGadget extends HalfSpaceGadget with a subdivision factor
// and displays an in-plane grid while a drag is in progress, per §4.7.
type DrawingPlaneGadget struct {
	HalfSpaceGadget
	Subdivision int64
}

// NewDrawingPlaneGadget constructs a gadget synced to the given discrete
// state.
func NewDrawingPlaneGadget(d DrawingPlaneData) *DrawingPlaneGadget {
	return &DrawingPlaneGadget{
		HalfSpaceGadget: *NewHalfSpaceGadget(d.MillerIndex, d.Shift),
		Subdivision:     d.Subdivision,
	}
}

// ShowInPlaneGrid reports whether the in-plane grid should be displayed:
// only while the plane is being dragged, matching the half-space
// gadget's is_dragging-gated grid tessellation extended with the
// subdivision spacing.
func (g *DrawingPlaneGadget) ShowInPlaneGrid() bool {
	return g.Dragging
}

// GridSpacing returns the in-plane grid spacing implied by Subdivision:
// the lattice spacing divided evenly Subdivision times, floored at 1.
func (g *DrawingPlaneGadget) GridSpacing() float64 {
	n := g.Subdivision
	if n < 1 {
		n = 1
	}
	return latticeSpacingAngstrom / float64(n)
}

func (g *DrawingPlaneGadget) SyncData(data node.NodeData) {
	if d, ok := data.(*DrawingPlaneData); ok {
		d.MillerIndex = g.MillerIndex
		d.Shift = g.Shift
		d.Subdivision = g.Subdivision
	}
}
