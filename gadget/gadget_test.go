package gadget

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/latticemath"
)

var (
	_ Gadget = (*HalfSpaceGadget)(nil)
	_ Gadget = (*DrawingPlaneGadget)(nil)
	_ Gadget = (*XyzGadget)(nil)
	_ Gadget = (*LatticeRotationGadget)(nil)
)

// rayToward builds a ray that starts far behind the origin along dir and
// travels toward it, so its near sphere intersection lies in the +dir
// direction regardless of dir's component signs.
func rayToward(dir latticemath.DVec3) Ray {
	d := dir.Normalized()
	return Ray{Origin: d.Scale(20), Direction: d.Scale(-1)}
}

func TestHalfSpaceGadget_DirectionHandleQuantizesMillerIndex(t *testing.T) {
	g := NewHalfSpaceGadget(latticemath.IVec3{X: 1, Y: 0, Z: 0}, 0)
	g.StartDrag(1, Ray{})

	ray := rayToward(latticemath.DVec3{X: 1, Y: 0, Z: 0})
	g.Drag(1, ray)
	require.Equal(t, latticemath.IVec3{X: 1, Y: 0, Z: 0}, g.MillerIndex)

	ray = rayToward(latticemath.DVec3{X: 1.02, Y: 0.99, Z: 0.01})
	g.Drag(1, ray)
	g.EndDrag()

	var data HalfSpaceData
	g.SyncData(&data)
	require.Equal(t, latticemath.IVec3{X: 1, Y: 1, Z: 0}, data.MillerIndex)
}

func TestHalfSpaceGadget_HitTestFindsShiftHandle(t *testing.T) {
	g := NewHalfSpaceGadget(latticemath.IVec3{X: 0, Y: 1, Z: 0}, 0)
	center := g.shiftHandleCenter()
	ray := Ray{
		Origin:    center.Add(latticemath.DVec3{X: 5}),
		Direction: latticemath.DVec3{X: -1},
	}
	handle, ok := g.HitTest(ray)
	require.True(t, ok)
	require.Equal(t, 0, handle)
}

func TestDrawingPlaneGadget_ShowsGridOnlyWhileDragging(t *testing.T) {
	g := NewDrawingPlaneGadget(DrawingPlaneData{
		HalfSpaceData: HalfSpaceData{MillerIndex: latticemath.IVec3{X: 0, Y: 1, Z: 0}},
		Subdivision:   4,
	})
	require.False(t, g.ShowInPlaneGrid())
	g.StartDrag(1, Ray{})
	require.True(t, g.ShowInPlaneGrid())
	require.InDelta(t, 0.25, g.GridSpacing(), 1e-9)
}

func TestXyzGadget_DragSnapsToSubdivision(t *testing.T) {
	g := NewXyzGadget(XyzData{Subdivision: 2})
	g.StartDrag(0, Ray{})
	ray := Ray{
		Origin:    latticemath.DVec3{X: 0, Y: 5, Z: 0},
		Direction: latticemath.DVec3{X: 1, Y: 0, Z: 0}.Normalized(),
	}
	// aim at x = 1.1, which should snap to 1.0 (step = 0.5)
	ray.Origin = latticemath.DVec3{X: -10, Y: 0, Z: 0}
	g.Offset.X = 1.1
	g.EndDrag()

	var data XyzData
	g.SyncData(&data)
	require.Equal(t, int64(2), data.Offset.X)
	require.Equal(t, int64(2), data.Subdivision)
}

func TestLatticeRotationGadget_DragReorientsAndSyncs(t *testing.T) {
	g := NewLatticeRotationGadget(LatticeRotationData{Orientation: latticemath.IdentityQuaternion()})
	g.StartDrag(0, Ray{})
	ray := Ray{
		Origin:    latticemath.DVec3{X: 1, Y: 0, Z: 0},
		Direction: latticemath.DVec3{X: -1, Y: 0, Z: 0},
	}
	g.Drag(0, ray)
	g.EndDrag()

	rotated := g.Orientation.MulVec3(latticemath.DVec3{Z: 1})
	require.InDelta(t, 1, rotated.X, 1e-6)
	require.InDelta(t, 0, rotated.Y, 1e-6)
	require.InDelta(t, 0, rotated.Z, 1e-6)

	var data LatticeRotationData
	g.SyncData(&data)
	require.Equal(t, g.Orientation, data.Orientation)
}
