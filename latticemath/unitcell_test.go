package latticemath_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/latticemath"
)

// TestUnitCellStruct_RoundTrip verifies spec §8's invariant: for any
// non-degenerate cell, real_to_lattice(lattice_to_real(v)) ~= v within
// 1e-10 across a random sample of vectors in [-1e6, 1e6]^3.
func TestUnitCellStruct_RoundTrip(t *testing.T) {
	cell := latticemath.CubicDiamond()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := latticemath.DVec3{
			X: (rng.Float64()*2 - 1) * 1e6,
			Y: (rng.Float64()*2 - 1) * 1e6,
			Z: (rng.Float64()*2 - 1) * 1e6,
		}
		real := cell.LatticeToReal(v)
		back, err := cell.RealToLattice(real)
		require.NoError(t, err)
		assert.InDelta(t, v.X, back.X, 1e-10*math.Max(1, math.Abs(v.X)))
		assert.InDelta(t, v.Y, back.Y, 1e-10*math.Max(1, math.Abs(v.Y)))
		assert.InDelta(t, v.Z, back.Z, 1e-10*math.Max(1, math.Abs(v.Z)))
	}
}

// TestUnitCellStruct_DegenerateCell verifies RealToLattice and
// MillerToPlaneProps surface ErrDegenerateCell for a coplanar basis.
func TestUnitCellStruct_DegenerateCell(t *testing.T) {
	cell := latticemath.NewUnitCellStruct(
		latticemath.DVec3{X: 1},
		latticemath.DVec3{X: 2},
		latticemath.DVec3{Y: 1},
	)
	_, err := cell.RealToLattice(latticemath.DVec3{X: 1, Y: 1, Z: 1})
	assert.ErrorIs(t, err, latticemath.ErrDegenerateCell)

	_, err = cell.MillerToPlaneProps(1, 0, 0)
	assert.ErrorIs(t, err, latticemath.ErrDegenerateCell)
}

// TestUnitCellStruct_HexagonalRoundTrip is scenario 5 from spec §8: a
// hexagonal cell with lattice input (1,1,0) maps to real (2, 2sqrt(3), 0)
// and back.
func TestUnitCellStruct_HexagonalRoundTrip(t *testing.T) {
	cell := latticemath.NewUnitCellStruct(
		latticemath.DVec3{X: 4},
		latticemath.DVec3{X: -2, Y: 2 * math.Sqrt(3)},
		latticemath.DVec3{Z: 6},
	)
	real := cell.LatticeToReal(latticemath.DVec3{X: 1, Y: 1, Z: 0})
	assert.InDelta(t, 2, real.X, 1e-9)
	assert.InDelta(t, 2*math.Sqrt(3), real.Y, 1e-9)
	assert.InDelta(t, 0, real.Z, 1e-9)

	back, err := cell.RealToLattice(real)
	require.NoError(t, err)
	assert.InDelta(t, 1, back.X, 1e-10)
	assert.InDelta(t, 1, back.Y, 1e-10)
	assert.InDelta(t, 0, back.Z, 1e-10)
}

func TestUnitCellStruct_MillerToPlaneProps_Cubic(t *testing.T) {
	cell := latticemath.CubicDiamond()
	props, err := cell.MillerIntToPlaneProps(1, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, props.Normal.X, 1e-9)
	assert.InDelta(t, 0, props.Normal.Y, 1e-9)
	assert.InDelta(t, latticemath.DiamondUnitCellSizeAngstrom, props.DSpacing, 1e-9)
}

func TestQuantizeMillerDirection(t *testing.T) {
	got := latticemath.QuantizeMillerDirection(latticemath.DVec3{X: 1.02, Y: 0.99, Z: 0.01})
	assert.Equal(t, latticemath.IVec3{X: 1, Y: 1, Z: 0}, got)

	got = latticemath.QuantizeMillerDirection(latticemath.DVec3{X: 2, Y: 2, Z: 0})
	assert.Equal(t, latticemath.IVec3{X: 1, Y: 1, Z: 0}, got)
}

func TestQuaternion_AxisAngleRoundTrip(t *testing.T) {
	q, err := latticemath.FromAxisAngle(latticemath.DVec3{Z: 1}, math.Pi/2)
	require.NoError(t, err)
	rotated := q.MulVec3(latticemath.DVec3{X: 1})
	assert.InDelta(t, 0, rotated.X, 1e-9)
	assert.InDelta(t, 1, rotated.Y, 1e-9)

	inv := q.Conjugate()
	back := inv.MulVec3(rotated)
	assert.InDelta(t, 1, back.X, 1e-9)
	assert.InDelta(t, 0, back.Y, 1e-9)
}

func TestFromAxisAngle_ZeroVector(t *testing.T) {
	_, err := latticemath.FromAxisAngle(latticemath.DVec3{}, 1)
	assert.ErrorIs(t, err, latticemath.ErrZeroVector)
}
