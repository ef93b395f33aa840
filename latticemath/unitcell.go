package latticemath

import "math"

// DiamondUnitCellSizeAngstrom is the conventional cubic diamond lattice
// constant used by the CubicDiamond preset.
const DiamondUnitCellSizeAngstrom = 3.567

// approxEpsilon is the tolerance used by IsApproximatelyEqual and
// IsApproximatelyCubic.
const approxEpsilon = 1e-5

// degenerateVolumeThreshold is the minimum absolute unit-cell volume below
// which the cell is considered degenerate (ErrDegenerateCell).
const degenerateVolumeThreshold = 1e-12

// UnitCellStruct holds three basis vectors (a, b, c) describing a
// crystallographic unit cell, plus cached crystallographic parameters
// (lengths and angles in degrees). The zero value is NOT a valid cell; use
// NewUnitCellStruct or CubicDiamond.
type UnitCellStruct struct {
	A, B, C DVec3

	CellLengthA, CellLengthB, CellLengthC       float64
	CellAngleAlpha, CellAngleBeta, CellAngleGamma float64
}

// NewUnitCellStruct builds a UnitCellStruct from basis vectors, computing
// and caching the derived lengths/angles.
func NewUnitCellStruct(a, b, c DVec3) UnitCellStruct {
	angle := func(u, v DVec3) float64 {
		lu, lv := u.Length(), v.Length()
		if lu < 1e-15 || lv < 1e-15 {
			return 0
		}
		cos := u.Dot(v) / (lu * lv)
		cos = Clamp(cos, -1.0, 1.0)
		return math.Acos(cos) * 180 / math.Pi
	}
	return UnitCellStruct{
		A: a, B: b, C: c,
		CellLengthA: a.Length(), CellLengthB: b.Length(), CellLengthC: c.Length(),
		CellAngleAlpha: angle(b, c), CellAngleBeta: angle(a, c), CellAngleGamma: angle(a, b),
	}
}

// CubicDiamond returns the standard cubic diamond unit cell: an orthogonal
// basis of length DiamondUnitCellSizeAngstrom along each axis.
func CubicDiamond() UnitCellStruct {
	size := DiamondUnitCellSizeAngstrom
	return NewUnitCellStruct(
		DVec3{X: size},
		DVec3{Y: size},
		DVec3{Z: size},
	)
}

// Volume returns the signed unit-cell volume a . (b x c).
func (u UnitCellStruct) Volume() float64 {
	return u.A.Dot(u.B.Cross(u.C))
}

// IsApproximatelyEqual reports whether u and o have basis vectors equal to
// within a small tolerance (1e-5), useful when comparing cells produced by
// independent floating-point paths.
func (u UnitCellStruct) IsApproximatelyEqual(o UnitCellStruct) bool {
	return u.A.Sub(o.A).Length() < approxEpsilon &&
		u.B.Sub(o.B).Length() < approxEpsilon &&
		u.C.Sub(o.C).Length() < approxEpsilon
}

// IsApproximatelyCubic reports whether the three basis vectors have equal
// length and are mutually orthogonal, within tolerance.
func (u UnitCellStruct) IsApproximatelyCubic() bool {
	la, lb, lc := u.A.Length(), u.B.Length(), u.C.Length()
	if math.Abs(la-lb) >= approxEpsilon || math.Abs(lb-lc) >= approxEpsilon || math.Abs(la-lc) >= approxEpsilon {
		return false
	}
	scaled := approxEpsilon * la * lb
	return math.Abs(u.A.Dot(u.B)) < scaled &&
		math.Abs(u.B.Dot(u.C)) < scaled &&
		math.Abs(u.A.Dot(u.C)) < scaled
}

// LatticeToReal converts a lattice-space position to real-space
// Ångströms: v.X*a + v.Y*b + v.Z*c.
func (u UnitCellStruct) LatticeToReal(v DVec3) DVec3 {
	return u.A.Scale(v.X).Add(u.B.Scale(v.Y)).Add(u.C.Scale(v.Z))
}

// ILatticeToReal converts an integer lattice position to real space.
func (u UnitCellStruct) ILatticeToReal(v IVec3) DVec3 {
	return u.LatticeToReal(v.ToDVec3())
}

// ScalarLatticeToReal converts a scalar lattice-space length along the a
// axis to a real-space length.
func (u UnitCellStruct) ScalarLatticeToReal(v float64) float64 {
	return v * u.CellLengthA
}

// RealToLattice converts a real-space position back to lattice-space
// coordinates by the Cramer-rule inverse of [a b c]. Returns
// ErrDegenerateCell if the unit-cell volume is (near-)zero.
func (u UnitCellStruct) RealToLattice(p DVec3) (DVec3, error) {
	det := u.Volume()
	if math.Abs(det) < degenerateVolumeThreshold {
		return DVec3{}, ErrDegenerateCell
	}
	invDet := 1 / det
	invA := u.B.Cross(u.C).Scale(invDet)
	invB := u.C.Cross(u.A).Scale(invDet)
	invC := u.A.Cross(u.B).Scale(invDet)
	return DVec3{X: invA.Dot(p), Y: invB.Dot(p), Z: invC.Dot(p)}, nil
}

// RealToILattice converts a real-space position to the nearest integer
// lattice coordinate. Returns ErrDegenerateCell if the unit cell is
// degenerate.
func (u UnitCellStruct) RealToILattice(p DVec3) (IVec3, error) {
	lat, err := u.RealToLattice(p)
	if err != nil {
		return IVec3{}, err
	}
	return lat.ToIVec3(), nil
}

// CrystalPlaneProps is the result of MillerToPlaneProps: the real-space unit
// normal of a Miller-index plane family and its d-spacing.
type CrystalPlaneProps struct {
	Normal   DVec3
	DSpacing float64
}

// MillerToPlaneProps computes the real-space unit normal and d-spacing of
// the plane family with Miller indices (h, k, l), via the reciprocal
// lattice: n = (h*(b x c) + k*(c x a) + l*(a x b)) / V, d = 1/|n| before
// normalisation. Returns ErrDegenerateCell if |V| < 1e-12.
func (u UnitCellStruct) MillerToPlaneProps(h, k, l float64) (CrystalPlaneProps, error) {
	bCrossC := u.B.Cross(u.C)
	cCrossA := u.C.Cross(u.A)
	aCrossB := u.A.Cross(u.B)
	volume := u.A.Dot(bCrossC)
	if math.Abs(volume) < degenerateVolumeThreshold {
		return CrystalPlaneProps{}, ErrDegenerateCell
	}
	g := bCrossC.Scale(h).Add(cCrossA.Scale(k)).Add(aCrossB.Scale(l)).Scale(1 / volume)
	mag := g.Length()
	if mag < 1e-15 {
		return CrystalPlaneProps{}, ErrZeroMiller
	}
	return CrystalPlaneProps{
		Normal:   g.Scale(1 / mag),
		DSpacing: 1 / mag,
	}, nil
}

// MillerIntToPlaneProps is the integer-Miller-index convenience wrapper
// around MillerToPlaneProps.
func (u UnitCellStruct) MillerIntToPlaneProps(h, k, l int64) (CrystalPlaneProps, error) {
	return u.MillerToPlaneProps(float64(h), float64(k), float64(l))
}
