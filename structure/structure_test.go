package structure_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/structure"
)

func TestAddDeleteAtom(t *testing.T) {
	s := structure.New()
	id := s.AddAtom(6, latticemath.DVec3{X: 1, Y: 2, Z: 3}, 1)
	require.Equal(t, 1, s.NumAtoms())

	a, err := s.Atom(id)
	require.NoError(t, err)
	assert.EqualValues(t, 6, a.AtomicNumber)

	require.NoError(t, s.DeleteAtom(id))
	assert.Equal(t, 0, s.NumAtoms())

	_, err = s.Atom(id)
	assert.ErrorIs(t, err, structure.ErrAtomNotFound)
}

func TestDeleteAtomWithBondsFails(t *testing.T) {
	s := structure.New()
	a := s.AddAtom(6, latticemath.DVec3{}, 1)
	b := s.AddAtom(1, latticemath.DVec3{X: 1}, 1)
	_, err := s.AddBond(a, b, 1)
	require.NoError(t, err)

	err = s.DeleteAtom(a)
	assert.ErrorIs(t, err, structure.ErrAtomHasBonds)
}

func TestAddBondTwiceFails(t *testing.T) {
	s := structure.New()
	a := s.AddAtom(6, latticemath.DVec3{}, 1)
	b := s.AddAtom(1, latticemath.DVec3{X: 1}, 1)
	_, err := s.AddBond(a, b, 1)
	require.NoError(t, err)
	_, err = s.AddBond(a, b, 1)
	assert.ErrorIs(t, err, structure.ErrBondAlreadyExists)
}

func TestBondInvariant_AfterDeleteBond(t *testing.T) {
	s := structure.New()
	a := s.AddAtom(6, latticemath.DVec3{}, 1)
	b := s.AddAtom(1, latticemath.DVec3{X: 1}, 1)
	bondID, err := s.AddBond(a, b, 1)
	require.NoError(t, err)
	require.NoError(t, s.DeleteBond(bondID))

	atomA, err := s.Atom(a)
	require.NoError(t, err)
	assert.Empty(t, atomA.BondIds)
}

// TestTransform_RoundTrip verifies §8's invariant: transform(q,t) followed
// by transform(q^-1, -q^-1.t) returns every atom within 1e-10.
func TestTransform_RoundTrip(t *testing.T) {
	s := structure.New()
	positions := []latticemath.DVec3{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 5, Z: 0.5}}
	ids := make([]structure.AtomId, len(positions))
	for i, p := range positions {
		ids[i] = s.AddAtom(6, p, 1)
	}

	q, err := latticemath.FromAxisAngle(latticemath.DVec3{Y: 1}, math.Pi/3)
	require.NoError(t, err)
	translation := latticemath.DVec3{X: 10, Y: -3, Z: 2}

	s.Transform(q, translation)

	invQ := q.Conjugate()
	invTranslation := invQ.MulVec3(translation).Scale(-1)
	s.Transform(invQ, invTranslation)

	for i, id := range ids {
		a, err := s.Atom(id)
		require.NoError(t, err)
		assert.InDelta(t, positions[i].X, a.Position.X, 1e-10)
		assert.InDelta(t, positions[i].Y, a.Position.Y, 1e-10)
		assert.InDelta(t, positions[i].Z, a.Position.Z, 1e-10)
	}
}

func TestGetAtomsInRadius(t *testing.T) {
	s := structure.New()
	near := s.AddAtom(6, latticemath.DVec3{X: 0, Y: 0, Z: 0}, 1)
	_ = s.AddAtom(6, latticemath.DVec3{X: 100, Y: 0, Z: 0}, 1)
	found := s.GetAtomsInRadius(latticemath.DVec3{}, 1)
	require.Len(t, found, 1)
	assert.Equal(t, near, found[0])
}

func TestFindPivotPoint(t *testing.T) {
	s := structure.New()
	s.AddAtom(6, latticemath.DVec3{X: 5, Y: 0, Z: 0}, 1)
	s.AddAtom(6, latticemath.DVec3{X: 5, Y: 1, Z: 0}, 1)
	pivot := s.FindPivotPoint(latticemath.DVec3{}, latticemath.DVec3{X: 1})
	assert.InDelta(t, 5, pivot.X, 1e-9)
	assert.InDelta(t, 0, pivot.Y, 1e-9)
}

// TestApplyDiff_ReplaceElement is scenario 6 from spec §8: a base with a
// single C at origin, diffed with "~N @ (0,0,0)", results in a single N at
// the same position (and same id, because the positional match succeeds).
func TestApplyDiff_ReplaceElement(t *testing.T) {
	base := structure.New()
	carbonID := base.AddAtom(6, latticemath.DVec3{}, 1)

	diff := structure.Diff{Atoms: []structure.AtomDiffEntry{
		{Kind: structure.DiffModify, AtomicNumber: 7, Position: latticemath.DVec3{}, AnchorPosition: latticemath.DVec3{}},
	}}
	result, mapping := structure.ApplyDiff(base, diff)

	require.Equal(t, 1, result.NumAtoms())
	a, err := result.Atom(carbonID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, a.AtomicNumber)
	assert.Equal(t, carbonID, mapping[1])
}

// TestApplyDiff_Delete is the second half of scenario 6: a "- @ (0,0,0)"
// diff on the same base yields an empty structure.
func TestApplyDiff_Delete(t *testing.T) {
	base := structure.New()
	base.AddAtom(6, latticemath.DVec3{}, 1)

	diff := structure.Diff{Atoms: []structure.AtomDiffEntry{
		{Kind: structure.DiffDelete, Position: latticemath.DVec3{}},
	}}
	result, _ := structure.ApplyDiff(base, diff)
	assert.Equal(t, 0, result.NumAtoms())
}

func TestApplyDiff_AdditionWithBond(t *testing.T) {
	base := structure.New()
	diff := structure.Diff{
		Atoms: []structure.AtomDiffEntry{
			{Kind: structure.DiffAddition, AtomicNumber: 6, Position: latticemath.DVec3{}},
			{Kind: structure.DiffAddition, AtomicNumber: 1, Position: latticemath.DVec3{X: 1.09}},
		},
		Bonds: []structure.BondDiffEntry{{AtomIndex1: 1, AtomIndex2: 2, Order: 1}},
	}
	result, mapping := structure.ApplyDiff(base, diff)
	require.Equal(t, 2, result.NumAtoms())
	_, ok := result.BondBetween(mapping[1], mapping[2])
	assert.True(t, ok)
}

func TestAtomSpecifier_PathStability(t *testing.T) {
	base := structure.NewAtomSpecifier(3)
	derived := base.Push(structure.PatternInstanceId{OwnerEditId: 7, InstanceIndex: 2})
	other := structure.NewAtomSpecifier(3).Push(structure.PatternInstanceId{OwnerEditId: 7, InstanceIndex: 2})
	assert.True(t, derived.Equal(other))

	unrelated := structure.NewAtomSpecifier(3).Push(structure.PatternInstanceId{OwnerEditId: 7, InstanceIndex: 3})
	assert.False(t, derived.Equal(unrelated))
}
