package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/structure"
)

func TestEnumerateTopology_EthaneHasNoInversionsOrInvalidTorsions(t *testing.T) {
	s := structure.New()
	c1 := s.AddAtom(6, latticemath.DVec3{}, 0)
	c2 := s.AddAtom(6, latticemath.DVec3{X: 1.5}, 0)
	h := make([]structure.AtomId, 0, 6)
	for i := 0; i < 3; i++ {
		h = append(h, s.AddAtom(1, latticemath.DVec3{X: -0.5, Y: float64(i)}, 0))
	}
	for i := 0; i < 3; i++ {
		h = append(h, s.AddAtom(1, latticemath.DVec3{X: 2.0, Y: float64(i)}, 0))
	}

	_, err := s.AddBond(c1, c2, 1)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.AddBond(c1, h[i], 1)
		require.NoError(t, err)
	}
	for i := 3; i < 6; i++ {
		_, err := s.AddBond(c2, h[i], 1)
		require.NoError(t, err)
	}

	topo := EnumerateTopology(s)

	require.Len(t, topo.AtomIds, 8)
	require.Len(t, topo.Bonds, 7)
	// Each carbon has 4 neighbours (the other carbon + 3 hydrogens) ->
	// C(4,2)=6 angles per carbon; terminal hydrogens contribute none.
	require.Len(t, topo.Angles, 12)
	// 3 H on c1 x 3 H on c2 torsions around the central C-C bond.
	require.Len(t, topo.Torsions, 9)
	require.Empty(t, topo.Inversions)
}

func TestEnumerateTopology_FormaldehydeCenterIsInversionCenter(t *testing.T) {
	s := structure.New()
	c := s.AddAtom(6, latticemath.DVec3{}, 0)
	o := s.AddAtom(8, latticemath.DVec3{X: 1.2}, 0)
	h1 := s.AddAtom(1, latticemath.DVec3{X: -0.5, Y: 0.9}, 0)
	h2 := s.AddAtom(1, latticemath.DVec3{X: -0.5, Y: -0.9}, 0)

	_, err := s.AddBond(c, o, 2) // double bond
	require.NoError(t, err)
	_, err = s.AddBond(c, h1, 1)
	require.NoError(t, err)
	_, err = s.AddBond(c, h2, 1)
	require.NoError(t, err)

	topo := EnumerateTopology(s)
	require.Len(t, topo.Inversions, 3)
	for _, inv := range topo.Inversions {
		require.Equal(t, topo.AtomIds[inv.Idx2], c)
	}
}

func TestEnumerateTopology_PhosphineIsAlwaysInversionCenter(t *testing.T) {
	s := structure.New()
	p := s.AddAtom(15, latticemath.DVec3{}, 0)
	h1 := s.AddAtom(1, latticemath.DVec3{X: 1}, 0)
	h2 := s.AddAtom(1, latticemath.DVec3{Y: 1}, 0)
	h3 := s.AddAtom(1, latticemath.DVec3{Z: 1}, 0)

	for _, h := range []structure.AtomId{h1, h2, h3} {
		_, err := s.AddBond(p, h, 1) // all single bonds
		require.NoError(t, err)
	}

	topo := EnumerateTopology(s)
	require.Len(t, topo.Inversions, 3)
}

func TestEnumerateTopology_NonbondedPairsExcludeOneTwoAndOneThree(t *testing.T) {
	s := structure.New()
	a := s.AddAtom(6, latticemath.DVec3{}, 0)
	b := s.AddAtom(6, latticemath.DVec3{X: 1}, 0)
	c := s.AddAtom(6, latticemath.DVec3{X: 2}, 0)
	d := s.AddAtom(6, latticemath.DVec3{X: 3}, 0)

	_, err := s.AddBond(a, b, 1)
	require.NoError(t, err)
	_, err = s.AddBond(b, c, 1)
	require.NoError(t, err)
	_, err = s.AddBond(c, d, 1)
	require.NoError(t, err)

	topo := EnumerateTopology(s)
	// a-b-c-d chain: only the a-d pair is neither 1-2 nor 1-3.
	require.Len(t, topo.NonbondedPairs, 1)
	idx := map[structure.AtomId]int{}
	for i, id := range topo.AtomIds {
		idx[id] = i
	}
	pair := topo.NonbondedPairs[0]
	require.ElementsMatch(t, []int{idx[a], idx[d]}, []int{pair.Idx1, pair.Idx2})
}
