package motif

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/latticemath"
)

func TestParseMotif_ParamSiteBond(t *testing.T) {
	text := `
# diamond cubic motif
param dopant Si
site a1 C 0 0 0
site a2 dopant 0.25 0.25 0.25
bond a1 a2 1
`
	m, err := ParseMotif(text)
	require.NoError(t, err)
	require.Len(t, m.Parameters, 1)
	require.Equal(t, "dopant", m.Parameters[0].Name)
	require.EqualValues(t, 14, m.Parameters[0].DefaultAtomicNumber)

	require.Len(t, m.Sites, 2)
	a1 := m.Sites["a1"]
	require.False(t, a1.IsParameterized())
	require.EqualValues(t, 6, a1.AtomicNumber)

	a2 := m.Sites["a2"]
	require.True(t, a2.IsParameterized())
	require.Equal(t, 0, a2.ParameterIndex())
	require.Equal(t, latticemath.DVec3{X: 0.25, Y: 0.25, Z: 0.25}, a2.Position)

	require.Len(t, m.Bonds, 1)
	require.Equal(t, "a1", m.Bonds[0].Site1.ID)
	require.Equal(t, "a2", m.Bonds[0].Site2.ID)
	require.EqualValues(t, 1, m.Bonds[0].Multiplicity)
}

func TestParseMotif_RelativeCellBondSpecifier(t *testing.T) {
	text := `
site a C 0 0 0
site b C 0.5 0.5 0.5
bond a +..b 2
`
	m, err := ParseMotif(text)
	require.NoError(t, err)
	require.Len(t, m.Bonds, 1)
	b := m.Bonds[0]
	require.Equal(t, "a", b.Site1.ID)
	require.Equal(t, latticemath.IVec3{}, b.Site1.RelativeCell)
	require.Equal(t, "b", b.Site2.ID)
	require.Equal(t, latticemath.IVec3{X: 1, Y: 0, Z: 0}, b.Site2.RelativeCell)
	require.EqualValues(t, 2, b.Multiplicity)
}

func TestParseMotif_UnknownElementFails(t *testing.T) {
	_, err := ParseMotif("site a Xx 0 0 0")
	require.Error(t, err)
}

func TestParseMotif_UnknownCommandFails(t *testing.T) {
	_, err := ParseMotif("frobnicate a b c")
	require.Error(t, err)
}

func TestResolveAtomicNumber(t *testing.T) {
	m := Motif{Parameters: []ParameterElement{{Name: "dopant", DefaultAtomicNumber: 14}}}
	param := Site{AtomicNumber: -1}
	require.EqualValues(t, 14, m.ResolveAtomicNumber(param, nil))
	require.EqualValues(t, 5, m.ResolveAtomicNumber(param, map[string]int32{"dopant": 5}))

	fixed := Site{AtomicNumber: 6}
	require.EqualValues(t, 6, m.ResolveAtomicNumber(fixed, map[string]int32{"dopant": 5}))
}
