package motif

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/structure"
)

func TestParseAtomDiffText_AllEntryKinds(t *testing.T) {
	text := `
# additions, a move, a delete, and bonds
+C @ (0, 0, 0)
~N @ (1, 1, 1) [from (0.9, 1, 1)]
~O @ (2, 2, 2)
- @ (3, 3, 3)
bond 1-2 double
unbond 3-4
`
	d, err := ParseAtomDiffText(text)
	require.NoError(t, err)
	require.Len(t, d.Atoms, 4)

	add := d.Atoms[0]
	require.Equal(t, structure.DiffAddition, add.Kind)
	require.EqualValues(t, 6, add.AtomicNumber)

	move := d.Atoms[1]
	require.Equal(t, structure.DiffModify, move.Kind)
	require.EqualValues(t, 7, move.AtomicNumber)
	require.NotEqual(t, move.Position, move.AnchorPosition)

	replace := d.Atoms[2]
	require.Equal(t, structure.DiffModify, replace.Kind)
	require.Equal(t, replace.Position, replace.AnchorPosition)

	del := d.Atoms[3]
	require.Equal(t, structure.DiffDelete, del.Kind)

	require.Len(t, d.Bonds, 2)
	require.Equal(t, structure.BondDiffEntry{AtomIndex1: 1, AtomIndex2: 2, Order: 2}, d.Bonds[0])
	require.Equal(t, structure.BondDiffEntry{AtomIndex1: 3, AtomIndex2: 4, Order: 0}, d.Bonds[1])
}

func TestParseAtomDiffText_BondOutOfRangeFails(t *testing.T) {
	_, err := ParseAtomDiffText("+C @ (0, 0, 0)\nbond 1-2 single")
	require.Error(t, err)
}

func TestParseAtomDiffText_UnknownBondOrderFails(t *testing.T) {
	_, err := ParseAtomDiffText("+C @ (0, 0, 0)\n+C @ (1, 1, 1)\nbond 1-2 nonsense")
	require.Error(t, err)
}

func TestParseAtomDiffText_NumericBondOrder(t *testing.T) {
	d, err := ParseAtomDiffText("+C @ (0, 0, 0)\n+C @ (1, 1, 1)\nbond 1-2 3")
	require.NoError(t, err)
	require.EqualValues(t, 3, d.Bonds[0].Order)
}

func TestSerializeAtomDiffText_RoundTrip(t *testing.T) {
	text := "+C @ (0, 0, 0)\n~N @ (1, 1, 1) [from (0.9, 1, 1)]\n~O @ (2, 2, 2)\n- @ (3, 3, 3)\nbond 1-2 double\nunbond 3-4"
	d, err := ParseAtomDiffText(text)
	require.NoError(t, err)

	out := SerializeAtomDiffText(d)
	d2, err := ParseAtomDiffText(out)
	require.NoError(t, err)
	require.Equal(t, d, d2)
}
