package structure

import "github.com/atomcore/atomcore/latticemath"

// AtomId, BondId, and ClusterId are opaque 64-bit handles, unique within a
// single AtomicStructure. See DESIGN.md for the width decision.
type AtomId uint64
type BondId uint64
type ClusterId uint64

// DeletedAtomicNumber is the sentinel atomic number marking a diff entry as
// a delete marker (§3).
const DeletedAtomicNumber = 0

// Atom is a single atom: element, position, the bonds it participates in,
// selection state, owning cluster, and (for diffs produced by patterning)
// the crystal depth at which it was generated.
type Atom struct {
	Id              AtomId
	AtomicNumber    int32
	Position        latticemath.DVec3
	BondIds         []BondId
	Selected        bool
	ClusterId       ClusterId
	InCrystalDepth  int32

	// AnchorPosition and IsDiffEntry describe this atom's role when the
	// owning AtomicStructure is a diff (see §3 and ApplyDiff). They are
	// meaningless on a materialised structure.
	AnchorPosition latticemath.DVec3
	IsDiffEntry    bool
}

// Bond connects two atoms with an integer bond order (multiplicity). In a
// diff, Multiplicity == 0 means "unbond".
type Bond struct {
	Id           BondId
	AtomId1      AtomId
	AtomId2      AtomId
	Multiplicity int32
	Selected     bool
}

// Cluster is a named, unordered set of atom ids used as a
// selection/grouping unit.
type Cluster struct {
	Id      ClusterId
	Name    string
	AtomIds map[AtomId]struct{}
}

// OtherAtom returns the id of the bond endpoint that is not atomID, or 0
// and false if atomID is not one of the bond's endpoints.
func (b Bond) OtherAtom(atomID AtomId) (AtomId, bool) {
	switch atomID {
	case b.AtomId1:
		return b.AtomId2, true
	case b.AtomId2:
		return b.AtomId1, true
	default:
		return 0, false
	}
}
