package structure

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
)

// MatchTolerance is the maximum real-space distance at which a diff entry
// is considered to refer to the same base atom, per §4.5's "matching
// tolerance... is an explicit policy" requirement.
const MatchTolerance = 1e-6

// AtomDiffEntry is one atom line of an atom-edit diff (§3, §4.5, §4.8).
//
// Kind distinguishes the three possible intents:
//   - DiffDelete: a delete marker ("- @ (x,y,z)"); Position is the anchor.
//   - DiffAddition: a pure addition ("+El @ (x,y,z)"); AnchorPosition is unused.
//   - DiffModify: a replacement/move ("~El @ (x,y,z) [from (ox,oy,oz)]");
//     AnchorPosition == Position means replacement in place, otherwise move.
type AtomDiffEntry struct {
	Kind           DiffEntryKind
	AtomicNumber   int32
	Position       latticemath.DVec3
	AnchorPosition latticemath.DVec3
}

// DiffEntryKind enumerates the intents an AtomDiffEntry can carry.
type DiffEntryKind int

const (
	DiffAddition DiffEntryKind = iota
	DiffModify
	DiffDelete
)

// BondDiffEntry is one bond line of an atom-edit diff. AtomIndex1/2 are
// 1-indexed positions into the diff's atom-entry list (matching §4.8's
// text grammar); Order == 0 means "unbond".
type BondDiffEntry struct {
	AtomIndex1, AtomIndex2 int
	Order                  int32
}

// Diff is a parsed atom-edit diff: an ordered list of atom entries plus
// bond entries referencing them by position.
type Diff struct {
	Atoms []AtomDiffEntry
	Bonds []BondDiffEntry
}

// nearestAtom finds the live atom in s nearest to p within MatchTolerance,
// breaking ties by smallest id, as required by §4.5.
func (s *AtomicStructure) nearestAtom(p latticemath.DVec3) (AtomId, bool) {
	best := math.MaxFloat64
	var bestID AtomId
	found := false
	for _, id := range s.AtomIds() {
		a := s.atoms[id]
		d := a.Position.Sub(p)
		d2 := d.Dot(d)
		tol := MatchTolerance * MatchTolerance
		if d2 > tol {
			continue
		}
		if !found || d2 < best || (d2 == best && id < bestID) {
			best = d2
			bestID = id
			found = true
		}
	}
	return bestID, found
}

// ApplyDiff produces a new AtomicStructure by applying d to base,
// following the four-phase algorithm of §4.5: deletes, then
// modifications/moves (falling back to additions when no anchor match is
// found), then pure additions, then bond entries. base is not mutated.
//
// diffIndexToResultID maps each diff atom entry's 1-based index (matching
// the text format's bond-line indexing) to the id it produced or matched
// in the result, so callers constructing bond entries from a parsed text
// diff can resolve BondDiffEntry.AtomIndex{1,2}.
func ApplyDiff(base *AtomicStructure, d Diff) (result *AtomicStructure, diffIndexToResultID map[int]AtomId) {
	result = base.Clone()
	diffIndexToResultID = make(map[int]AtomId)

	// Phase 1: deletes.
	for i, entry := range d.Atoms {
		if entry.Kind != DiffDelete {
			continue
		}
		if id, ok := result.nearestAtom(entry.Position); ok {
			a := result.atoms[id]
			// An atom with live bonds cannot be deleted directly (§4.5
			// precondition mirrors §4.5 of structure.DeleteAtom); remove its
			// bonds first so the delete marker is honoured regardless of
			// bond state the diff was captured against.
			for _, bid := range append([]BondId{}, a.BondIds...) {
				_ = result.DeleteBond(bid)
			}
			_ = result.DeleteAtom(id)
			diffIndexToResultID[i+1] = id
		}
	}

	// Phase 2: modifications/moves, falling back to addition.
	pendingAdditions := make([]int, 0)
	for i, entry := range d.Atoms {
		if entry.Kind != DiffModify {
			continue
		}
		if id, ok := result.nearestAtom(entry.AnchorPosition); ok {
			a := result.atoms[id]
			a.AtomicNumber = entry.AtomicNumber
			oldPos := a.Position
			a.Position = entry.Position
			result.grid.move(id, oldPos, a.Position)
			result.markDirty(id)
			diffIndexToResultID[i+1] = id
		} else {
			pendingAdditions = append(pendingAdditions, i)
		}
	}

	// Phase 3: pure additions (explicit DiffAddition entries, plus any
	// DiffModify entries that found no anchor match in phase 2).
	for i, entry := range d.Atoms {
		if entry.Kind != DiffAddition {
			continue
		}
		id := result.AddAtom(entry.AtomicNumber, entry.Position, defaultClusterID(result))
		diffIndexToResultID[i+1] = id
	}
	for _, i := range pendingAdditions {
		entry := d.Atoms[i]
		id := result.AddAtom(entry.AtomicNumber, entry.Position, defaultClusterID(result))
		diffIndexToResultID[i+1] = id
	}

	// Phase 4: bond entries.
	for _, be := range d.Bonds {
		a1, ok1 := diffIndexToResultID[be.AtomIndex1]
		a2, ok2 := diffIndexToResultID[be.AtomIndex2]
		if !ok1 || !ok2 {
			continue
		}
		if be.Order == 0 {
			if bid, ok := result.BondBetween(a1, a2); ok {
				_ = result.DeleteBond(bid)
			}
			continue
		}
		if _, ok := result.BondBetween(a1, a2); !ok {
			_, _ = result.AddBond(a1, a2, be.Order)
		}
	}

	return result, diffIndexToResultID
}

func defaultClusterID(s *AtomicStructure) ClusterId {
	for id, c := range s.clusters {
		if c.Name == "default" {
			return id
		}
	}
	for id := range s.clusters {
		return id
	}
	return s.AddCluster("default")
}

// Clone returns a deep copy of s: independent atoms/bonds/clusters maps and
// spatial hash, sharing no mutable state with s.
func (s *AtomicStructure) Clone() *AtomicStructure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &AtomicStructure{
		nextID:   s.nextID,
		atoms:    make(map[AtomId]*Atom, len(s.atoms)),
		bonds:    make(map[BondId]*Bond, len(s.bonds)),
		clusters: make(map[ClusterId]*Cluster, len(s.clusters)),
		grid:     newSpatialHash(),
		dirty:    make(map[AtomId]struct{}, len(s.dirty)),
	}
	for id, a := range s.atoms {
		cp := *a
		cp.BondIds = append([]BondId{}, a.BondIds...)
		out.atoms[id] = &cp
		out.grid.add(id, cp.Position)
	}
	for id, b := range s.bonds {
		cp := *b
		out.bonds[id] = &cp
	}
	for id, c := range s.clusters {
		cp := &Cluster{Id: c.Id, Name: c.Name, AtomIds: make(map[AtomId]struct{}, len(c.AtomIds))}
		for aid := range c.AtomIds {
			cp.AtomIds[aid] = struct{}{}
		}
		out.clusters[id] = cp
	}
	for id := range s.dirty {
		out.dirty[id] = struct{}{}
	}
	return out
}
