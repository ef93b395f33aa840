package layout

import (
	"sort"

	"github.com/atomcore/atomcore/structure"
)

// Bond order values that mark an atom as sp2-like for inversion
// purposes, matching motif's bondOrderValues table.
const (
	bondOrderDouble   int32 = 2
	bondOrderAromatic int32 = 5
)

// BondInteraction is a 1-2 interaction between two atoms.
type BondInteraction struct {
	Idx1, Idx2 int
	Order      int32
}

// AngleInteraction is a 1-3 interaction; Idx2 is the vertex bonded to
// both Idx1 and Idx3.
type AngleInteraction struct {
	Idx1, Idx2, Idx3 int
}

// TorsionInteraction is a 1-4 interaction around the central bond
// Idx2-Idx3.
type TorsionInteraction struct {
	Idx1, Idx2, Idx3, Idx4 int
}

// InversionInteraction is an out-of-plane interaction at an sp2-like
// center. Idx2 is the center; Idx1 and Idx3 define the reference plane;
// Idx4 is the out-of-plane atom.
type InversionInteraction struct {
	Idx1, Idx2, Idx3, Idx4 int
}

// NonbondedPair is a van-der-Waals candidate pair: any atom pair not
// already covered by a bond or angle.
type NonbondedPair struct {
	Idx1, Idx2 int
}

// MolecularTopology is the set of bonded and non-bonded interaction
// lists enumerated from an AtomicStructure's bond graph, indexed by a
// 0-based contiguous topology index rather than AtomId.
type MolecularTopology struct {
	AtomIds        []structure.AtomId
	AtomicNumbers  []int32
	Bonds          []BondInteraction
	Angles         []AngleInteraction
	Torsions       []TorsionInteraction
	Inversions     []InversionInteraction
	NonbondedPairs []NonbondedPair
}

// neighbor is an adjacency-list entry: the neighbouring atom's topology
// index and the multiplicity of the bond connecting them.
type neighbor struct {
	idx   int
	order int32
}

// EnumerateTopology builds a MolecularTopology from s, enumerating bonds
// (1-2), angles (1-3), torsions (1-4), sp2/pyramidal inversions, and
// non-bonded pairs. Atom indices are compacted to a 0-based contiguous
// topology index in ascending AtomId order; use AtomIds to map an index
// back to the structure it came from.
//
// Enumeration logic follows RDKit's Builder.cpp, as ported by the
// original crystolecule topology module.
func EnumerateTopology(s *structure.AtomicStructure) MolecularTopology {
	ids := s.AtomIds()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	idToIdx := make(map[structure.AtomId]int, len(ids))
	atomicNumbers := make([]int32, len(ids))
	for i, id := range ids {
		atom, err := s.Atom(id)
		if err != nil {
			continue
		}
		idToIdx[id] = i
		atomicNumbers[i] = atom.AtomicNumber
	}

	neighbors := make([][]neighbor, len(ids))
	seenBond := make(map[structure.BondId]bool)
	var bonds []BondInteraction

	for i, id := range ids {
		atom, err := s.Atom(id)
		if err != nil {
			continue
		}
		for _, bondID := range atom.BondIds {
			if seenBond[bondID] {
				continue
			}
			bond, err := s.Bond(bondID)
			if err != nil {
				continue
			}
			other := bond.AtomId2
			if other == id {
				other = bond.AtomId1
			}
			j, ok := idToIdx[other]
			if !ok {
				continue
			}
			seenBond[bondID] = true
			neighbors[i] = append(neighbors[i], neighbor{idx: j, order: bond.Multiplicity})
			neighbors[j] = append(neighbors[j], neighbor{idx: i, order: bond.Multiplicity})
			idx1, idx2 := i, j
			if idx1 > idx2 {
				idx1, idx2 = idx2, idx1
			}
			bonds = append(bonds, BondInteraction{Idx1: idx1, Idx2: idx2, Order: bond.Multiplicity})
		}
	}
	for _, n := range neighbors {
		sort.Slice(n, func(a, b int) bool { return n[a].idx < n[b].idx })
	}
	sort.Slice(bonds, func(a, b int) bool {
		if bonds[a].Idx1 != bonds[b].Idx1 {
			return bonds[a].Idx1 < bonds[b].Idx1
		}
		return bonds[a].Idx2 < bonds[b].Idx2
	})

	var angles []AngleInteraction
	for vertex, nbrs := range neighbors {
		for i := 0; i < len(nbrs); i++ {
			for j := i + 1; j < len(nbrs); j++ {
				angles = append(angles, AngleInteraction{Idx1: nbrs[i].idx, Idx2: vertex, Idx3: nbrs[j].idx})
			}
		}
	}

	var torsions []TorsionInteraction
	for _, bond := range bonds {
		j, k := bond.Idx1, bond.Idx2
		for _, ni := range neighbors[j] {
			if ni.idx == k {
				continue
			}
			for _, nl := range neighbors[k] {
				if nl.idx == j || nl.idx == ni.idx {
					continue
				}
				torsions = append(torsions, TorsionInteraction{Idx1: ni.idx, Idx2: j, Idx3: k, Idx4: nl.idx})
			}
		}
	}

	var inversions []InversionInteraction
	for center, nbrs := range neighbors {
		if len(nbrs) != 3 {
			continue
		}
		if !isInversionCenter(atomicNumbers[center], nbrs) {
			continue
		}
		n0, n1, n2 := nbrs[0].idx, nbrs[1].idx, nbrs[2].idx
		inversions = append(inversions,
			InversionInteraction{Idx1: n0, Idx2: center, Idx3: n1, Idx4: n2},
			InversionInteraction{Idx1: n0, Idx2: center, Idx3: n2, Idx4: n1},
			InversionInteraction{Idx1: n1, Idx2: center, Idx3: n2, Idx4: n0},
		)
	}

	exclusions := make(map[[2]int]bool, len(bonds)+len(angles))
	for _, b := range bonds {
		exclusions[[2]int{b.Idx1, b.Idx2}] = true
	}
	for _, a := range angles {
		lo, hi := a.Idx1, a.Idx3
		if lo > hi {
			lo, hi = hi, lo
		}
		exclusions[[2]int{lo, hi}] = true
	}
	var nonbonded []NonbondedPair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if !exclusions[[2]int{i, j}] {
				nonbonded = append(nonbonded, NonbondedPair{Idx1: i, Idx2: j})
			}
		}
	}

	return MolecularTopology{
		AtomIds:        ids,
		AtomicNumbers:  atomicNumbers,
		Bonds:          bonds,
		Angles:         angles,
		Torsions:       torsions,
		Inversions:     inversions,
		NonbondedPairs: nonbonded,
	}
}

func isInversionCenter(atomicNumber int32, nbrs []neighbor) bool {
	switch atomicNumber {
	case 6, 7, 8:
		for _, n := range nbrs {
			if n.order == bondOrderDouble || n.order == bondOrderAromatic {
				return true
			}
		}
		return false
	case 15, 33, 51, 83:
		return true
	default:
		return false
	}
}
