package structure

import (
	"math"

	"github.com/atomcore/atomcore/latticemath"
)

// AtomGridCellSize is the edge length, in Ångströms, of each spatial-hash
// cell. Chosen larger than most realistically possible bonds, so that a
// neighbouring atom is found in the same cell or an adjacent one.
const AtomGridCellSize = 4.0

// gridCell is an integer cell coordinate in the spatial hash.
type gridCell struct {
	X, Y, Z int64
}

// cellForPos returns the integer cell containing p.
func cellForPos(p latticemath.DVec3) gridCell {
	return gridCell{
		X: int64(math.Floor(p.X / AtomGridCellSize)),
		Y: int64(math.Floor(p.Y / AtomGridCellSize)),
		Z: int64(math.Floor(p.Z / AtomGridCellSize)),
	}
}

// spatialHash is a sparse grid mapping integer cells to the atoms whose
// position currently falls in that cell.
type spatialHash struct {
	cells map[gridCell][]AtomId
}

func newSpatialHash() *spatialHash {
	return &spatialHash{cells: make(map[gridCell][]AtomId)}
}

func (h *spatialHash) add(id AtomId, pos latticemath.DVec3) {
	c := cellForPos(pos)
	h.cells[c] = append(h.cells[c], id)
}

func (h *spatialHash) remove(id AtomId, pos latticemath.DVec3) {
	c := cellForPos(pos)
	ids := h.cells[c]
	for i, existing := range ids {
		if existing == id {
			ids[i] = ids[len(ids)-1]
			h.cells[c] = ids[:len(ids)-1]
			break
		}
	}
	if len(h.cells[c]) == 0 {
		delete(h.cells, c)
	}
}

// move relocates id from oldPos's cell to newPos's cell in a single
// transaction, as required by §3.
func (h *spatialHash) move(id AtomId, oldPos, newPos latticemath.DVec3) {
	if cellForPos(oldPos) == cellForPos(newPos) {
		return
	}
	h.remove(id, oldPos)
	h.add(id, newPos)
}

// atomsInCubeAround returns every atom id stored in any cell within
// cellRadius (inclusive, Chebyshev distance) of center's cell.
func (h *spatialHash) atomsInCubeAround(center latticemath.DVec3, cellRadius int64) []AtomId {
	c := cellForPos(center)
	var out []AtomId
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			for dz := -cellRadius; dz <= cellRadius; dz++ {
				if ids, ok := h.cells[gridCell{c.X + dx, c.Y + dy, c.Z + dz}]; ok {
					out = append(out, ids...)
				}
			}
		}
	}
	return out
}
