package eval

import (
	"encoding/binary"
	"math"
	"unsafe"

	"lukechampine.com/blake3"

	"github.com/atomcore/atomcore/node"
)

// digest returns a stable content hash of r, used to distinguish memoised
// function-pin invocations bound to different argument values. Geometry
// payloads reuse GeoNode's own structural hash; pointer-identified payloads
// (Atomic, Motif) fall back to pointer identity, which is sound for a
// single evaluator run but not across process boundaries.
func (r Result) digest() [32]byte {
	h := blake3.New(32, nil)
	writeByte(h, byte(r.Kind))
	switch r.Kind {
	case node.KindBool:
		writeByte(h, boolByte(r.Bool))
	case node.KindInt:
		writeI64(h, r.Int)
	case node.KindFloat:
		writeF64(h, r.Float)
	case node.KindString:
		h.Write([]byte(r.Str))
	case node.KindVec2:
		writeF64(h, r.Vec2.X)
		writeF64(h, r.Vec2.Y)
	case node.KindVec3:
		writeF64(h, r.Vec3.X)
		writeF64(h, r.Vec3.Y)
		writeF64(h, r.Vec3.Z)
	case node.KindIVec2:
		writeI64(h, int64(r.IVec2.X))
		writeI64(h, int64(r.IVec2.Y))
	case node.KindIVec3:
		writeI64(h, int64(r.IVec3.X))
		writeI64(h, int64(r.IVec3.Y))
		writeI64(h, int64(r.IVec3.Z))
	case node.KindUnitCell:
		for _, f := range []float64{r.Cell.A.X, r.Cell.A.Y, r.Cell.A.Z, r.Cell.B.X, r.Cell.B.Y, r.Cell.B.Z, r.Cell.C.X, r.Cell.C.Y, r.Cell.C.Z} {
			writeF64(h, f)
		}
	case node.KindGeometry2D:
		if r.Geo2D != nil {
			d := r.Geo2D.Hash()
			h.Write(d[:])
		}
	case node.KindGeometry:
		if r.Geo.GeoTreeRoot != nil {
			d := r.Geo.GeoTreeRoot.Hash()
			h.Write(d[:])
		}
	case node.KindArray:
		for _, elem := range r.Array {
			d := elem.digest()
			h.Write(d[:])
		}
	case node.KindFunction:
		if r.Func != nil {
			writeU64(h, uint64(uintptr(unsafe.Pointer(r.Func.target))))
			writeU64(h, uint64(r.Func.targetID))
			writeI64(h, int64(r.Func.bound))
		}
	case errKindMarker:
		writeI64(h, int64(r.ErrKind))
		h.Write([]byte(r.ErrMsg))
	default:
		writeU64(h, uint64(uintptr(unsafe.Pointer(r.Atomic))))
		writeU64(h, uint64(uintptr(unsafe.Pointer(r.Motif))))
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func writeByte(h *blake3.Hasher, b byte) { h.Write([]byte{b}) }

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func writeI64(h *blake3.Hasher, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeF64(h *blake3.Hasher, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	h.Write(buf[:])
}
