package geonode

import (
	"encoding/binary"
	"math"

	"lukechampine.com/blake3"

	"github.com/atomcore/atomcore/latticemath"
)

// Hash returns the structural content hash of the tree rooted at n: two
// trees built through entirely different sequences of operations hash
// identically as long as their shape and parameters are identical, so
// evaluation and conversion caches can key on Hash instead of pointer
// identity. The result is memoized on n after first computation.
func (n *GeoNode) Hash() [32]byte {
	if n.cachedHash != nil {
		return *n.cachedHash
	}
	h := blake3.New(32, nil)
	writeNodeHash(h, n)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	n.cachedHash = &out
	return out
}

func writeF64(h *blake3.Hasher, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	h.Write(buf[:])
}

func writeVec3(h *blake3.Hasher, v latticemath.DVec3) {
	writeF64(h, v.X)
	writeF64(h, v.Y)
	writeF64(h, v.Z)
}

func writeVec2(h *blake3.Hasher, v latticemath.DVec2) {
	writeF64(h, v.X)
	writeF64(h, v.Y)
}

func writeBool(h *blake3.Hasher, b bool) {
	if b {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}

func writeNodeHash(h *blake3.Hasher, n *GeoNode) {
	if n == nil {
		h.Write([]byte{0xFF})
		return
	}
	var kindByte [1]byte
	kindByte[0] = byte(n.Kind)
	h.Write(kindByte[:])

	switch n.Kind {
	case KindHalfSpace:
		writeVec3(h, n.Normal)
		writeVec3(h, n.Center)
	case KindHalfPlane:
		writeVec2(h, n.Point1)
		writeVec2(h, n.Point2)
	case KindSphere:
		writeVec3(h, n.Center)
		writeF64(h, n.Radius)
	case KindCircle:
		writeVec2(h, n.Center2)
		writeF64(h, n.Radius)
	case KindCuboid:
		writeVec3(h, n.MinCorner3)
		writeVec3(h, n.Extent3)
	case KindRect:
		writeVec2(h, n.MinCorner2)
		writeVec2(h, n.Extent2)
	case KindPolygon:
		var count [8]byte
		binary.LittleEndian.PutUint64(count[:], uint64(len(n.Vertices)))
		h.Write(count[:])
		for _, v := range n.Vertices {
			writeVec2(h, v)
		}
	case KindExtrude:
		writeF64(h, n.Height)
		writeVec3(h, n.Direction)
		writeBool(h, n.Infinite)
		writeNodeHash(h, n.Shape)
	case KindTransform:
		writeF64(h, n.Rotation.W)
		writeF64(h, n.Rotation.X)
		writeF64(h, n.Rotation.Y)
		writeF64(h, n.Rotation.Z)
		writeVec3(h, n.Translation)
		writeNodeHash(h, n.Shape)
	case KindUnion2D, KindUnion3D, KindIntersection2D, KindIntersection3D:
		var count [8]byte
		binary.LittleEndian.PutUint64(count[:], uint64(len(n.Shapes)))
		h.Write(count[:])
		for _, s := range n.Shapes {
			writeNodeHash(h, s)
		}
	case KindDifference2D, KindDifference3D:
		writeNodeHash(h, n.Base)
		writeNodeHash(h, n.Sub)
	}
}
