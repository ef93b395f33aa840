package csgcache

import "github.com/atomcore/atomcore/csg"

// polygonStructOverheadBytes approximates the stack-resident portion of a
// csg.Polygon (plane + slice header), separate from its vertex backing
// array, mirroring the original cache's per-polygon struct overhead used
// in its memory estimate.
const polygonStructOverheadBytes = 96

// vertexSizeBytes is sizeof(csg.Vertex): two DVec3 (position, normal).
const vertexSizeBytes = 48

// ring2DOverheadBytes approximates a csg.Polygon2D's slice header plus a
// per-point 16 bytes (two float64).
const ring2DOverheadBytes = 24
const point2DSizeBytes = 16

func estimateMeshSize(m csg.Mesh) int64 {
	var total int64 = 16 // slice header for Polygons
	for _, p := range m.Polygons {
		total += polygonStructOverheadBytes
		total += int64(len(p.Vertices)) * vertexSizeBytes
	}
	return total
}

func estimateSketchSize(s csg.Sketch) int64 {
	var total int64 = 16
	for _, ring := range s.Rings {
		total += ring2DOverheadBytes
		total += int64(len(ring.Points)) * point2DSizeBytes
	}
	return total
}
