package csg

import "math"

// maxContourCells bounds the grid resolution used by
// contourSketch when the caller's resolution would otherwise produce an
// unreasonably large grid.
const maxContourCells = 512

// contourSketch extracts the zero-level boundary of a scalar field over a
// rectangular grid using marching squares, returning the result as a
// Sketch made of the resulting line segments stitched into rings.
//
// Each grid cell is classified by the sign of field at its 4 corners; edge
// crossings are located by linear interpolation, matching the same
// crossing-interpolation idea as the 3D dual contouring used elsewhere in
// this kernel.
func contourSketch(bounds SketchBounds, resolution float64, field func(Point2D) float64) Sketch {
	if resolution <= 0 {
		resolution = 1
	}
	nx := int(math.Ceil((bounds.MaxX-bounds.MinX)/resolution)) + 1
	ny := int(math.Ceil((bounds.MaxY-bounds.MinY)/resolution)) + 1
	if nx > maxContourCells {
		nx = maxContourCells
	}
	if ny > maxContourCells {
		ny = maxContourCells
	}
	if nx < 2 || ny < 2 {
		return Sketch{}
	}

	dx := (bounds.MaxX - bounds.MinX) / float64(nx-1)
	dy := (bounds.MaxY - bounds.MinY) / float64(ny-1)

	vals := make([][]float64, ny)
	for j := 0; j < ny; j++ {
		vals[j] = make([]float64, nx)
		for i := 0; i < nx; i++ {
			vals[j][i] = field(Point2D{
				X: bounds.MinX + float64(i)*dx,
				Y: bounds.MinY + float64(j)*dy,
			})
		}
	}

	var segments []segment2D

	lerpEdge := func(x0, y0, v0, x1, y1, v1 float64) Point2D {
		t := v0 / (v0 - v1)
		return Point2D{X: x0 + t*(x1-x0), Y: y0 + t*(y1-y0)}
	}

	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			x0 := bounds.MinX + float64(i)*dx
			x1 := x0 + dx
			y0 := bounds.MinY + float64(j)*dy
			y1 := y0 + dy

			v00 := vals[j][i]
			v10 := vals[j][i+1]
			v11 := vals[j+1][i+1]
			v01 := vals[j+1][i]

			var corners [4]bool
			corners[0] = v00 < 0
			corners[1] = v10 < 0
			corners[2] = v11 < 0
			corners[3] = v01 < 0

			idx := 0
			for k, in := range corners {
				if in {
					idx |= 1 << k
				}
			}
			if idx == 0 || idx == 0xF {
				continue
			}

			edgeCrossing := func(e int) Point2D {
				switch e {
				case 0:
					return lerpEdge(x0, y0, v00, x1, y0, v10)
				case 1:
					return lerpEdge(x1, y0, v10, x1, y1, v11)
				case 2:
					return lerpEdge(x1, y1, v11, x0, y1, v01)
				default:
					return lerpEdge(x0, y1, v01, x0, y0, v00)
				}
			}

			pairs := marchingSquaresEdgeTable[idx]
			for _, pr := range pairs {
				segments = append(segments, segment2D{A: edgeCrossing(pr[0]), B: edgeCrossing(pr[1])})
			}
		}
	}

	rings := stitchSegments(segments)
	return Sketch{Rings: rings}
}

// marchingSquaresEdgeTable maps each of the 16 corner-sign configurations
// to the (possibly two) edge-pairs forming the boundary segments through
// that cell. Corner bit order is 0=bottom-left,1=bottom-right,2=top-right,
// 3=top-left; edge order is 0=bottom,1=right,2=top,3=left.
var marchingSquaresEdgeTable = map[int][][2]int{
	1:  {{3, 0}},
	2:  {{0, 1}},
	3:  {{3, 1}},
	4:  {{1, 2}},
	5:  {{3, 0}, {1, 2}},
	6:  {{0, 2}},
	7:  {{3, 2}},
	8:  {{2, 3}},
	9:  {{2, 0}},
	10: {{0, 1}, {2, 3}},
	11: {{2, 1}},
	12: {{1, 3}},
	13: {{1, 0}},
	14: {{0, 3}},
}

// segment2D is a single marching-squares boundary segment before stitching.
type segment2D struct{ A, B Point2D }

// stitchSegments joins a soup of line segments sharing endpoints into
// closed rings, discarding any segment chain that never closes (an
// open boundary, which should not occur for a field sampled over a
// closed region but can appear from numerical noise at the grid edge).
func stitchSegments(segments []segment2D) []Polygon2D {
	const snap = 1e-6
	key := func(p Point2D) [2]int64 {
		return [2]int64{int64(math.Round(p.X / snap)), int64(math.Round(p.Y / snap))}
	}

	adjacency := map[[2]int64][]int{}
	used := make([]bool, len(segments))
	for i, s := range segments {
		adjacency[key(s.A)] = append(adjacency[key(s.A)], i)
	}

	var rings []Polygon2D
	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		ring := []Point2D{segments[start].A}
		cur := segments[start].B
		closed := false
		for {
			ring = append(ring, cur)
			k := key(cur)
			next := -1
			for _, idx := range adjacency[k] {
				if !used[idx] {
					next = idx
					break
				}
			}
			if next == -1 {
				break
			}
			used[next] = true
			cur = segments[next].B
			if key(cur) == key(ring[0]) {
				closed = true
				break
			}
		}
		if closed && len(ring) >= 3 {
			rings = append(rings, Polygon2D{Points: ring})
		}
	}
	return rings
}
