package geonode

import (
	"github.com/atomcore/atomcore/csg"
	"github.com/atomcore/atomcore/latticemath"
)

// gradientEpsilon is the finite-difference step used to estimate a surface
// normal at an edge-crossing point.
const gradientEpsilon = 0.001

// DualContourBounds is the sampling window used by DualContour.
type DualContourBounds struct {
	Min, Max latticemath.DVec3
}

// cellKey identifies a grid cell by its minimum-corner grid coordinates.
type cellKey struct{ X, Y, Z int }

type dcCell struct {
	vertexIndex int
	sumPos      latticemath.DVec3
	sumNormal   latticemath.DVec3
	count       int
}

// edgeDirections are the 3 edges originating from a grid vertex's minimum
// corner, matching the 3-direction sampling used to avoid processing any
// edge twice.
var edgeDirections = [3]cellKey{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// cellsAroundEdge gives, per edge direction, the 4 cells sharing that edge
// that each receive a contributing vertex, forming one dual-contoured quad.
var cellsAroundEdge = [3][4]cellKey{
	{{0, 0, 0}, {0, -1, 0}, {0, -1, -1}, {0, 0, -1}},
	{{0, 0, 0}, {-1, 0, 0}, {-1, 0, -1}, {0, 0, -1}},
	{{0, 0, 0}, {-1, 0, 0}, {-1, -1, 0}, {0, -1, 0}},
}

// DualContour samples n's implicit signed distance field over bounds at
// the given samples-per-unit resolution and extracts an approximate
// preview mesh via dual contouring, converting the intermediate QuadMesh
// (see DualContourQuadMesh) to a csg.Mesh.
func DualContour(n *GeoNode, bounds DualContourBounds, samplesPerUnit int) csg.Mesh {
	return DualContourQuadMesh(n, bounds, samplesPerUnit).ToMesh()
}

// DualContourQuadMesh is DualContour's underlying implementation: cell
// vertices are placed at the average of the edge-crossing points that
// reference them (no QEF solve), located by an 8-step binary search per
// crossing edge, with each vertex's normal likewise averaged from the
// finite-difference surface gradient at its contributing crossings. The
// resulting quads are assembled into a QuadMesh with sharp edges detected
// and smoothing groups assigned, ready for conversion or direct export.
func DualContourQuadMesh(n *GeoNode, bounds DualContourBounds, samplesPerUnit int) *QuadMesh {
	if samplesPerUnit <= 0 {
		samplesPerUnit = 4
	}
	spu := float64(samplesPerUnit)

	toWorld := func(k cellKey) latticemath.DVec3 {
		return latticemath.DVec3{
			X: float64(k.X) / spu,
			Y: float64(k.Y) / spu,
			Z: float64(k.Z) / spu,
		}
	}

	minK := cellKey{
		X: int(bounds.Min.X * spu),
		Y: int(bounds.Min.Y * spu),
		Z: int(bounds.Min.Z * spu),
	}
	maxK := cellKey{
		X: int(bounds.Max.X * spu),
		Y: int(bounds.Max.Y * spu),
		Z: int(bounds.Max.Z * spu),
	}

	values := map[cellKey]float64{}
	sample := func(k cellKey) float64 {
		if v, ok := values[k]; ok {
			return v
		}
		v := n.SignedDistance(toWorld(k))
		values[k] = v
		return v
	}

	cells := map[cellKey]*dcCell{}
	getCell := func(k cellKey) *dcCell {
		c, ok := cells[k]
		if !ok {
			c = &dcCell{vertexIndex: -1}
			cells[k] = c
		}
		return c
	}

	type quad struct{ keys [4]cellKey }
	var quads []quad

	for x := minK.X; x <= maxK.X; x++ {
		for y := minK.Y; y <= maxK.Y; y++ {
			for z := minK.Z; z <= maxK.Z; z++ {
				v := cellKey{x, y, z}
				sdfV := sample(v)
				for dirIdx, dir := range edgeDirections {
					adj := cellKey{v.X + dir.X, v.Y + dir.Y, v.Z + dir.Z}
					sdfAdj := sample(adj)
					if (sdfV > 0) == (sdfAdj > 0) {
						continue
					}

					crossing, normal := findEdgeCrossing(n, toWorld(v), toWorld(adj), sdfV, sdfAdj)

					var quadKeys [4]cellKey
					for i, rel := range cellsAroundEdge[dirIdx] {
						ck := cellKey{v.X + rel.X, v.Y + rel.Y, v.Z + rel.Z}
						quadKeys[i] = ck
						c := getCell(ck)
						c.sumPos = c.sumPos.Add(crossing)
						c.sumNormal = c.sumNormal.Add(normal)
						c.count++
					}
					quads = append(quads, quad{keys: quadKeys})
				}
			}
		}
	}

	mesh := NewQuadMesh()
	for _, q := range quads {
		var indices [4]int
		ok := true
		for i, k := range q.keys {
			c := cells[k]
			if c == nil || c.count == 0 {
				ok = false
				break
			}
			if c.vertexIndex < 0 {
				pos := c.sumPos.Scale(1.0 / float64(c.count))
				vertexIdx := mesh.AddVertex(pos)
				c.vertexIndex = vertexIdx
				if avgNormal := c.sumNormal.Scale(1.0 / float64(c.count)); avgNormal.Dot(avgNormal) > 0 {
					mesh.Vertices[vertexIdx].Normal = avgNormal.Normalized()
				}
			}
			indices[i] = c.vertexIndex
		}
		if !ok {
			continue
		}
		mesh.AddQuad(indices[0], indices[1], indices[2], indices[3])
	}

	mesh.DetectSharpEdges(sharpAngleThresholdDegrees, true)
	return mesh
}

// findEdgeCrossing locates the zero-crossing between a and b (with known
// opposite-signed SDF values sdfA/sdfB) via 8 steps of binary search, then
// returns that point together with the surface normal estimated there by
// central finite differences.
func findEdgeCrossing(n *GeoNode, a, b latticemath.DVec3, sdfA, sdfB float64) (latticemath.DVec3, latticemath.DVec3) {
	for i := 0; i < 8; i++ {
		mid := a.Add(b).Scale(0.5)
		sdfMid := n.SignedDistance(mid)
		if (sdfMid > 0) == (sdfA > 0) {
			a = mid
			sdfA = sdfMid
		} else {
			b = mid
			sdfB = sdfMid
		}
	}
	_ = sdfB
	point := a.Add(b).Scale(0.5)
	return point, gradientAt(n, point)
}

// gradientAt estimates n's signed-distance gradient at p by central finite
// differences with step gradientEpsilon, normalized to a unit surface
// normal (the SDF increases outward, so the gradient already points away
// from the solid). Returns the zero vector if the gradient is degenerate.
func gradientAt(n *GeoNode, p latticemath.DVec3) latticemath.DVec3 {
	eps := gradientEpsilon
	dx := n.SignedDistance(latticemath.DVec3{X: p.X + eps, Y: p.Y, Z: p.Z}) -
		n.SignedDistance(latticemath.DVec3{X: p.X - eps, Y: p.Y, Z: p.Z})
	dy := n.SignedDistance(latticemath.DVec3{X: p.X, Y: p.Y + eps, Z: p.Z}) -
		n.SignedDistance(latticemath.DVec3{X: p.X, Y: p.Y - eps, Z: p.Z})
	dz := n.SignedDistance(latticemath.DVec3{X: p.X, Y: p.Y, Z: p.Z + eps}) -
		n.SignedDistance(latticemath.DVec3{X: p.X, Y: p.Y, Z: p.Z - eps})
	grad := latticemath.DVec3{X: dx, Y: dy, Z: dz}
	if grad.Dot(grad) == 0 {
		return grad
	}
	return grad.Normalized()
}
