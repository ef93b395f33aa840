package csg

import "github.com/atomcore/atomcore/latticemath"

// Extrude lifts a 2D sketch along +Y into a mesh. When finite is true the
// result is capped at height (the implicit solid is the intersection of
// the sketch's half-space with 0<=y<=height, i.e. max(-y, y-height) against
// the sketch's own signed distance); when finite is false the two caps are
// omitted and only the side walls, still spanning y=0 to y=height, are
// emitted.
func Extrude(s Sketch, height float64, finite bool) Mesh {
	var polys []Polygon
	for _, ring := range s.Rings {
		polys = append(polys, extrudeRingSides(ring, height)...)
	}
	if finite {
		polys = append(polys, capPolygons(s, 0, true)...)
		polys = append(polys, capPolygons(s, height, false)...)
	}
	return Mesh{Polygons: polys}
}

// extrudeRingSides builds the vertical quads joining ring at y=0 to y=height.
func extrudeRingSides(ring Polygon2D, height float64) []Polygon {
	n := len(ring.Points)
	var polys []Polygon
	for i := 0; i < n; i++ {
		a := ring.Points[i]
		b := ring.Points[(i+1)%n]

		v0 := latticemath.DVec3{X: a.X, Y: 0, Z: a.Y}
		v1 := latticemath.DVec3{X: b.X, Y: 0, Z: b.Y}
		v2 := latticemath.DVec3{X: b.X, Y: height, Z: b.Y}
		v3 := latticemath.DVec3{X: a.X, Y: height, Z: a.Y}

		plane := NewPlaneFromPoints(v0, v1, v2)
		verts := []Vertex{
			{Pos: v0, Normal: plane.Normal},
			{Pos: v1, Normal: plane.Normal},
			{Pos: v2, Normal: plane.Normal},
			{Pos: v3, Normal: plane.Normal},
		}
		polys = append(polys, Polygon{Vertices: verts, Plane: plane})
	}
	return polys
}

// capPolygons triangulates the sketch's rings as a planar cap at the given
// y, using a simple fan triangulation per ring (valid for the
// typically-convex or star-shaped rings produced by sketch contouring).
func capPolygons(s Sketch, y float64, bottom bool) []Polygon {
	var normalY float64 = 1
	if bottom {
		normalY = -1
	}
	normal := latticemath.DVec3{Y: normalY}

	var polys []Polygon
	for _, ring := range s.Rings {
		n := len(ring.Points)
		if n < 3 {
			continue
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		if bottom {
			for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
				order[i], order[j] = order[j], order[i]
			}
		}
		for i := 1; i < n-1; i++ {
			p0 := ring.Points[order[0]]
			p1 := ring.Points[order[i]]
			p2 := ring.Points[order[i+1]]
			verts := []Vertex{
				{Pos: latticemath.DVec3{X: p0.X, Y: y, Z: p0.Y}, Normal: normal},
				{Pos: latticemath.DVec3{X: p1.X, Y: y, Z: p1.Y}, Normal: normal},
				{Pos: latticemath.DVec3{X: p2.X, Y: y, Z: p2.Y}, Normal: normal},
			}
			plane := Plane{Normal: normal, W: normal.Dot(verts[0].Pos)}
			polys = append(polys, Polygon{Vertices: verts, Plane: plane})
		}
	}
	return polys
}
