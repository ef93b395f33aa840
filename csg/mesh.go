package csg

// Mesh is a closed polygonal solid: an unordered bag of polygons, booleans
// combine meshes via BSP trees built on demand.
type Mesh struct {
	Polygons []Polygon
}

// NewMesh wraps a polygon slice as a Mesh.
func NewMesh(polygons []Polygon) Mesh {
	return Mesh{Polygons: polygons}
}

// Union returns the polygons describing the union of a and b.
func Union(a, b Mesh) Mesh {
	an := NewBSPNode(clonePolygons(a.Polygons))
	bn := NewBSPNode(clonePolygons(b.Polygons))

	an.ClipTo(bn)
	bn.ClipTo(an)
	bn.Invert()
	bn.ClipTo(an)
	bn.Invert()
	an.Build(bn.AllPolygons())

	return Mesh{Polygons: an.AllPolygons()}
}

// Intersection returns the polygons describing the intersection of a and b.
func Intersection(a, b Mesh) Mesh {
	an := NewBSPNode(clonePolygons(a.Polygons))
	bn := NewBSPNode(clonePolygons(b.Polygons))

	an.Invert()
	bn.ClipTo(an)
	bn.Invert()
	an.ClipTo(bn)
	bn.ClipTo(an)
	an.Build(bn.AllPolygons())
	an.Invert()

	return Mesh{Polygons: an.AllPolygons()}
}

// Difference returns the polygons describing a minus b.
func Difference(a, b Mesh) Mesh {
	an := NewBSPNode(clonePolygons(a.Polygons))
	bn := NewBSPNode(clonePolygons(b.Polygons))

	an.Invert()
	an.ClipTo(bn)
	bn.ClipTo(an)
	bn.Invert()
	bn.ClipTo(an)
	bn.Invert()
	an.Build(bn.AllPolygons())
	an.Invert()

	return Mesh{Polygons: an.AllPolygons()}
}

func clonePolygons(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		verts := append([]Vertex(nil), p.Vertices...)
		out[i] = Polygon{Vertices: verts, Plane: p.Plane}
	}
	return out
}
