package geonode

import (
	"math"

	"github.com/atomcore/atomcore/csg"
	"github.com/atomcore/atomcore/latticemath"
)

// sharpAngleThresholdDegrees is the default adjacent-face-normal angle past
// which an edge is marked sharp: a dot product below cos(29°).
const sharpAngleThresholdDegrees = 29.0

// QuadVertex is one vertex of a QuadMesh: a position plus the indices of
// every quad that references it, kept for O(1) adjacency queries during
// sharp-edge detection and smoothing-group flood fill.
type QuadVertex struct {
	Position latticemath.DVec3
	// Normal is the surface normal at Position, when the caller has one
	// more accurate than a face-winding normal (DualContour fills this in
	// from the finite-difference gradient averaged over the vertex's
	// contributing edge crossings). Zero when unset.
	Normal      latticemath.DVec3
	QuadIndices []int
}

// Quad is one face of a QuadMesh: four vertex indices in CCW winding, a
// cached face normal and the smoothing group it was flood-filled into
// (zero until DetectSharpEdges is run with createSmoothingGroups set).
type Quad struct {
	Vertices       [4]int
	Normal         latticemath.DVec3
	SmoothingGroup int
}

type quadEdgeKey struct{ A, B int }

func makeQuadEdgeKey(v1, v2 int) quadEdgeKey {
	if v1 < v2 {
		return quadEdgeKey{v1, v2}
	}
	return quadEdgeKey{v2, v1}
}

// QuadEdge tracks which quads share an edge and whether that edge has been
// marked sharp.
type QuadEdge struct {
	QuadIndices []int
	IsSharp     bool
}

// QuadMesh is an intermediate quad-faced mesh representation offering O(1)
// vertex-to-quad and edge-to-quad adjacency, used to detect sharp features
// and assign smoothing groups before a surface is handed off as a render
// mesh. DualContour builds one from its cell-averaged vertices before
// converting it to a csg.Mesh.
type QuadMesh struct {
	Vertices []QuadVertex
	Quads    []Quad
	Edges    map[quadEdgeKey]*QuadEdge

	normalsValid bool
}

// NewQuadMesh returns an empty QuadMesh.
func NewQuadMesh() *QuadMesh {
	return &QuadMesh{Edges: make(map[quadEdgeKey]*QuadEdge)}
}

// AddVertex appends a vertex at position and returns its index.
func (m *QuadMesh) AddVertex(position latticemath.DVec3) int {
	m.Vertices = append(m.Vertices, QuadVertex{Position: position})
	return len(m.Vertices) - 1
}

func (m *QuadMesh) edge(v1, v2 int) *QuadEdge {
	key := makeQuadEdgeKey(v1, v2)
	e, ok := m.Edges[key]
	if !ok {
		e = &QuadEdge{}
		m.Edges[key] = e
	}
	return e
}

// AddQuad appends a quad referencing the four given vertex indices (CCW),
// updating vertex and edge adjacency, and returns the quad's index.
func (m *QuadMesh) AddQuad(v0, v1, v2, v3 int) int {
	quadIndex := len(m.Quads)
	m.Quads = append(m.Quads, Quad{Vertices: [4]int{v0, v1, v2, v3}})

	verts := [4]int{v0, v1, v2, v3}
	for _, v := range verts {
		if v >= 0 && v < len(m.Vertices) {
			m.Vertices[v].QuadIndices = append(m.Vertices[v].QuadIndices, quadIndex)
		}
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		e := m.edge(verts[i], verts[j])
		e.QuadIndices = append(e.QuadIndices, quadIndex)
	}

	m.normalsValid = false
	return quadIndex
}

// ComputeQuadNormals recomputes each quad's face normal from its first
// three vertices' winding, falling back to +Z for a degenerate quad.
func (m *QuadMesh) ComputeQuadNormals() {
	for i := range m.Quads {
		q := &m.Quads[i]
		v0 := m.Vertices[q.Vertices[0]].Position
		v1 := m.Vertices[q.Vertices[1]].Position
		v2 := m.Vertices[q.Vertices[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		if normal.Dot(normal) > 0 {
			q.Normal = normal.Normalized()
		} else {
			q.Normal = latticemath.DVec3{X: 0, Y: 0, Z: 1}
		}
	}
	m.normalsValid = true
}

// DetectSharpEdges marks each edge sharp if it is non-manifold (not shared
// by exactly 2 quads) or if the angle between its two quads' normals
// exceeds angleThresholdDegrees. When createSmoothingGroups is true it then
// flood-fills smoothing group ids across every run of non-sharp edges.
func (m *QuadMesh) DetectSharpEdges(angleThresholdDegrees float64, createSmoothingGroups bool) {
	if !m.normalsValid {
		m.ComputeQuadNormals()
	}

	cosThreshold := math.Cos(angleThresholdDegrees * math.Pi / 180)
	for _, e := range m.Edges {
		e.IsSharp = false
		if len(e.QuadIndices) != 2 {
			e.IsSharp = true
			continue
		}
		n1 := m.Quads[e.QuadIndices[0]].Normal
		n2 := m.Quads[e.QuadIndices[1]].Normal
		dot := n1.Dot(n2)
		dot = math.Max(-1, math.Min(1, dot))
		if dot < cosThreshold {
			e.IsSharp = true
		}
	}

	if createSmoothingGroups {
		m.createSmoothingGroups()
	}
}

func (m *QuadMesh) createSmoothingGroups() {
	for i := range m.Quads {
		m.Quads[i].SmoothingGroup = 0
	}

	nextGroup := 1
	for i := range m.Quads {
		if m.Quads[i].SmoothingGroup != 0 {
			continue
		}
		m.Quads[i].SmoothingGroup = nextGroup
		m.floodFillSmoothingGroup(i, nextGroup)
		nextGroup++
	}
}

// floodFillSmoothingGroup propagates groupID to every quad reachable from
// startQuad through a chain of non-sharp edges.
func (m *QuadMesh) floodFillSmoothingGroup(startQuad, groupID int) {
	stack := []int{startQuad}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		verts := m.Quads[current].Vertices
		var toVisit []int
		for i := 0; i < 4; i++ {
			v1, v2 := verts[i], verts[(i+1)%4]
			e, ok := m.Edges[makeQuadEdgeKey(v1, v2)]
			if !ok || e.IsSharp {
				continue
			}
			for _, adj := range e.QuadIndices {
				if adj == current || m.Quads[adj].SmoothingGroup == groupID {
					continue
				}
				toVisit = append(toVisit, adj)
			}
		}
		for _, adj := range toVisit {
			m.Quads[adj].SmoothingGroup = groupID
			stack = append(stack, adj)
		}
	}
}

// vertexNormal averages the face normals of every quad incident to vertex
// v that shares quad q's smoothing group, so a sharp edge keeps its two
// sides from blending into a single averaged normal.
func (m *QuadMesh) vertexNormal(v, q int) latticemath.DVec3 {
	group := m.Quads[q].SmoothingGroup
	var sum latticemath.DVec3
	count := 0
	for _, qi := range m.Vertices[v].QuadIndices {
		if m.Quads[qi].SmoothingGroup != group {
			continue
		}
		sum = sum.Add(m.Quads[qi].Normal)
		count++
	}
	if count == 0 {
		return m.Quads[q].Normal
	}
	avg := sum.Scale(1.0 / float64(count))
	if avg.Dot(avg) == 0 {
		return m.Quads[q].Normal
	}
	return avg.Normalized()
}

// ToMesh converts the QuadMesh to a csg.Mesh, splitting each quad into a
// single csg.Polygon. A vertex's own Normal (set by DualContour from its
// crossing points' gradients) wins when present, since it tracks the
// actual surface curvature; otherwise the normal falls back to a
// smoothing-group-aware average of incident face normals (see
// vertexNormal), so a sharp edge still renders with a hard crease instead
// of a smoothed one.
func (m *QuadMesh) ToMesh() csg.Mesh {
	polys := make([]csg.Polygon, 0, len(m.Quads))
	for qi, q := range m.Quads {
		verts := make([]csg.Vertex, 4)
		for i, v := range q.Vertices {
			normal := m.Vertices[v].Normal
			if normal.Dot(normal) == 0 {
				normal = m.vertexNormal(v, qi)
			}
			verts[i] = csg.Vertex{Pos: m.Vertices[v].Position, Normal: normal}
		}
		poly, err := csg.NewPolygon(verts)
		if err != nil {
			continue
		}
		polys = append(polys, poly)
	}
	return csg.Mesh{Polygons: polys}
}
