package geonode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/geonode"
	"github.com/atomcore/atomcore/latticemath"
)

// twoCoplanarQuads builds a 1x2 strip of two quads sharing one edge, both
// wound the same way in the XY plane, so the shared edge should not be
// marked sharp.
func twoCoplanarQuads() *geonode.QuadMesh {
	m := geonode.NewQuadMesh()
	v := func(x, y float64) int { return m.AddVertex(latticemath.DVec3{X: x, Y: y}) }
	v00, v10, v20 := v(0, 0), v(1, 0), v(2, 0)
	v01, v11, v21 := v(0, 1), v(1, 1), v(2, 1)
	m.AddQuad(v00, v10, v11, v01)
	m.AddQuad(v10, v20, v21, v11)
	return m
}

func TestQuadMesh_CoplanarEdgeIsNotSharp(t *testing.T) {
	m := twoCoplanarQuads()
	m.DetectSharpEdges(29, true)

	require.Len(t, m.Quads, 2)
	assert.Equal(t, m.Quads[0].SmoothingGroup, m.Quads[1].SmoothingGroup,
		"coplanar quads joined by a non-sharp edge must share a smoothing group")

	sharp, nonManifold := 0, 0
	for _, e := range m.Edges {
		if e.IsSharp {
			sharp++
		}
		if len(e.QuadIndices) != 2 {
			nonManifold++
		}
	}
	// The strip has exactly one interior (2-quad, non-sharp) edge and 6
	// boundary (1-quad, non-manifold, therefore sharp) edges.
	assert.Equal(t, nonManifold, sharp)
	assert.Equal(t, 6, nonManifold)
}

func TestQuadMesh_FoldedQuadsAreSharp(t *testing.T) {
	m := geonode.NewQuadMesh()
	v := func(x, y, z float64) int { return m.AddVertex(latticemath.DVec3{X: x, Y: y, Z: z}) }
	// Two quads sharing an edge along Y, folded 90 degrees at that edge so
	// their face normals are perpendicular.
	v00, v10 := v(0, 0, 0), v(0, 1, 0)
	vFlatA, vFlatB := v(1, 0, 0), v(1, 1, 0)
	vFoldA, vFoldB := v(0, 0, 1), v(0, 1, 1)
	m.AddQuad(v00, vFlatA, vFlatB, v10)
	m.AddQuad(v10, v00, vFoldA, vFoldB)

	m.DetectSharpEdges(29, true)

	var sharedEdge *geonode.QuadEdge
	for _, e := range m.Edges {
		if len(e.QuadIndices) == 2 {
			sharedEdge = e
		}
	}
	require.NotNil(t, sharedEdge, "the two quads must share exactly one manifold edge")
	assert.True(t, sharedEdge.IsSharp, "a 90 degree fold must exceed the sharp-edge angle threshold")
	assert.NotEqual(t, m.Quads[0].SmoothingGroup, m.Quads[1].SmoothingGroup)
}

func TestDualContourQuadMesh_SphereHasOutwardNormals(t *testing.T) {
	sphere := geonode.NewSphere(latticemath.DVec3{}, 1)
	bounds := geonode.DualContourBounds{
		Min: latticemath.DVec3{X: -1.5, Y: -1.5, Z: -1.5},
		Max: latticemath.DVec3{X: 1.5, Y: 1.5, Z: 1.5},
	}
	mesh := geonode.DualContourQuadMesh(sphere, bounds, 4)
	require.NotEmpty(t, mesh.Quads)

	for _, vtx := range mesh.Vertices {
		// A sphere's gradient-derived normal should point outward, roughly
		// parallel to the vertex's own radial direction from the origin.
		radial := vtx.Position.Normalized()
		assert.Greater(t, vtx.Normal.Dot(radial), 0.9)
	}
}

func TestDualContour_SphereStillProducesPolygonsViaQuadMesh(t *testing.T) {
	sphere := geonode.NewSphere(latticemath.DVec3{}, 1)
	bounds := geonode.DualContourBounds{
		Min: latticemath.DVec3{X: -1.5, Y: -1.5, Z: -1.5},
		Max: latticemath.DVec3{X: 1.5, Y: 1.5, Z: 1.5},
	}
	mesh := geonode.DualContour(sphere, bounds, 4)
	require.NotEmpty(t, mesh.Polygons)
	for _, p := range mesh.Polygons {
		for _, v := range p.Vertices {
			assert.InDelta(t, 1, v.Normal.Length(), 1e-6)
		}
	}
}
