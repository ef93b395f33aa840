package csg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/csg"
	"github.com/atomcore/atomcore/latticemath"
)

// cube returns the 6 axis-aligned quads of a cube of the given half-extent
// centered at c.
func cube(c latticemath.DVec3, half float64) csg.Mesh {
	corners := func(dx, dy, dz float64) latticemath.DVec3 {
		return latticemath.DVec3{X: c.X + dx*half, Y: c.Y + dy*half, Z: c.Z + dz*half}
	}
	faces := [][4][3]float64{
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
		{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
		{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}},
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	}
	var polys []csg.Polygon
	for _, f := range faces {
		verts := make([]csg.Vertex, 4)
		for i, pt := range f {
			verts[i] = csg.Vertex{Pos: corners(pt[0], pt[1], pt[2])}
		}
		poly, err := csg.NewPolygon(verts)
		if err != nil {
			continue
		}
		polys = append(polys, poly)
	}
	return csg.Mesh{Polygons: polys}
}

func TestMesh_Union_NonEmpty(t *testing.T) {
	a := cube(latticemath.DVec3{}, 1)
	b := cube(latticemath.DVec3{X: 0.5}, 1)
	result := csg.Union(a, b)
	assert.NotEmpty(t, result.Polygons)
}

func TestMesh_Difference_SelfIsEmpty(t *testing.T) {
	a := cube(latticemath.DVec3{}, 1)
	b := cube(latticemath.DVec3{}, 1)
	result := csg.Difference(a, b)
	assert.Empty(t, result.Polygons)
}

func TestMesh_Intersection_DisjointIsEmpty(t *testing.T) {
	a := cube(latticemath.DVec3{X: -10}, 1)
	b := cube(latticemath.DVec3{X: 10}, 1)
	result := csg.Intersection(a, b)
	assert.Empty(t, result.Polygons)
}

func TestBSPNode_InvertTwiceIsIdentity(t *testing.T) {
	a := cube(latticemath.DVec3{}, 1)
	n := csg.NewBSPNode(a.Polygons)
	before := len(n.AllPolygons())
	n.Invert()
	n.Invert()
	after := len(n.AllPolygons())
	require.Equal(t, before, after)
}
