package geonode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/csg"
	"github.com/atomcore/atomcore/csgcache"
	"github.com/atomcore/atomcore/geonode"
	"github.com/atomcore/atomcore/latticemath"
)

func TestToCSGMesh_Sphere(t *testing.T) {
	sphere := geonode.NewSphere(latticemath.DVec3{}, 1)
	mesh, err := sphere.ToCSGMesh(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Polygons)
}

func TestToCSGMesh_CachePopulatesAndHits(t *testing.T) {
	cache := csgcache.NewWithDefaults()
	sphere := geonode.NewSphere(latticemath.DVec3{}, 1)

	_, err := sphere.ToCSGMesh(cache)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.MeshCount())

	_, err = sphere.ToCSGMesh(cache)
	require.NoError(t, err)
	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.MeshHits)
}

func TestToCSGMesh_UnionOfCuboids(t *testing.T) {
	a := geonode.NewCuboid(latticemath.DVec3{}, latticemath.DVec3{X: 1, Y: 1, Z: 1})
	b := geonode.NewCuboid(latticemath.DVec3{X: 0.5}, latticemath.DVec3{X: 1, Y: 1, Z: 1})
	union := geonode.NewUnion3D(a, b)

	mesh, err := union.ToCSGMesh(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Polygons)
}

func TestToCSGSketch_Circle(t *testing.T) {
	circle := geonode.NewCircle(latticemath.DVec2{}, 1)
	sketch, err := circle.ToCSGSketch(nil)
	require.NoError(t, err)
	require.Len(t, sketch.Rings, 1)
	assert.True(t, sketch.Inside(csg.Point2D{}))
}

func TestToCSGMesh_WrongKindErrors(t *testing.T) {
	circle := geonode.NewCircle(latticemath.DVec2{}, 1)
	_, err := circle.ToCSGMesh(nil)
	assert.ErrorIs(t, err, geonode.ErrNotSolid)
}

func TestExtrude_Finite(t *testing.T) {
	rect := geonode.NewRect(latticemath.DVec2{}, latticemath.DVec2{X: 2, Y: 2})
	extruded := geonode.NewExtrude(rect, 3, latticemath.DVec3{Y: 1}, false)
	mesh, err := extruded.ToCSGMesh(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Polygons)
}
