package geonode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atomcore/atomcore/geonode"
	"github.com/atomcore/atomcore/latticemath"
)

func TestDualContour_SphereProducesPolygons(t *testing.T) {
	sphere := geonode.NewSphere(latticemath.DVec3{}, 1)
	bounds := geonode.DualContourBounds{
		Min: latticemath.DVec3{X: -1.5, Y: -1.5, Z: -1.5},
		Max: latticemath.DVec3{X: 1.5, Y: 1.5, Z: 1.5},
	}
	mesh := geonode.DualContour(sphere, bounds, 4)
	assert.NotEmpty(t, mesh.Polygons)
}

func TestDualContour_EmptyRegionProducesNoPolygons(t *testing.T) {
	sphere := geonode.NewSphere(latticemath.DVec3{X: 100}, 1)
	bounds := geonode.DualContourBounds{
		Min: latticemath.DVec3{X: -1, Y: -1, Z: -1},
		Max: latticemath.DVec3{X: 1, Y: 1, Z: 1},
	}
	mesh := geonode.DualContour(sphere, bounds, 4)
	assert.Empty(t, mesh.Polygons)
}
