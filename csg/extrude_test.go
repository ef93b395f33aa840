package csg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/csg"
)

func TestExtrude_Finite_HasCaps(t *testing.T) {
	s := csg.NewSketch([]csg.Polygon2D{square(0, 0, 2, 2)})
	mesh := csg.Extrude(s, 3, true)

	require.NotEmpty(t, mesh.Polygons)
	// 4 sides + at least 1 top triangle + 1 bottom triangle.
	assert.GreaterOrEqual(t, len(mesh.Polygons), 6)
}

func TestExtrude_Infinite_HasNoCaps(t *testing.T) {
	s := csg.NewSketch([]csg.Polygon2D{square(0, 0, 2, 2)})
	finite := csg.Extrude(s, 3, true)
	infinite := csg.Extrude(s, 3, false)
	assert.Less(t, len(infinite.Polygons), len(finite.Polygons))
}
