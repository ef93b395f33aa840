package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/node"
)

func chainNetwork(t *testing.T) (*node.NodeNetwork, node.NodeId, node.NodeId, node.NodeId) {
	t.Helper()
	reg := newCatalogRegistry(t)
	net := node.NewNetwork(reg, "")

	aID, err := net.AddNode("sphere", 0, 0)
	require.NoError(t, err)
	bID, err := net.AddNode("cuboid", 0, 0)
	require.NoError(t, err)
	unionID, err := net.AddNode("union", 0, 0)
	require.NoError(t, err)
	require.NoError(t, net.Connect(aID, 0, unionID, 0))
	require.NoError(t, net.Connect(bID, 0, unionID, 0))
	return net, aID, bID, unionID
}

func TestTopologicalGridLayout_PlacesDependentsInLaterColumns(t *testing.T) {
	net, aID, bID, unionID := chainNetwork(t)

	positions, err := TopologicalGridLayout(net)
	require.NoError(t, err)

	require.Equal(t, 0.0, positions[aID].X)
	require.Equal(t, 0.0, positions[bID].X)
	require.Equal(t, ColumnWidth, positions[unionID].X)
	require.NotEqual(t, positions[aID].Y, positions[bID].Y)
}

func TestTopologicalGridLayout_IsDeterministic(t *testing.T) {
	net, _, _, _ := chainNetwork(t)

	first, err := TopologicalGridLayout(net)
	require.NoError(t, err)
	second, err := TopologicalGridLayout(net)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSugiyamaLayout_AgreesWithGridOnColumns(t *testing.T) {
	net, aID, bID, unionID := chainNetwork(t)

	positions, err := SugiyamaLayout(net)
	require.NoError(t, err)

	require.Equal(t, 0.0, positions[aID].X)
	require.Equal(t, 0.0, positions[bID].X)
	require.Equal(t, ColumnWidth, positions[unionID].X)
}

func TestAssignGridPositions_CentersShorterColumns(t *testing.T) {
	reg := newCatalogRegistry(t)
	net := node.NewNetwork(reg, "")

	aID, err := net.AddNode("constant_int", 0, 0)
	require.NoError(t, err)
	bID, err := net.AddNode("constant_int", 0, 0)
	require.NoError(t, err)
	combineID, err := net.AddNode("constant_int", 0, 0)
	require.NoError(t, err)

	columns := [][]node.NodeId{{aID, bID}, {combineID}}
	positions := assignGridPositions(columns)

	require.Equal(t, 0.0, positions[aID].Y)
	require.Equal(t, RowGap, positions[bID].Y)
	require.Equal(t, RowGap/2, positions[combineID].Y)
}
