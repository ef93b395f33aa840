package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

func newRegisteredEvaluator(t *testing.T) (*node.Registry, *eval.Evaluator) {
	t.Helper()
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	require.NoError(t, RegisterAll(reg, ev))
	return reg, ev
}

// mustAddNode adds a node of typeName and overwrites its freshly
// constructed default data with data, returning its id.
func mustAddNode(t *testing.T, net *node.NodeNetwork, typeName string, data node.NodeData) node.NodeId {
	t.Helper()
	id, err := net.AddNode(typeName, 0, 0)
	require.NoError(t, err)
	if data != nil {
		n, ok := net.Node(id)
		require.True(t, ok)
		n.Data = data
	}
	return id
}

func TestRegisterAll_NoDuplicateNames(t *testing.T) {
	reg, _ := newRegisteredEvaluator(t)
	require.NotEmpty(t, reg.Names())
}

func TestSphereNode_EvaluatesToGeometry(t *testing.T) {
	reg, ev := newRegisteredEvaluator(t)
	net := node.NewNetwork(reg, "test")

	id := mustAddNode(t, net, "sphere", &SphereData{Center: latticemath.DVec3{}, Radius: 2})
	result, err := ev.Evaluate(net, id)
	require.NoError(t, err)
	require.Equal(t, node.KindGeometry, result.Kind)
	require.NotNil(t, result.Geo.GeoTreeRoot)
	require.Equal(t, 2.0, result.Geo.GeoTreeRoot.Radius)
}

func TestUnionNode_CombinesTwoSpheres(t *testing.T) {
	reg, ev := newRegisteredEvaluator(t)
	net := node.NewNetwork(reg, "test")

	a := mustAddNode(t, net, "sphere", &SphereData{Radius: 1})
	b := mustAddNode(t, net, "sphere", &SphereData{Center: latticemath.DVec3{X: 3}, Radius: 1})
	union := mustAddNode(t, net, "union", nil)
	require.NoError(t, net.Connect(a, 0, union, 0))
	require.NoError(t, net.Connect(b, 0, union, 0))

	result, err := ev.Evaluate(net, union)
	require.NoError(t, err)
	require.Equal(t, node.KindGeometry, result.Kind)
	require.Len(t, result.Geo.GeoTreeRoot.Shapes, 2)
}

func TestHalfSpaceNode_QuantizesThroughUnitCell(t *testing.T) {
	reg, ev := newRegisteredEvaluator(t)
	net := node.NewNetwork(reg, "test")

	cellNode := mustAddNode(t, net, "unit_cell", &UnitCellData{
		A: latticemath.DVec3{X: 1}, B: latticemath.DVec3{Y: 1}, C: latticemath.DVec3{Z: 1},
	})
	hs := mustAddNode(t, net, "half_space", &HalfSpaceData{MillerIndex: latticemath.IVec3{X: 1}, Shift: 1})
	require.NoError(t, net.Connect(cellNode, 0, hs, 0))

	result, err := ev.Evaluate(net, hs)
	require.NoError(t, err)
	require.Equal(t, node.KindGeometry, result.Kind)
	require.InDelta(t, 1.0, result.Geo.GeoTreeRoot.Normal.X, 1e-9)
}

func TestDifferenceNode_WrapsBaseAndSub(t *testing.T) {
	reg, ev := newRegisteredEvaluator(t)
	net := node.NewNetwork(reg, "test")

	base := mustAddNode(t, net, "cuboid", &CuboidData{Extent: latticemath.DVec3{X: 2, Y: 2, Z: 2}})
	sub := mustAddNode(t, net, "sphere", &SphereData{Radius: 1})
	diff := mustAddNode(t, net, "difference", nil)
	require.NoError(t, net.Connect(base, 0, diff, 0))
	require.NoError(t, net.Connect(sub, 0, diff, 1))

	result, err := ev.Evaluate(net, diff)
	require.NoError(t, err)
	require.Equal(t, node.KindGeometry, result.Kind)
	require.NotNil(t, result.Geo.GeoTreeRoot.Base)
	require.NotNil(t, result.Geo.GeoTreeRoot.Sub)
}

func TestAtomEditNode_AppliesDiffText(t *testing.T) {
	reg, ev := newRegisteredEvaluator(t)
	net := node.NewNetwork(reg, "test")

	id := mustAddNode(t, net, "atom_edit", &AtomEditData{DiffText: "+C @ (0, 0, 0)\n+C @ (1.5, 0, 0)\nbond 1-2 single\n"})
	result, err := ev.Evaluate(net, id)
	require.NoError(t, err)
	require.Equal(t, node.KindAtomic, result.Kind)
	require.NotNil(t, result.Atomic)
}
