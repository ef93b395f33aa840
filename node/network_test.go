package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/node"
)

func testRegistry() *node.Registry {
	r := node.NewRegistry()
	_ = r.Register(node.NodeType{
		Name:       "constant_float",
		Parameters: nil,
		OutputType: node.TypeFloat,
	})
	_ = r.Register(node.NodeType{
		Name: "add",
		Parameters: []node.Parameter{
			{Name: "a", Type: node.TypeFloat},
			{Name: "b", Type: node.TypeFloat},
		},
		OutputType: node.TypeFloat,
	})
	_ = r.Register(node.NodeType{
		Name: "union",
		Parameters: []node.Parameter{
			{Name: "shapes", Type: node.TypeGeometry, Multi: true},
		},
		OutputType: node.TypeGeometry,
	})
	_ = r.Register(node.NodeType{
		Name: "sphere",
		Parameters: []node.Parameter{
			{Name: "radius", Type: node.TypeFloat},
		},
		OutputType: node.TypeGeometry,
	})
	_ = r.Register(node.NodeType{
		Name: "map",
		Parameters: []node.Parameter{
			{Name: "f", Type: node.FuncOf(node.TypeFloat, node.TypeFloat)},
			{Name: "xs", Type: node.ArrayOf(node.TypeFloat)},
		},
		OutputType: node.ArrayOf(node.TypeFloat),
	})
	return r
}

func TestNetwork_AddNodeUnknownType(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	_, err := n.AddNode("bogus", 0, 0)
	assert.ErrorIs(t, err, node.ErrUnknownNodeType)
}

func TestNetwork_ConnectAndDisconnect(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("constant_float", 0, 0)
	b, _ := n.AddNode("constant_float", 0, 0)
	add, _ := n.AddNode("add", 100, 0)

	require.NoError(t, n.Connect(a, 0, add, 0))
	require.NoError(t, n.Connect(b, 0, add, 1))

	addNode, ok := n.Node(add)
	require.True(t, ok)
	srcA, pinA, ok := addNode.Arguments[0].Single()
	require.True(t, ok)
	assert.Equal(t, a, srcA)
	assert.Equal(t, 0, pinA)

	require.NoError(t, n.Disconnect(add, 0, a))
	_, _, ok = addNode.Arguments[0].Single()
	assert.False(t, ok)
}

func TestNetwork_ConnectReplacesSingleParam(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("constant_float", 0, 0)
	b, _ := n.AddNode("constant_float", 0, 0)
	add, _ := n.AddNode("add", 0, 0)

	require.NoError(t, n.Connect(a, 0, add, 0))
	require.NoError(t, n.Connect(b, 0, add, 0))

	addNode, _ := n.Node(add)
	src, _, ok := addNode.Arguments[0].Single()
	require.True(t, ok)
	assert.Equal(t, b, src)
}

func TestNetwork_ConnectMultiParamAccumulates(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	s1, _ := n.AddNode("sphere", 0, 0)
	s2, _ := n.AddNode("sphere", 0, 0)
	u, _ := n.AddNode("union", 0, 0)

	require.NoError(t, n.Connect(s1, 0, u, 0))
	require.NoError(t, n.Connect(s2, 0, u, 0))

	uNode, _ := n.Node(u)
	assert.Len(t, uNode.Arguments[0].OutputPins, 2)
}

func TestNetwork_ConnectTypeMismatch(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	sphere, _ := n.AddNode("sphere", 0, 0)
	add, _ := n.AddNode("add", 0, 0)

	err := n.Connect(sphere, 0, add, 0)
	assert.ErrorIs(t, err, node.ErrTypeMismatch)
}

func TestNetwork_ConnectDetectsCycle(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("add", 0, 0)
	b, _ := n.AddNode("add", 0, 0)

	require.NoError(t, n.Connect(a, 0, b, 0))
	err := n.Connect(b, 0, a, 0)
	assert.ErrorIs(t, err, node.ErrCycle)
}

func TestNetwork_ConnectFunctionPin(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	addFn, _ := n.AddNode("add", 0, 0)
	mapNode, _ := n.AddNode("map", 0, 0)

	// add's type is (Float, Float) -> Float; captured as a function pin it
	// partially applies against map's required Float -> Float (its first
	// parameter matches, the second is left for later binding).
	require.NoError(t, n.Connect(addFn, node.FunctionPin, mapNode, 0))

	constFn, _ := n.AddNode("constant_float", 0, 0)
	err := n.Connect(constFn, node.FunctionPin, mapNode, 0)
	assert.ErrorIs(t, err, node.ErrTypeMismatch, "constant_float has no parameters to partially apply")
}

func TestNetwork_DeleteStripsReferences(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("constant_float", 0, 0)
	b, _ := n.AddNode("constant_float", 0, 0)
	add, _ := n.AddNode("add", 0, 0)
	require.NoError(t, n.Connect(a, 0, add, 0))
	require.NoError(t, n.Connect(b, 0, add, 1))

	require.NoError(t, n.Delete(a))
	addNode, _ := n.Node(add)
	assert.Empty(t, addNode.Arguments[0].OutputPins)
	_, ok := n.Node(a)
	assert.False(t, ok)
}

func TestNetwork_SetCustomNameAndClear(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("constant_float", 0, 0)

	require.NoError(t, n.SetCustomName(a, "Radius"))
	aNode, _ := n.Node(a)
	require.NotNil(t, aNode.CustomName)
	assert.Equal(t, "Radius", *aNode.CustomName)

	require.NoError(t, n.SetCustomName(a, ""))
	aNode, _ = n.Node(a)
	assert.Nil(t, aNode.CustomName)
}

func TestNetwork_SetReturnNode(t *testing.T) {
	n := node.NewNetwork(testRegistry(), "main")
	a, _ := n.AddNode("constant_float", 0, 0)
	require.NoError(t, n.SetReturnNode(a))

	got, ok := n.ReturnNode()
	require.True(t, ok)
	assert.Equal(t, a, got)

	require.NoError(t, n.Delete(a))
	_, ok = n.ReturnNode()
	assert.False(t, ok, "deleting the return node should clear it")
}
