package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/node"
)

// floatData is a minimal node.NodeData carrying one float constant, used
// throughout this file in place of the full catalog so these tests stay
// self-contained.
type floatData struct{ Value float64 }

func (d floatData) Clone() node.NodeData { return d }

func newConstFloat(reg *node.Registry, ev *eval.Evaluator) {
	reg.Register(node.NodeType{
		Name:       "const_float",
		OutputType: node.TypeFloat,
		NewData:    func() node.NodeData { return floatData{} },
	})
	ev.RegisterBuiltin("const_float", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		return eval.Float(n.Data.(floatData).Value), nil
	})
}

func addConstFloat(t *testing.T, net *node.NodeNetwork, value float64) node.NodeId {
	t.Helper()
	id, err := net.AddNode("const_float", 0, 0)
	require.NoError(t, err)
	n, _ := net.Node(id)
	n.Data = floatData{Value: value}
	return id
}

func TestEvaluate_NodeNotFound(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	newConstFloat(reg, ev)
	net := node.NewNetwork(reg, "main")

	result, err := ev.Evaluate(net, 999)
	require.NoError(t, err)
	require.True(t, result.IsError())
	require.Equal(t, eval.ErrorNodeNotFound, result.AsError().Kind)
}

func TestEvaluate_MissingInputShortCircuits(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	newConstFloat(reg, ev)

	reg.Register(node.NodeType{
		Name:       "needs_float",
		Parameters: []node.Parameter{{Name: "x", Type: node.TypeFloat}},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("needs_float", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		if args[0].Kind != node.KindFloat {
			return eval.Err(eval.ErrorMissingInput, "x"), nil
		}
		return eval.Float(args[0].Float + 1), nil
	})

	consumerCalled := false
	reg.Register(node.NodeType{
		Name:       "consumer",
		Parameters: []node.Parameter{{Name: "in", Type: node.TypeFloat}},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("consumer", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		consumerCalled = true
		return args[0], nil
	})

	net := node.NewNetwork(reg, "main")
	source, err := net.AddNode("needs_float", 0, 0) // left unconnected: produces MissingInput
	require.NoError(t, err)
	downstream, err := net.AddNode("consumer", 0, 0)
	require.NoError(t, err)
	require.NoError(t, net.Connect(source, 0, downstream, 0))

	result, err := ev.Evaluate(net, downstream)
	require.NoError(t, err)
	require.True(t, result.IsError())
	require.Equal(t, eval.ErrorMissingInput, result.AsError().Kind)
	require.False(t, consumerCalled, "an errored argument must short-circuit before the consuming builtin runs")
}

func TestEvaluate_RuntimeFunctionPinTypeMismatch(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	newConstFloat(reg, ev)

	reg.Register(node.NodeType{
		Name:       "caller",
		Parameters: []node.Parameter{{Name: "f", Type: node.FuncOf(node.TypeFloat, node.TypeFloat)}},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("caller", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		return args[0], nil
	})

	net := node.NewNetwork(reg, "main")
	src := addConstFloat(t, net, 1)
	callID, err := net.AddNode("caller", 0, 0)
	require.NoError(t, err)

	// Forge a non-function-pin connection into a Function-typed argument
	// slot, bypassing Connect's own graph-time check (which would refuse
	// this wiring), to exercise gatherArgument's runtime guard against a
	// malformed or hand-edited network.
	callNode, ok := net.Node(callID)
	require.True(t, ok)
	callNode.Arguments[0].OutputPins = map[node.NodeId]int{src: 0}

	result, err := ev.Evaluate(net, callID)
	require.NoError(t, err)
	require.True(t, result.IsError())
	require.Equal(t, eval.ErrorTypeMismatch, result.AsError().Kind)
}

func TestFunctionValue_CallBindsTrailingParameter(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	newConstFloat(reg, ev)

	reg.Register(node.NodeType{
		Name: "add2",
		Parameters: []node.Parameter{
			{Name: "a", Type: node.TypeFloat},
			{Name: "b", Type: node.TypeFloat},
		},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("add2", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		return eval.Float(args[0].Float + args[1].Float), nil
	})

	reg.Register(node.NodeType{
		Name: "apply_one",
		Parameters: []node.Parameter{
			{Name: "f", Type: node.FuncOf(node.TypeFloat, node.TypeFloat)},
			{Name: "x", Type: node.TypeFloat},
		},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("apply_one", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		require.NotNil(t, args[0].Func)
		return args[0].Func.Call([]eval.Result{args[1]})
	})

	net := node.NewNetwork(reg, "main")
	a := addConstFloat(t, net, 3) // add2's leading parameter, already wired
	addID, err := net.AddNode("add2", 0, 0)
	require.NoError(t, err)
	require.NoError(t, net.Connect(a, 0, addID, 0))

	applyID, err := net.AddNode("apply_one", 0, 0)
	require.NoError(t, err)
	require.NoError(t, net.Connect(addID, node.FunctionPin, applyID, 0))

	x := addConstFloat(t, net, 4) // apply_one's own argument, bound at Call time
	require.NoError(t, net.Connect(x, 0, applyID, 1))

	result, err := ev.Evaluate(net, applyID)
	require.NoError(t, err)
	require.False(t, result.IsError())
	require.Equal(t, node.KindFloat, result.Kind)
	require.Equal(t, 7.0, result.Float)
}

func TestEvaluate_MemoKeyDoesNotCollideAcrossCustomNetworkInstances(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	newConstFloat(reg, ev)

	reg.Register(node.NodeType{
		Name:       "square",
		Parameters: []node.Parameter{{Name: "x", Type: node.TypeFloat}},
		OutputType: node.TypeFloat,
	})
	ev.RegisterBuiltin("square", func(n *node.Node, args []eval.Result) (eval.Result, error) {
		return eval.Float(args[0].Float * args[0].Float), nil
	})

	reg.Register(node.NodeType{Name: "parameter", OutputType: node.TypeFloat})

	// sqNet is shared by every "sq_type" call site; its internal "square"
	// node must not memoize a single result across distinct callers.
	sqNet := node.NewNetwork(reg, "sq_net")
	param, err := sqNet.AddNode("parameter", 0, 0)
	require.NoError(t, err)
	squareID, err := sqNet.AddNode("square", 0, 0)
	require.NoError(t, err)
	require.NoError(t, sqNet.Connect(param, 0, squareID, 0))
	require.NoError(t, sqNet.SetReturnNode(squareID))

	reg.Register(node.NodeType{
		Name:       "sq_type",
		Parameters: []node.Parameter{{Name: "x", Type: node.TypeFloat}},
		OutputType: node.TypeFloat,
	})
	ev.RegisterCustomNetwork("sq_type", sqNet)

	main := node.NewNetwork(reg, "main")
	a := addConstFloat(t, main, 3)
	callA, err := main.AddNode("sq_type", 0, 0)
	require.NoError(t, err)
	require.NoError(t, main.Connect(a, 0, callA, 0))

	b := addConstFloat(t, main, 5)
	callB, err := main.AddNode("sq_type", 0, 0)
	require.NoError(t, err)
	require.NoError(t, main.Connect(b, 0, callB, 0))

	resultA, err := ev.Evaluate(main, callA)
	require.NoError(t, err)
	require.Equal(t, 9.0, resultA.Float)

	resultB, err := ev.Evaluate(main, callB)
	require.NoError(t, err)
	require.Equal(t, 25.0, resultB.Float)

	// Re-evaluating must still return each call site's own result, not
	// whichever one happened to populate a shared memo entry first.
	resultA2, err := ev.Evaluate(main, callA)
	require.NoError(t, err)
	require.Equal(t, 9.0, resultA2.Float)
}

func TestEvaluate_SelfReferentialCustomTypeReturnsCycleError(t *testing.T) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()

	reg.Register(node.NodeType{Name: "self_type", OutputType: node.TypeFloat})

	selfNet := node.NewNetwork(reg, "self_net")
	innerCall, err := selfNet.AddNode("self_type", 0, 0)
	require.NoError(t, err)
	require.NoError(t, selfNet.SetReturnNode(innerCall))
	ev.RegisterCustomNetwork("self_type", selfNet)

	main := node.NewNetwork(reg, "main")
	callID, err := main.AddNode("self_type", 0, 0)
	require.NoError(t, err)

	result, err := ev.Evaluate(main, callID)
	require.NoError(t, err)
	require.True(t, result.IsError())
	require.Equal(t, eval.ErrorCycle, result.AsError().Kind)
}
