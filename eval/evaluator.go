package eval

import (
	"encoding/binary"
	"sort"
	"sync"
	"unsafe"

	"lukechampine.com/blake3"

	"github.com/atomcore/atomcore/node"
)

// BuiltinFunc implements one node type's evaluation logic: given the node
// instance (for reading its own NodeData constants) and its already
// evaluated, type-checked arguments (None for an unconnected optional
// slot), it produces a Result or an error.
type BuiltinFunc func(n *node.Node, args []Result) (Result, error)

// Evaluator walks NodeNetworks, dispatching each node either to a
// registered BuiltinFunc or, for a node type backed by a promoted
// sub-network, to that sub-network's return node.
type Evaluator struct {
	mu             sync.Mutex
	builtins       map[string]BuiltinFunc
	customNetworks map[string]*node.NodeNetwork
	memo           map[[32]byte]Result
}

// NewEvaluator returns an Evaluator with no registered types.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		builtins:       make(map[string]BuiltinFunc),
		customNetworks: make(map[string]*node.NodeNetwork),
		memo:           make(map[[32]byte]Result),
	}
}

// RegisterBuiltin installs fn as the evaluation logic for typeName.
func (ev *Evaluator) RegisterBuiltin(typeName string, fn BuiltinFunc) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.builtins[typeName] = fn
}

// RegisterCustomNetwork exposes net as the evaluation logic for typeName:
// a node of this type descends into net, binding its arguments to net's
// "parameter" nodes (ordered by ascending NodeId) and returning net's
// designated return node's result.
func (ev *Evaluator) RegisterCustomNetwork(typeName string, net *node.NodeNetwork) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.customNetworks[typeName] = net
}

// ClearMemo drops every cached per-node result. Call this after any
// network edit; a stale entry would otherwise outlive the wiring or data
// it was computed from.
func (ev *Evaluator) ClearMemo() {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.memo = make(map[[32]byte]Result)
}

// Evaluate computes the result of node id within net.
func (ev *Evaluator) Evaluate(net *node.NodeNetwork, id node.NodeId) (Result, error) {
	return ev.evaluateNode(nil, nil, net, id, nil, 0)
}

// evaluateNode is the recursive core. paramOverrides, when non-nil, binds
// specific parameter indices to already-resolved values instead of
// evaluating their wiring — used when a FunctionValue is called with
// trailing arguments bound by partial application. active is the chain
// of (network, nodeID) pairs already under evaluation on this call path;
// re-entering one aborts with ErrorCycle rather than recursing forever.
func (ev *Evaluator) evaluateNode(stack []frame, active []activeCall, net *node.NodeNetwork, id node.NodeId, paramOverrides []Result, overrideStart int) (Result, error) {
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.network == net {
			if bound, ok := top.bindings[id]; ok {
				return bound, nil
			}
		}
	}

	for _, a := range active {
		if a.network == net && a.nodeID == id {
			return Err(ErrorCycle, "evaluator re-entered a node already on the active recursion stack"), nil
		}
	}

	key := ev.memoKey(stack, net, id, paramOverrides, overrideStart)
	ev.mu.Lock()
	if cached, ok := ev.memo[key]; ok {
		ev.mu.Unlock()
		return cached, nil
	}
	ev.mu.Unlock()

	nextActive := append(append([]activeCall{}, active...), activeCall{network: net, nodeID: id})
	result, err := ev.evaluateNodeUncached(stack, nextActive, net, id, paramOverrides, overrideStart)
	if err != nil {
		return Result{}, err
	}

	ev.mu.Lock()
	ev.memo[key] = result
	ev.mu.Unlock()
	return result, nil
}

func (ev *Evaluator) evaluateNodeUncached(stack []frame, active []activeCall, net *node.NodeNetwork, id node.NodeId, paramOverrides []Result, overrideStart int) (Result, error) {
	n, ok := net.Node(id)
	if !ok {
		return Err(ErrorNodeNotFound, "node not found"), nil
	}

	nt, ok := net.Registry().Lookup(n.NodeTypeName)
	if !ok {
		return Err(ErrorNodeTypeNotFound, n.NodeTypeName), nil
	}

	args := make([]Result, len(nt.Parameters))
	for i, param := range nt.Parameters {
		if paramOverrides != nil && i >= overrideStart && i-overrideStart < len(paramOverrides) {
			args[i] = paramOverrides[i-overrideStart]
			continue
		}
		value, err := ev.gatherArgument(stack, active, net, n.Arguments[i], param)
		if err != nil {
			return Result{}, err
		}
		if value.IsError() {
			return value, nil
		}
		args[i] = value
	}

	ev.mu.Lock()
	subnet, isCustom := ev.customNetworks[n.NodeTypeName]
	builtin, isBuiltin := ev.builtins[n.NodeTypeName]
	ev.mu.Unlock()

	switch {
	case isCustom:
		return ev.evaluateCustomNetwork(stack, active, net, id, subnet, args)
	case isBuiltin:
		result, err := builtin(n, args)
		if err != nil {
			return Result{}, err
		}
		return result, nil
	default:
		return Err(ErrorNodeTypeNotFound, n.NodeTypeName), nil
	}
}

func (ev *Evaluator) gatherArgument(stack []frame, active []activeCall, net *node.NodeNetwork, arg node.Argument, param node.Parameter) (Result, error) {
	if param.Type.IsFunction() {
		srcID, pin, ok := arg.Single()
		if !ok {
			return None, nil
		}
		if pin != node.FunctionPin {
			return Err(ErrorTypeMismatch, "function parameter requires a function-pin connection"), nil
		}
		bound := 0
		if src, ok := net.Node(srcID); ok {
			if nt, ok := net.Registry().Lookup(src.NodeTypeName); ok {
				bound = len(nt.Parameters) - len(param.Type.Function.ParameterTypes)
			}
		}
		return Result{Kind: node.KindFunction, Func: &FunctionValue{
			ev:       ev,
			stack:    stack,
			active:   active,
			target:   net,
			targetID: srcID,
			bound:    bound,
		}}, nil
	}
	if param.Multi {
		ids := arg.NodeIDs()
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		values := make([]Result, 0, len(ids))
		for _, srcID := range ids {
			v, err := ev.evaluateNode(stack, active, net, srcID, nil, 0)
			if err != nil {
				return Result{}, err
			}
			if v.IsError() {
				return v, nil
			}
			values = append(values, v)
		}
		return Result{Kind: node.KindArray, Array: values}, nil
	}
	srcID, _, ok := arg.Single()
	if !ok {
		return None, nil
	}
	return ev.evaluateNode(stack, active, net, srcID, nil, 0)
}

func (ev *Evaluator) evaluateCustomNetwork(stack []frame, active []activeCall, callerNet *node.NodeNetwork, callerID node.NodeId, subnet *node.NodeNetwork, args []Result) (Result, error) {
	var paramNodeIDs []node.NodeId
	for _, id := range subnet.NodeIDs() {
		if n, ok := subnet.Node(id); ok && n.NodeTypeName == "parameter" {
			paramNodeIDs = append(paramNodeIDs, id)
		}
	}
	sort.Slice(paramNodeIDs, func(i, j int) bool { return paramNodeIDs[i] < paramNodeIDs[j] })

	bindings := make(map[node.NodeId]Result, len(paramNodeIDs))
	for i, id := range paramNodeIDs {
		if i < len(args) {
			bindings[id] = args[i]
		} else {
			bindings[id] = None
		}
	}

	returnID, ok := subnet.ReturnNode()
	if !ok {
		return Err(ErrorDomain, "custom network has no return node"), nil
	}

	newStack := append(append([]frame{}, stack...), frame{
		network:  subnet,
		nodeID:   callerID,
		bindings: bindings,
	})

	return ev.evaluateNode(newStack, active, subnet, returnID, nil, 0)
}

func (ev *Evaluator) memoKey(stack []frame, net *node.NodeNetwork, id node.NodeId, paramOverrides []Result, overrideStart int) [32]byte {
	h := blake3.New(32, nil)
	for _, f := range stack {
		writeU64(h, uint64(uintptr(unsafe.Pointer(f.network))))
		writeU64(h, uint64(f.nodeID))
		keys := make([]node.NodeId, 0, len(f.bindings))
		for k := range f.bindings {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			writeU64(h, uint64(k))
			d := f.bindings[k].digest()
			h.Write(d[:])
		}
	}
	writeU64(h, uint64(uintptr(unsafe.Pointer(net))))
	writeU64(h, uint64(id))
	for i, ov := range paramOverrides {
		writeU64(h, uint64(overrideStart+i))
		d := ov.digest()
		h.Write(d[:])
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func writeU64(h *blake3.Hasher, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
