package bridge

import (
	"fmt"
	"sort"

	"github.com/atomcore/atomcore/node"
)

// parameterSpec is satisfied by a "parameter" node's NodeData (catalog's
// ParameterData, in the built-in catalog). Declaring it here rather than
// importing catalog directly keeps this package from depending upward on
// the concrete node-type catalog it is meant to host.
type parameterSpec interface {
	ParameterSpec() (name string, typ node.DataType, multi bool)
}

// PromoteNetworkToType implements the promote_network_to_type command: it
// exposes the named network as a reusable custom node type, so any
// network sharing this Bridge's registry can add_node it like a
// built-in. The promoted type's Parameters come from the network's
// "parameter" nodes, ordered by ascending node id (matching the
// evaluator's own parameter-binding order), and its OutputType is the
// return node's own output type. PromoteNetworkToType registers both the
// node.NodeType (so AddNode/Connect resolve it) and the custom-network
// binding the evaluator dispatches through; a node referencing typeName
// is unusable until both halves are in place.
func (b *Bridge) PromoteNetworkToType(networkName, typeName string) error {
	net, err := b.Network(networkName)
	if err != nil {
		return err
	}

	returnID, ok := net.ReturnNode()
	if !ok {
		return ErrNetworkHasNoReturnNode
	}
	returnNode, ok := net.Node(returnID)
	if !ok {
		return node.ErrNodeNotFound
	}
	// A return node that is itself a "parameter" node (the identity
	// custom type: the promoted type just passes one of its own inputs
	// through) has no useful OutputType in the registry, since every
	// parameter node shares the same type-less NodeType entry. Its real
	// output type is whatever that parameter node declares, widened to
	// an array if the parameter binds multiple sources.
	var outputType node.DataType
	if returnNode.NodeTypeName == "parameter" {
		_, typ, multi := parameterSpecOf(returnNode)
		if multi {
			outputType = node.ArrayOf(typ)
		} else {
			outputType = typ
		}
	} else {
		returnType, ok := net.Registry().Lookup(returnNode.NodeTypeName)
		if !ok {
			return node.ErrUnknownNodeType
		}
		outputType = returnType.OutputType
	}

	var paramIDs []node.NodeId
	for _, id := range net.NodeIDs() {
		n, ok := net.Node(id)
		if ok && n.NodeTypeName == "parameter" {
			paramIDs = append(paramIDs, id)
		}
	}
	sort.Slice(paramIDs, func(i, j int) bool { return paramIDs[i] < paramIDs[j] })

	params := make([]node.Parameter, len(paramIDs))
	for i, id := range paramIDs {
		n, _ := net.Node(id)
		name, typ, multi := parameterSpecOf(n)
		if name == "" {
			name = fmt.Sprintf("param%d", i)
		}
		params[i] = node.Parameter{Name: name, Type: typ, Multi: multi}
	}

	nt := node.NodeType{
		Name:        typeName,
		Category:    "Custom",
		Description: fmt.Sprintf("Custom node type promoted from network %q.", networkName),
		Parameters:  params,
		OutputType:  outputType,
	}
	if err := b.registry.Register(nt); err != nil {
		return err
	}

	b.mu.RLock()
	ev := b.eval
	b.mu.RUnlock()
	ev.RegisterCustomNetwork(typeName, net)
	return nil
}

// parameterSpecOf reads n's declared name/type/multiplicity via
// parameterSpec, defaulting to an unnamed single Float if n.Data does not
// implement it (e.g. the unknownData placeholder LoadDesign substitutes
// for data it could not decode).
func parameterSpecOf(n *node.Node) (name string, typ node.DataType, multi bool) {
	typ = node.TypeFloat
	if spec, ok := n.Data.(parameterSpec); ok {
		name, typ, multi = spec.ParameterSpec()
	}
	return name, typ, multi
}
