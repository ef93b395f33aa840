package eval

import "github.com/atomcore/atomcore/node"

// frame records one level of network_stack: the custom-type node whose
// evaluation pushed a sub-network, and the bindings its parameter nodes
// resolve to while that sub-network is active.
type frame struct {
	network  *node.NodeNetwork
	nodeID   node.NodeId
	bindings map[node.NodeId]Result
}

// activeCall identifies one in-flight evaluateNode call by the network
// and node id it is computing. The evaluator threads a slice of these
// alongside the network_stack, distinct from it: a frame is only pushed
// when a custom network is entered, while an activeCall is pushed for
// every node visited, across custom-network boundaries. This is what
// lets it catch a self-referential custom node type (type A's network
// contains a node of type A, or A embeds B which embeds A), which
// node.Connect's per-network cycle check cannot see since each descent
// into a subnet starts a fresh DFS.
type activeCall struct {
	network *node.NodeNetwork
	nodeID  node.NodeId
}
