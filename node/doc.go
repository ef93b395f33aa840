// Package node defines the node-network data model: the typed value system
// (DataType), the declarative shape of a node kind (NodeType, Parameter),
// and the mutable graph of wired node instances (NodeNetwork, Node,
// Argument) that a user edits and the eval package walks.
//
// A NodeNetwork is a DAG, not a tree: a node's output may feed more than
// one downstream argument, and arguments may bind to multiple upstream
// nodes when their parameter is declared multi (e.g. Union's shape list).
// Connect rejects edges that would introduce a cycle or that fail the
// DataType conversion rules, so a network that type-checks at edit time
// never fails to type-check during evaluation.
package node
