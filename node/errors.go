package node

import "errors"

// Sentinel errors returned by NodeNetwork operations.
var (
	// ErrUnknownNodeType indicates AddNode was called with a type name that
	// is not registered in the NodeTypeRegistry.
	ErrUnknownNodeType = errors.New("node: unknown node type")

	// ErrNodeNotFound indicates an operation referenced a NodeId that does
	// not exist in the network.
	ErrNodeNotFound = errors.New("node: node not found")

	// ErrParamOutOfRange indicates an operation referenced a parameter
	// index outside the node type's declared parameter list.
	ErrParamOutOfRange = errors.New("node: parameter index out of range")

	// ErrTypeMismatch indicates a connection's source output type cannot
	// be converted to the destination parameter's declared type.
	ErrTypeMismatch = errors.New("node: source type cannot convert to parameter type")

	// ErrCycle indicates a connection would introduce a cycle into the
	// network's dependency DAG.
	ErrCycle = errors.New("node: connection would introduce a cycle")

	// ErrConnectionNotFound indicates Disconnect referenced an edge that
	// is not currently wired.
	ErrConnectionNotFound = errors.New("node: connection not found")

	// ErrDuplicateTypeName indicates RegisterType was called with a name
	// already present in the registry.
	ErrDuplicateTypeName = errors.New("node: duplicate node type name")
)
