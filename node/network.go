package node

import "sync"

// NodeId identifies a node within a single NodeNetwork. Ids are never
// reused within a network's lifetime.
type NodeId uint64

// FunctionPin is the sentinel pin index recorded in Argument.OutputPins
// when the connection captures the whole source node as a callable value
// (a function pin) rather than evaluating its regular output.
const FunctionPin = -1

// Argument is one parameter slot's wiring: the set of source nodes feeding
// it, each paired with the output pin of that source being consumed.
// OutputPins has exactly one entry for a non-multi parameter; a multi
// parameter (e.g. Union's shape list) may hold several, and iteration
// order is not significant to evaluation (callers that need a stable
// order should sort the keys).
type Argument struct {
	OutputPins map[NodeId]int
}

// NodeIDs returns the source node ids feeding this argument, in no
// particular order.
func (a Argument) NodeIDs() []NodeId {
	ids := make([]NodeId, 0, len(a.OutputPins))
	for id := range a.OutputPins {
		ids = append(ids, id)
	}
	return ids
}

// Single returns the lone source node id for a non-multi argument. ok is
// false if the argument is unconnected or holds more than one source.
func (a Argument) Single() (id NodeId, pin int, ok bool) {
	if len(a.OutputPins) != 1 {
		return 0, 0, false
	}
	for k, v := range a.OutputPins {
		return k, v, true
	}
	return 0, 0, false
}

// Node is one instance in a NodeNetwork: a typed slot (NodeTypeName), its
// wiring (Arguments, one per declared Parameter), its owned mutable state
// (Data), and its position in the network editor's canvas.
type Node struct {
	Id           NodeId
	NodeTypeName string
	PositionX    float64
	PositionY    float64
	Arguments    []Argument
	Data         NodeData
	CustomName   *string
}

// NodeNetwork is a mutable, thread-safe DAG of wired Node instances. Name
// is the network's own identity when it is registered as a custom node
// type elsewhere (its Parameter nodes become that type's inputs and its
// return node's output becomes the type's output).
type NodeNetwork struct {
	mu       sync.RWMutex
	registry *Registry

	Name             string
	nextNodeID       NodeId
	nodes            map[NodeId]*Node
	returnNodeID     *NodeId
	displayedNodeIDs map[NodeId]struct{}
}

// NewNetwork returns an empty NodeNetwork whose node types are resolved
// against registry.
func NewNetwork(registry *Registry, name string) *NodeNetwork {
	return &NodeNetwork{
		registry:         registry,
		Name:             name,
		nextNodeID:       1,
		nodes:            make(map[NodeId]*Node),
		displayedNodeIDs: make(map[NodeId]struct{}),
	}
}

// AddNode allocates a fresh NodeId, installs a Node of the named type with
// default data and empty arguments, and returns its id. It fails with
// ErrUnknownNodeType if typeName is not registered.
func (n *NodeNetwork) AddNode(typeName string, x, y float64) (NodeId, error) {
	nt, ok := n.registry.Lookup(typeName)
	if !ok {
		return 0, ErrUnknownNodeType
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextNodeID
	n.nextNodeID++

	var data NodeData
	if nt.NewData != nil {
		data = nt.NewData()
	}
	n.nodes[id] = &Node{
		Id:           id,
		NodeTypeName: typeName,
		PositionX:    x,
		PositionY:    y,
		Arguments:    make([]Argument, len(nt.Parameters)),
		Data:         data,
	}
	return id, nil
}

// Registry returns the NodeTypeRegistry this network resolves node types
// against.
func (n *NodeNetwork) Registry() *Registry { return n.registry }

// Node returns a pointer to the live node with the given id. Callers must
// not retain it past a concurrent mutation of the network; prefer the
// mutator methods for edits.
func (n *NodeNetwork) Node(id NodeId) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[id]
	return node, ok
}

// NodeIDs returns every node id currently in the network, unordered.
func (n *NodeNetwork) NodeIDs() []NodeId {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ids := make([]NodeId, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Connect wires srcID's output at pin srcPin into dstID's dstParam
// argument. If dstParam is not declared multi and already has an entry,
// the prior connection is replaced. Connect validates both node ids
// exist, the output type (srcPin == FunctionPin uses the source node's
// whole NodeType as a Function value) converts to the parameter's
// declared type, and that the new edge does not introduce a cycle.
func (n *NodeNetwork) Connect(srcID NodeId, srcPin int, dstID NodeId, dstParam int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	src, ok := n.nodes[srcID]
	if !ok {
		return ErrNodeNotFound
	}
	dst, ok := n.nodes[dstID]
	if !ok {
		return ErrNodeNotFound
	}
	if dstParam < 0 || dstParam >= len(dst.Arguments) {
		return ErrParamOutOfRange
	}

	dstType, err := n.nodeTypeOf(dst)
	if err != nil {
		return err
	}
	param := dstType.Parameters[dstParam]

	srcType, err := n.nodeTypeOf(src)
	if err != nil {
		return err
	}
	outputType := srcType.OutputType
	if srcPin == FunctionPin {
		outputType = FuncOf(srcType.OutputType, paramTypes(srcType.Parameters)...)
	}
	if !outputType.CanBeConvertedTo(param.Type) {
		return ErrTypeMismatch
	}

	if n.dependsOn(srcID, dstID) {
		return ErrCycle
	}

	if dst.Arguments[dstParam].OutputPins == nil {
		dst.Arguments[dstParam].OutputPins = make(map[NodeId]int)
	}
	if !param.Multi {
		dst.Arguments[dstParam].OutputPins = map[NodeId]int{srcID: srcPin}
	} else {
		dst.Arguments[dstParam].OutputPins[srcID] = srcPin
	}
	return nil
}

// Disconnect removes the srcID entry from dstID's dstParam argument. It
// returns ErrConnectionNotFound if no such entry exists.
func (n *NodeNetwork) Disconnect(dstID NodeId, dstParam int, srcID NodeId) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	dst, ok := n.nodes[dstID]
	if !ok {
		return ErrNodeNotFound
	}
	if dstParam < 0 || dstParam >= len(dst.Arguments) {
		return ErrParamOutOfRange
	}
	pins := dst.Arguments[dstParam].OutputPins
	if _, ok := pins[srcID]; !ok {
		return ErrConnectionNotFound
	}
	delete(pins, srcID)
	return nil
}

// Delete removes id from the network and strips every argument entry
// referencing it from every other node, so no dangling edges survive.
func (n *NodeNetwork) Delete(id NodeId) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	delete(n.nodes, id)
	delete(n.displayedNodeIDs, id)
	if n.returnNodeID != nil && *n.returnNodeID == id {
		n.returnNodeID = nil
	}
	for _, other := range n.nodes {
		for i := range other.Arguments {
			delete(other.Arguments[i].OutputPins, id)
		}
	}
	return nil
}

// SetCustomName stores name as id's user-chosen display name. Pass an
// empty string to clear it back to the auto-generated name.
func (n *NodeNetwork) SetCustomName(id NodeId, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	node, ok := n.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if name == "" {
		node.CustomName = nil
		return nil
	}
	node.CustomName = &name
	return nil
}

// SetReturnNode designates id as the network's single output node, used
// when this network is exposed as a custom node type.
func (n *NodeNetwork) SetReturnNode(id NodeId) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	n.returnNodeID = &id
	return nil
}

// ReturnNode returns the network's designated output node id, if set.
func (n *NodeNetwork) ReturnNode() (NodeId, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.returnNodeID == nil {
		return 0, false
	}
	return *n.returnNodeID, true
}

// SetDisplayed toggles whether id's evaluated result should be surfaced to
// the renderer alongside the network's return node.
func (n *NodeNetwork) SetDisplayed(id NodeId, displayed bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	if displayed {
		n.displayedNodeIDs[id] = struct{}{}
	} else {
		delete(n.displayedNodeIDs, id)
	}
	return nil
}

// DisplayedNodes returns every node id currently flagged for display,
// unordered.
func (n *NodeNetwork) DisplayedNodes() []NodeId {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ids := make([]NodeId, 0, len(n.displayedNodeIDs))
	for id := range n.displayedNodeIDs {
		ids = append(ids, id)
	}
	return ids
}

// nodeTypeOf resolves a node's declared NodeType via the registry. Callers
// must hold n.mu.
func (n *NodeNetwork) nodeTypeOf(node *Node) (NodeType, error) {
	nt, ok := n.registry.Lookup(node.NodeTypeName)
	if !ok {
		return NodeType{}, ErrUnknownNodeType
	}
	return nt, nil
}

// dependsOn reports whether from already (transitively) consumes to's
// output via existing argument wiring. Connect calls dependsOn(src, dst)
// before wiring a new dst-depends-on-src edge: if src already depends on
// dst, adding the edge would close a cycle (dst -> src -> ... -> dst).
// Callers must hold n.mu.
func (n *NodeNetwork) dependsOn(from, to NodeId) bool {
	if from == to {
		return true
	}
	visited := make(map[NodeId]bool)
	var visit func(id NodeId) bool
	visit = func(id NodeId) bool {
		if id == to {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		node, ok := n.nodes[id]
		if !ok {
			return false
		}
		for _, arg := range node.Arguments {
			for upstream := range arg.OutputPins {
				if visit(upstream) {
					return true
				}
			}
		}
		return false
	}
	return visit(from)
}

func paramTypes(params []Parameter) []DataType {
	types := make([]DataType, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}
