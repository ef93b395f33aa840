package node

import "sync"

// NodeData is the per-instance mutable state a node of a given NodeType
// owns (its dialed-in constants: a sphere's radius, a transform's
// rotation, an atom-edit's diff text, ...). Concrete data types live
// alongside the evaluator code that interprets them; this package only
// needs to construct, clone and tag them.
type NodeData interface {
	// Clone returns a deep copy, so editing one node's data never aliases
	// another node's (or an undo snapshot's) state.
	Clone() NodeData
}

// Parameter declares one input slot of a NodeType: its name (for display
// and serialization), its required DataType, and whether it accepts more
// than one wired source (Multi).
type Parameter struct {
	Name  string
	Type  DataType
	Multi bool
}

// NodeType is the declarative shape of a kind of node: its ordered
// parameter list, its output type, and a factory for the default NodeData
// a freshly added node of this type should start with.
type NodeType struct {
	Name        string
	Description string
	Category    string
	Parameters  []Parameter
	OutputType  DataType

	// NewData returns a fresh default NodeData instance. May be nil for
	// node types that carry no per-instance state.
	NewData func() NodeData
}

// Registry looks up NodeTypes by name. It is safe for concurrent use; the
// node network consults it on every AddNode and Connect call.
type Registry struct {
	mu    sync.RWMutex
	types map[string]NodeType
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]NodeType)}
}

// Register adds t to the registry. It returns ErrDuplicateTypeName if a
// type with the same name is already registered.
func (r *Registry) Register(t NodeType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Name]; exists {
		return ErrDuplicateTypeName
	}
	r.types[t.Name] = t
	return nil
}

// Lookup returns the NodeType registered under name, if any.
func (r *Registry) Lookup(name string) (NodeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns every registered type name, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}
