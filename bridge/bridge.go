package bridge

import (
	"log"
	"os"
	"sync"

	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/node"
)

// Bridge owns the live set of named node networks, the shared type
// registry and evaluator they are resolved against, and the state
// needed to service the host command surface (library import staging,
// diagnostics).
//
// mu guards the networks map. Commands that act on a single network hold
// it only while looking the network up and then rely on NodeNetwork's own
// locking; commands that read or replace the map as a whole hold it while
// doing so.
type Bridge struct {
	mu       sync.RWMutex
	registry *node.Registry
	eval     *eval.Evaluator
	networks map[string]*node.NodeNetwork
	logger   *log.Logger

	importMgr       *importManager
	energyMinimizer EnergyMinimizer
}

// NewBridge constructs a Bridge with no networks registered yet. Diagnostics
// go to os.Stderr unless overridden with SetLogger.
func NewBridge(registry *node.Registry, evaluator *eval.Evaluator) *Bridge {
	return &Bridge{
		registry:  registry,
		eval:      evaluator,
		networks:  make(map[string]*node.NodeNetwork),
		logger:    log.New(os.Stderr, "bridge: ", log.LstdFlags),
		importMgr: newImportManager(),
	}
}

// SetLogger overrides the diagnostic logger.
func (b *Bridge) SetLogger(l *log.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = l
}

// CreateNetwork registers a new empty network under name. Returns
// ErrNetworkExists if the name is already taken.
func (b *Bridge) CreateNetwork(name string) (*node.NodeNetwork, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.networks[name]; exists {
		return nil, ErrNetworkExists
	}
	net := node.NewNetwork(b.registry, name)
	b.networks[name] = net
	return net, nil
}

// Network returns the live network registered under name.
func (b *Bridge) Network(name string) (*node.NodeNetwork, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	net, ok := b.networks[name]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return net, nil
}

// NetworkNames lists every registered network's name.
func (b *Bridge) NetworkNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.networks))
	for name := range b.networks {
		names = append(names, name)
	}
	return names
}

// AddNode implements the add_node command: it instantiates typeName at
// (x, y) in the named network and returns its new id.
func (b *Bridge) AddNode(networkName, typeName string, x, y float64) (node.NodeId, error) {
	net, err := b.Network(networkName)
	if err != nil {
		return 0, err
	}
	return net.AddNode(typeName, x, y)
}

// Connect implements the connect command.
func (b *Bridge) Connect(networkName string, srcID node.NodeId, srcPin int, dstID node.NodeId, dstParam int) error {
	net, err := b.Network(networkName)
	if err != nil {
		return err
	}
	return net.Connect(srcID, srcPin, dstID, dstParam)
}

// MoveNode implements the move_node command: it repositions an existing
// node's canvas coordinates without touching its wiring or data.
func (b *Bridge) MoveNode(networkName string, id node.NodeId, x, y float64) error {
	net, err := b.Network(networkName)
	if err != nil {
		return err
	}
	n, ok := net.Node(id)
	if !ok {
		return node.ErrNodeNotFound
	}
	n.PositionX = x
	n.PositionY = y
	return nil
}

// SetCustomName implements the set_custom_name command.
func (b *Bridge) SetCustomName(networkName string, id node.NodeId, name string) error {
	net, err := b.Network(networkName)
	if err != nil {
		return err
	}
	return net.SetCustomName(id, name)
}

// EvaluateNode implements the evaluate_node command: it runs the
// evaluator for id within networkName and returns its NetworkResult.
func (b *Bridge) EvaluateNode(networkName string, id node.NodeId) (eval.Result, error) {
	net, err := b.Network(networkName)
	if err != nil {
		return eval.Result{}, err
	}
	b.mu.RLock()
	ev := b.eval
	b.mu.RUnlock()
	return ev.Evaluate(net, id)
}

// RefreshRenderer implements the refresh_renderer command. The renderer
// itself lives entirely on the host side (out of scope per §1's
// Non-goals), so this only clears the evaluator's memoisation when force
// is set and logs the request for diagnostics.
func (b *Bridge) RefreshRenderer(networkName string, force bool) error {
	if _, err := b.Network(networkName); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if force {
		b.eval.ClearMemo()
	}
	b.logger.Printf("refresh_renderer network=%s force=%t", networkName, force)
	return nil
}
