package bridge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/atomcore/atomcore/layout"
	"github.com/atomcore/atomcore/node"
)

// cnndFile is a .cnnd library's on-disk shape: a flat map of network
// name to its §4.8 text-grammar body. Keeping libraries in the text
// grammar (rather than the design file's JSON) lets a library be
// authored and diffed by hand.
type cnndFile struct {
	Networks map[string]string `json:"networks"`
}

// importManager holds a staged library loaded from a .cnnd file between
// LoadLibrary and ImportNetworks/ClearLibrary, mirroring the host's
// load -> list -> import -> clear workflow.
type importManager struct {
	library     map[string]*node.NodeNetwork
	libraryPath string
}

func newImportManager() *importManager {
	return &importManager{}
}

// LoadLibrary reads a .cnnd file at path, parsing every network body
// against registry, and stages it for import.
func (b *Bridge) LoadLibrary(path string, registry *node.Registry) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file cnndFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDesignFile, err)
	}

	library := make(map[string]*node.NodeNetwork, len(file.Networks))
	for name, body := range file.Networks {
		net, err := layout.ParseNetwork(body, registry)
		if err != nil {
			return fmt.Errorf("bridge: parse library network %q: %w", name, err)
		}
		net.Name = name
		library[name] = net
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.importMgr.library = library
	b.importMgr.libraryPath = path
	return nil
}

// AvailableLibraryNetworks lists the currently staged library's network
// names, sorted.
func (b *Bridge) AvailableLibraryNetworks() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.importMgr.library))
	for name := range b.importMgr.library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PreviewImportNames returns the final names networkNames would receive
// after import with the given prefix, without staging or mutating
// anything.
func PreviewImportNames(networkNames []string, prefix string) []string {
	out := make([]string, len(networkNames))
	for i, name := range networkNames {
		out[i] = prefix + name
	}
	return out
}

// ComputeTransitiveDependencies returns every network in the staged
// library that names (directly or indirectly) depends on, including
// names itself, by treating any node whose NodeTypeName matches another
// staged network's name as a reference to that network.
func (b *Bridge) ComputeTransitiveDependencies(names []string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return computeTransitiveDependencies(b.importMgr.library, names)
}

func computeTransitiveDependencies(library map[string]*node.NodeNetwork, names []string) ([]string, error) {
	if library == nil {
		return nil, ErrNoLibraryLoaded
	}
	seen := make(map[string]bool)
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		if seen[name] {
			return nil
		}
		net, ok := library[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNetworkNotInLibrary, name)
		}
		seen[name] = true
		order = append(order, name)

		deps := make(map[string]bool)
		for _, id := range net.NodeIDs() {
			n, ok := net.Node(id)
			if !ok {
				continue
			}
			if _, isLibraryNetwork := library[n.NodeTypeName]; isLibraryNetwork {
				deps[n.NodeTypeName] = true
			}
		}
		depNames := make([]string, 0, len(deps))
		for d := range deps {
			depNames = append(depNames, d)
		}
		sort.Strings(depNames)
		for _, d := range depNames {
			if err := visit(d); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	sort.Strings(order)
	return order, nil
}

// ImportNetworks implements the import_networks command: it computes the
// transitive closure of names' dependencies, renames every imported
// network (and every internal reference to it) with prefix, and installs
// the results into the bridge's live network set, overwriting any
// existing network of the same final name. The staged library is cleared
// afterward.
func (b *Bridge) ImportNetworks(names []string, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	closure, err := computeTransitiveDependencies(b.importMgr.library, names)
	if err != nil {
		return nil, err
	}

	nameMapping := make(map[string]string, len(closure))
	for _, name := range closure {
		nameMapping[name] = prefix + name
	}

	imported := make([]string, 0, len(closure))
	for _, name := range closure {
		net := b.importMgr.library[name]
		finalName := nameMapping[name]
		net.Name = finalName

		for _, id := range net.NodeIDs() {
			n, ok := net.Node(id)
			if !ok {
				continue
			}
			if newName, renamed := nameMapping[n.NodeTypeName]; renamed {
				n.NodeTypeName = newName
			}
		}

		b.networks[finalName] = net
		imported = append(imported, finalName)
	}

	b.importMgr.library = nil
	b.importMgr.libraryPath = ""
	sort.Strings(imported)
	return imported, nil
}

// ClearLibrary discards the staged library without importing anything.
func (b *Bridge) ClearLibrary() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.importMgr.library = nil
	b.importMgr.libraryPath = ""
}

// IsLibraryLoaded reports whether a .cnnd file is currently staged.
func (b *Bridge) IsLibraryLoaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.importMgr.library != nil
}
