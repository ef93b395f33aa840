package bridge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/atomcore/atomcore/node"
)

// currentDesignVersion is the persisted design file's current schema
// version. SaveDesign always writes this; LoadDesign rejects files with
// version > currentDesignVersion and tolerates missing fields on older
// ones (structs below default their zero value, which encoding/json
// already leaves untouched for absent keys).
const currentDesignVersion = 1

// serializedArgument mirrors node.Argument for JSON: node.NodeId keys
// marshal fine as object keys since NodeId is an integer-kinded type.
type serializedArgument struct {
	OutputPins map[node.NodeId]int `json:"output_pins"`
}

// serializedNode mirrors node.Node, with its NodeData polymorphically
// encoded as a {data_type, data_json} pair per the persisted design
// file's documented shape.
type serializedNode struct {
	ID           node.NodeId          `json:"id"`
	NodeTypeName string               `json:"node_type_name"`
	PositionX    float64              `json:"position_x"`
	PositionY    float64              `json:"position_y"`
	CustomName   *string              `json:"custom_name,omitempty"`
	Arguments    []serializedArgument `json:"arguments"`
	DataType     string               `json:"data_type"`
	DataJSON     json.RawMessage      `json:"data_json,omitempty"`
}

// serializedNetwork mirrors node.NodeNetwork.
type serializedNetwork struct {
	Name             string           `json:"name"`
	Nodes            []serializedNode `json:"nodes"`
	ReturnNodeID     *node.NodeId     `json:"return_node_id,omitempty"`
	DisplayedNodeIDs []node.NodeId    `json:"displayed_node_ids,omitempty"`
}

// namedNetwork pairs a network name with its serialized body, matching
// the persisted file's "node_networks: [(name, SerializableNodeNetwork)]"
// shape as a JSON array rather than an object (so network names are not
// constrained to be valid JSON object keys-with-meaning beyond strings,
// and insertion order is preserved on round-trip).
type namedNetwork struct {
	Name    string            `json:"name"`
	Network serializedNetwork `json:"network"`
}

// DesignFile is the top-level persisted design document: a version tag,
// a stable document id surviving across saves, and every named network
// in the workspace.
type DesignFile struct {
	Version      int            `json:"version"`
	DocumentID   string         `json:"document_id"`
	NodeNetworks []namedNetwork `json:"node_networks"`
}

// unknownData is the NodeData placeholder substituted for a node whose
// persisted data_json does not unmarshal into the data type its node type
// expects. The persisted data_type tag is not consulted on load, and a
// node whose type name this build does not register fails the load.
type unknownData struct{}

func (unknownData) Clone() node.NodeData { return unknownData{} }

// SaveDesign implements the save_design command: it snapshots every
// registered network into a DesignFile and writes it as JSON to path.
func (b *Bridge) SaveDesign(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	df := DesignFile{Version: currentDesignVersion, DocumentID: uuid.NewString()}
	names := make([]string, 0, len(b.networks))
	for name := range b.networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sn, err := serializeNetwork(name, b.networks[name])
		if err != nil {
			return err
		}
		df.NodeNetworks = append(df.NodeNetworks, namedNetwork{Name: name, Network: sn})
	}

	out, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// LoadDesign implements the load_design command: it reads path, rejects
// files newer than this build's schema, and replaces every network the
// file names (existing networks of the same name are overwritten).
func (b *Bridge) LoadDesign(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var df DesignFile
	if err := json.Unmarshal(raw, &df); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDesignFile, err)
	}
	if df.Version > currentDesignVersion {
		return fmt.Errorf("%w: file version %d, build supports %d", ErrUnsupportedVersion, df.Version, currentDesignVersion)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, nn := range df.NodeNetworks {
		net, err := deserializeNetwork(b.registry, nn.Network)
		if err != nil {
			return err
		}
		b.networks[nn.Name] = net
	}
	return nil
}

func serializeNetwork(name string, net *node.NodeNetwork) (serializedNetwork, error) {
	ids := net.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sn := serializedNetwork{Name: name}
	for _, id := range ids {
		n, ok := net.Node(id)
		if !ok {
			continue
		}
		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return serializedNetwork{}, fmt.Errorf("bridge: marshal node %d data: %w", id, err)
		}
		args := make([]serializedArgument, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = serializedArgument{OutputPins: a.OutputPins}
		}
		sn.Nodes = append(sn.Nodes, serializedNode{
			ID:           id,
			NodeTypeName: n.NodeTypeName,
			PositionX:    n.PositionX,
			PositionY:    n.PositionY,
			CustomName:   n.CustomName,
			Arguments:    args,
			DataType:     n.NodeTypeName,
			DataJSON:     dataJSON,
		})
	}
	if retID, ok := net.ReturnNode(); ok {
		sn.ReturnNodeID = &retID
	}
	sn.DisplayedNodeIDs = net.DisplayedNodes()
	sort.Slice(sn.DisplayedNodeIDs, func(i, j int) bool { return sn.DisplayedNodeIDs[i] < sn.DisplayedNodeIDs[j] })
	return sn, nil
}

// deserializeNetwork rebuilds a NodeNetwork from its serialized form.
// AddNode is used per node (rather than a bulk constructor) so the
// network's own ErrUnknownNodeType/ErrCycle validation still runs. The
// fresh ids AddNode assigns are kept; idRemap maps each persisted id to
// its fresh id so the argument rewiring pass below can translate every
// stored reference.
func deserializeNetwork(registry *node.Registry, sn serializedNetwork) (*node.NodeNetwork, error) {
	net := node.NewNetwork(registry, sn.Name)
	idRemap := make(map[node.NodeId]node.NodeId, len(sn.Nodes))

	for _, sNode := range sn.Nodes {
		newID, err := net.AddNode(sNode.NodeTypeName, sNode.PositionX, sNode.PositionY)
		if err != nil {
			return nil, fmt.Errorf("bridge: load node %d: %w", sNode.ID, err)
		}
		idRemap[sNode.ID] = newID

		n, _ := net.Node(newID)
		if sNode.CustomName != nil {
			if err := net.SetCustomName(newID, *sNode.CustomName); err != nil {
				return nil, err
			}
		}
		if n.Data != nil && len(sNode.DataJSON) > 0 {
			if err := json.Unmarshal(sNode.DataJSON, n.Data); err != nil {
				n.Data = unknownData{}
			}
		}
	}

	for _, sNode := range sn.Nodes {
		dstID := idRemap[sNode.ID]
		for paramIndex, arg := range sNode.Arguments {
			srcIDs := make([]node.NodeId, 0, len(arg.OutputPins))
			for srcID := range arg.OutputPins {
				srcIDs = append(srcIDs, srcID)
			}
			sort.Slice(srcIDs, func(i, j int) bool { return srcIDs[i] < srcIDs[j] })
			for _, srcID := range srcIDs {
				newSrcID, ok := idRemap[srcID]
				if !ok {
					return nil, fmt.Errorf("%w: argument references unknown node %d", ErrInvalidDesignFile, srcID)
				}
				if err := net.Connect(newSrcID, arg.OutputPins[srcID], dstID, paramIndex); err != nil {
					return nil, err
				}
			}
		}
	}

	if sn.ReturnNodeID != nil {
		retID, ok := idRemap[*sn.ReturnNodeID]
		if !ok {
			return nil, fmt.Errorf("%w: return node references unknown node %d", ErrInvalidDesignFile, *sn.ReturnNodeID)
		}
		if err := net.SetReturnNode(retID); err != nil {
			return nil, err
		}
	}
	for _, id := range sn.DisplayedNodeIDs {
		newID, ok := idRemap[id]
		if !ok {
			continue
		}
		if err := net.SetDisplayed(newID, true); err != nil {
			return nil, err
		}
	}

	return net, nil
}
