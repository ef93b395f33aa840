package bridge

import (
	"sort"

	"github.com/atomcore/atomcore/node"
)

// InputPinView describes one declared parameter of a node's type for
// rendering in the network editor.
type InputPinView struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Multi    bool   `json:"multi"`
}

// NodeView is a renderer-facing snapshot of one node: its type, canvas
// position, declared input pins, output type, and display state.
type NodeView struct {
	ID           node.NodeId    `json:"id"`
	NodeTypeName string         `json:"node_type_name"`
	PositionX    float64        `json:"position_x"`
	PositionY    float64        `json:"position_y"`
	CustomName   *string        `json:"custom_name,omitempty"`
	InputPins    []InputPinView `json:"input_pins"`
	OutputType   string         `json:"output_type"`
	Displayed    bool           `json:"displayed"`
}

// WireView is one edge in the network: a wire from a source node's
// output to a destination node's parameter index, at the given pin
// (node.FunctionPin for a function-pin wire, 0 otherwise).
type WireView struct {
	SourceNodeID   node.NodeId `json:"source_node_id"`
	SourcePin      int         `json:"source_pin"`
	DestNodeID     node.NodeId `json:"dest_node_id"`
	DestParamIndex int         `json:"dest_param_index"`
}

// NetworkView is the get_network_view command's output: every node and
// wire in the network, keyed and ordered for deterministic rendering.
type NetworkView struct {
	Name  string     `json:"name"`
	Nodes []NodeView `json:"nodes"`
	Wires []WireView `json:"wires"`
}

// GetNetworkView implements the get_network_view command.
func (b *Bridge) GetNetworkView(networkName string) (NetworkView, error) {
	net, err := b.Network(networkName)
	if err != nil {
		return NetworkView{}, err
	}

	ids := net.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	displayed := map[node.NodeId]bool{}
	for _, id := range net.DisplayedNodes() {
		displayed[id] = true
	}

	view := NetworkView{Name: networkName}
	for _, id := range ids {
		n, ok := net.Node(id)
		if !ok {
			continue
		}
		nt, ok := net.Registry().Lookup(n.NodeTypeName)
		if !ok {
			continue
		}
		pins := make([]InputPinView, len(nt.Parameters))
		for i, p := range nt.Parameters {
			pins[i] = InputPinView{Name: p.Name, DataType: p.Type.String(), Multi: p.Multi}
		}
		view.Nodes = append(view.Nodes, NodeView{
			ID:           id,
			NodeTypeName: n.NodeTypeName,
			PositionX:    n.PositionX,
			PositionY:    n.PositionY,
			CustomName:   n.CustomName,
			InputPins:    pins,
			OutputType:   nt.OutputType.String(),
			Displayed:    displayed[id],
		})

		for paramIndex, arg := range n.Arguments {
			srcIDs := arg.NodeIDs()
			sort.Slice(srcIDs, func(a, c int) bool { return srcIDs[a] < srcIDs[c] })
			for _, srcID := range srcIDs {
				pin := arg.OutputPins[srcID]
				view.Wires = append(view.Wires, WireView{
					SourceNodeID:   srcID,
					SourcePin:      pin,
					DestNodeID:     id,
					DestParamIndex: paramIndex,
				})
			}
		}
	}
	return view, nil
}
