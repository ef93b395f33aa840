package layout

import "github.com/atomcore/atomcore/node"

// sugiyamaSweeps is the number of alternating forward/backward
// barycentre passes the Sugiyama-style layout performs before
// converting rows to coordinates. More sweeps settle crossings further
// but each pass costs the same as the topological-grid layout's single
// pair.
const sugiyamaSweeps = 4

// SugiyamaLayout computes the same longest-path column assignment as
// TopologicalGridLayout but alternates several forward and backward
// barycentre sweeps instead of just one of each, trading extra passes
// for fewer residual wire crossings on deeply layered networks.
func SugiyamaLayout(net *node.NodeNetwork) (map[node.NodeId]Position, error) {
	order, err := topoOrder(net)
	if err != nil {
		return nil, err
	}
	depth := computeDepths(net, order)
	columns := groupByDepth(order, depth)

	for sweep := 0; sweep < sugiyamaSweeps; sweep++ {
		forward := sweep%2 == 0
		barycentrePass(net, columns, forward)
	}
	return assignGridPositions(columns), nil
}
