package layout

import (
	"sort"

	"github.com/atomcore/atomcore/node"
)

// ColumnWidth and RowGap set the spacing used by both layout algorithms.
const (
	ColumnWidth = 210.0
	RowGap      = 30.0
)

// Position is a node's computed canvas coordinate.
type Position struct {
	X, Y float64
}

// TopologicalGridLayout assigns each node a column by longest-path depth
// and a row within its column, then runs one forward and one backward
// barycentre sweep to reduce edge crossings before rows are converted
// to Y coordinates.
func TopologicalGridLayout(net *node.NodeNetwork) (map[node.NodeId]Position, error) {
	order, err := topoOrder(net)
	if err != nil {
		return nil, err
	}
	depth := computeDepths(net, order)
	columns := groupByDepth(order, depth)
	barycentrePass(net, columns, true)
	barycentrePass(net, columns, false)
	return assignGridPositions(columns), nil
}

// computeDepths assigns every node the longest path length from any
// node with no dependencies, so a node always sits to the right of
// everything it reads from.
func computeDepths(net *node.NodeNetwork, order []node.NodeId) map[node.NodeId]int {
	depth := make(map[node.NodeId]int, len(order))
	for _, id := range order {
		best := 0
		n, ok := net.Node(id)
		if ok {
			for _, arg := range n.Arguments {
				for _, dep := range arg.NodeIDs() {
					if d := depth[dep] + 1; d > best {
						best = d
					}
				}
			}
		}
		depth[id] = best
	}
	return depth
}

// groupByDepth buckets node ids into columns indexed by depth, with each
// column initially ordered by ascending node id.
func groupByDepth(order []node.NodeId, depth map[node.NodeId]int) [][]node.NodeId {
	maxDepth := 0
	for _, id := range order {
		if depth[id] > maxDepth {
			maxDepth = depth[id]
		}
	}
	columns := make([][]node.NodeId, maxDepth+1)
	for _, id := range order {
		d := depth[id]
		columns[d] = append(columns[d], id)
	}
	for _, col := range columns {
		sort.Slice(col, func(i, j int) bool { return col[i] < col[j] })
	}
	return columns
}

// barycentrePass reorders every column by the mean row position of its
// neighbours in the adjacent already-fixed column, reducing wire
// crossings. forward sweeps left to right using each node's upstream
// (argument) neighbours; a backward sweep goes right to left using
// downstream (dependent) neighbours.
func barycentrePass(net *node.NodeNetwork, columns [][]node.NodeId, forward bool) {
	rowOf := make(map[node.NodeId]int)
	for _, col := range columns {
		for i, id := range col {
			rowOf[id] = i
		}
	}

	dependents := buildDependents(net)

	order := make([]int, len(columns))
	for i := range order {
		order[i] = i
	}
	if !forward {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	for _, ci := range order {
		col := columns[ci]
		type scored struct {
			id    node.NodeId
			key   float64
			orig  int
		}
		items := make([]scored, len(col))
		for i, id := range col {
			var neighbours []node.NodeId
			if forward {
				if n, ok := net.Node(id); ok {
					for _, arg := range n.Arguments {
						neighbours = append(neighbours, arg.NodeIDs()...)
					}
				}
			} else {
				neighbours = dependents[id]
			}
			key := float64(rowOf[id])
			if len(neighbours) > 0 {
				sum := 0.0
				for _, nb := range neighbours {
					sum += float64(rowOf[nb])
				}
				key = sum / float64(len(neighbours))
			}
			items[i] = scored{id: id, key: key, orig: i}
		}
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].key != items[b].key {
				return items[a].key < items[b].key
			}
			return items[a].orig < items[b].orig
		})
		for i, it := range items {
			col[i] = it.id
			rowOf[it.id] = i
		}
		columns[ci] = col
	}
}

// buildDependents inverts the argument graph: for each node, the set of
// nodes that read from it.
func buildDependents(net *node.NodeNetwork) map[node.NodeId][]node.NodeId {
	dependents := make(map[node.NodeId][]node.NodeId)
	for _, id := range net.NodeIDs() {
		n, ok := net.Node(id)
		if !ok {
			continue
		}
		for _, arg := range n.Arguments {
			for _, dep := range arg.NodeIDs() {
				dependents[dep] = append(dependents[dep], id)
			}
		}
	}
	return dependents
}

// assignGridPositions converts column/row indices to canvas coordinates,
// spacing columns by ColumnWidth and rows by RowGap, and vertically
// centring columns shorter than the tallest one.
func assignGridPositions(columns [][]node.NodeId) map[node.NodeId]Position {
	tallest := 0
	for _, col := range columns {
		if len(col) > tallest {
			tallest = len(col)
		}
	}
	totalHeight := float64(tallest-1) * RowGap

	positions := make(map[node.NodeId]Position)
	for ci, col := range columns {
		colHeight := float64(len(col)-1) * RowGap
		yOffset := (totalHeight - colHeight) / 2
		for ri, id := range col {
			positions[id] = Position{
				X: float64(ci) * ColumnWidth,
				Y: yOffset + float64(ri)*RowGap,
			}
		}
	}
	return positions
}
