package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomcore/atomcore/node"
)

// SerializeNetwork renders net in the §4.8 text grammar: nodes in
// topological order, each as "name = type { field: value, ... }",
// followed by "output name" if a return node is set. It fails with
// ErrCycle if net is not a DAG.
func SerializeNetwork(net *node.NodeNetwork) (string, error) {
	order, err := topoOrder(net)
	if err != nil {
		return "", err
	}
	names, err := assignNames(net, order)
	if err != nil {
		return "", err
	}

	displayed := map[node.NodeId]bool{}
	for _, id := range net.DisplayedNodes() {
		displayed[id] = true
	}

	var b strings.Builder
	for _, id := range order {
		n, ok := net.Node(id)
		if !ok {
			continue
		}
		nt, ok := net.Registry().Lookup(n.NodeTypeName)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownNodeType, n.NodeTypeName)
		}
		props := propertiesForType(n.NodeTypeName)
		propByParam := make(map[int]property, len(props))
		for _, p := range props {
			if p.paramIndex >= 0 {
				propByParam[p.paramIndex] = p
			}
		}

		var fields []string
		for i, param := range nt.Parameters {
			arg := n.Arguments[i]
			if param.Multi {
				ids := arg.NodeIDs()
				if len(ids) == 0 {
					continue
				}
				sort.Slice(ids, func(a, c int) bool { return ids[a] < ids[c] })
				parts := make([]string, len(ids))
				for j, srcID := range ids {
					parts[j] = names[srcID]
				}
				fields = append(fields, fmt.Sprintf("%s: [%s]", param.Name, strings.Join(parts, ", ")))
				continue
			}
			if srcID, pin, ok := arg.Single(); ok {
				if pin == node.FunctionPin {
					fields = append(fields, fmt.Sprintf("%s: @%s", param.Name, names[srcID]))
				} else {
					fields = append(fields, fmt.Sprintf("%s: %s", param.Name, names[srcID]))
				}
				continue
			}
			if p, ok := propByParam[i]; ok && n.Data != nil {
				if text, ok2 := p.encode(n.Data); ok2 {
					fields = append(fields, fmt.Sprintf("%s: %s", p.name, text))
				}
			}
		}
		for _, p := range props {
			if p.paramIndex == -1 && n.Data != nil {
				if text, ok := p.encode(n.Data); ok {
					fields = append(fields, fmt.Sprintf("%s: %s", p.name, text))
				}
			}
		}
		if displayed[id] {
			fields = append(fields, "visible: true")
		}
		fmt.Fprintf(&b, "%s = %s { %s }\n", names[id], n.NodeTypeName, strings.Join(fields, ", "))
	}

	if returnID, ok := net.ReturnNode(); ok {
		fmt.Fprintf(&b, "output %s\n", names[returnID])
	}
	return b.String(), nil
}

// topoOrder returns net's node ids in dependency-before-use order,
// breaking ties by ascending id for determinism. Returns ErrCycle if the
// wiring is not acyclic.
func topoOrder(net *node.NodeNetwork) ([]node.NodeId, error) {
	ids := net.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[node.NodeId]int, len(ids))
	order := make([]node.NodeId, 0, len(ids))

	var visit func(id node.NodeId) error
	visit = func(id node.NodeId) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return ErrCycle
		}
		state[id] = visiting
		n, ok := net.Node(id)
		if ok {
			for _, arg := range n.Arguments {
				deps := arg.NodeIDs()
				sort.Slice(deps, func(a, c int) bool { return deps[a] < deps[c] })
				for _, dep := range deps {
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}
		state[id] = done
		order = append(order, id)
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// assignNames names every node by its custom name (if set) or a
// per-type "<type><N>" counter, skipping candidates that collide with a
// reserved custom name.
func assignNames(net *node.NodeNetwork, order []node.NodeId) (map[node.NodeId]string, error) {
	names := make(map[node.NodeId]string, len(order))
	used := make(map[string]bool, len(order))

	for _, id := range order {
		n, ok := net.Node(id)
		if !ok || n.CustomName == nil {
			continue
		}
		if used[*n.CustomName] {
			return nil, fmt.Errorf("%w: %s", ErrNameCollision, *n.CustomName)
		}
		used[*n.CustomName] = true
	}

	counters := make(map[string]int)
	for _, id := range order {
		n, ok := net.Node(id)
		if !ok {
			continue
		}
		if n.CustomName != nil {
			names[id] = *n.CustomName
			continue
		}
		var candidate string
		for {
			counters[n.NodeTypeName]++
			candidate = fmt.Sprintf("%s%d", n.NodeTypeName, counters[n.NodeTypeName])
			if !used[candidate] {
				break
			}
		}
		used[candidate] = true
		names[id] = candidate
	}
	return names, nil
}
