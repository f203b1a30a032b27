package graph

import "github.com/reisraff/angular-filesort/internal/output"

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

// edge is one dependency of a record hosted by a node.
type edge struct {
	from string
	to   string
}

// frame is one node on the explicit DFS stack.
type frame struct {
	node  *Node
	edges []edge
	next  int

	// via is the record name whose dependency pushed the frame above this one.
	via string
}

// Sequence returns the file nodes in dependency-first order.
//
// It is a depth-first post-order walk keyed by file path, driven by record
// discovery order: a redeclared name is visited in its first slot through the
// file of its latest declaration. Files whose records were all superseded are
// walked afterwards in path order. A dependency on the record itself or on
// another record hosted by the same file is ignored. Reaching a file that is
// still on the walk path is a cycle and aborts with *CyclicDependencyError;
// no partial order is returned.
func (g *Graph) Sequence() ([]*Node, error) {
	state := make(map[string]color, len(g.nodes))
	order := make([]*Node, 0, len(g.nodes))

	for _, root := range g.roots() {
		if state[root.Path] != unvisited {
			continue
		}

		state[root.Path] = inProgress
		stack := []*frame{{node: root, edges: nodeEdges(root)}}

		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if top.next == len(top.edges) {
				state[top.node.Path] = done
				order = append(order, top.node)
				stack = stack[:len(stack)-1]
				continue
			}

			e := top.edges[top.next]
			top.next++

			if e.to == e.from {
				continue
			}
			dep, ok := g.byName[e.to]
			if !ok || dep.Path == top.node.Path {
				continue
			}

			switch state[dep.Path] {
			case done:
				continue
			case inProgress:
				return nil, cycleError(stack, e, dep.Path)
			}

			top.via = e.from
			state[dep.Path] = inProgress
			next, _ := g.Node(dep.Path)
			stack = append(stack, &frame{node: next, edges: nodeEdges(next)})
		}
	}

	output.Debug("sequenced files", "files", len(order))
	return order, nil
}

// roots returns the walk roots: the file of every current record in name
// discovery order, then the remaining files in path discovery order.
func (g *Graph) roots() []*Node {
	roots := make([]*Node, 0, len(g.nodes))
	seen := make(map[string]bool, len(g.nodes))
	for _, r := range g.Records() {
		if n, ok := g.Node(r.Path); ok && !seen[n.Path] {
			seen[n.Path] = true
			roots = append(roots, n)
		}
	}
	for _, n := range g.nodes {
		if !seen[n.Path] {
			seen[n.Path] = true
			roots = append(roots, n)
		}
	}
	return roots
}

func nodeEdges(n *Node) []edge {
	var edges []edge
	for _, r := range n.Records {
		for _, d := range r.Dependencies {
			edges = append(edges, edge{from: r.Name, to: d})
		}
	}
	return edges
}

func cycleError(stack []*frame, last edge, reentered string) *CyclicDependencyError {
	start := 0
	for i, f := range stack {
		if f.node.Path == reentered {
			start = i
			break
		}
	}

	err := &CyclicDependencyError{}
	for i := start; i < len(stack)-1; i++ {
		err.Cycle = append(err.Cycle, stack[i].via)
		err.Paths = append(err.Paths, stack[i].node.Path)
	}
	top := stack[len(stack)-1]
	err.Cycle = append(err.Cycle, last.from, last.to)
	err.Paths = append(err.Paths, top.node.Path, reentered)
	return err
}
