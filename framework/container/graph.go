package container

// graph is the validated dependency graph for one profile: nodes are the
// selected declarations, edges point from a dependent to each of its
// resolved dependencies. The index-based adjacency keeps ownership simple
// and lets concurrent resolutions traverse it lock-free once built.
type graph struct {
	profile Profile
	nodes   []*Declaration
	edges   [][]int          // node -> dependency node indexes, declaration order
	index   map[Contract]int // provided contract -> node index
	order   []int            // topological, dependencies first
}

// buildGraph selects a binding for every contract eligible under the
// profile, walks the transitive dependency closure, and verifies the result
// is acyclic. Each (contract, profile) pair is bound at most once, so a
// selection error surfaces exactly once per offending contract. Any missing
// or ambiguous binding aborts the whole build; no partial graph escapes.
func buildGraph(r *Registry, profile Profile) (*graph, error) {
	g := &graph{profile: profile, index: make(map[Contract]int)}

	add := func(contract Contract) (int, error) {
		if i, ok := g.index[contract]; ok {
			return i, nil
		}
		d, err := bind(r, contract, profile)
		if err != nil {
			return 0, err
		}
		i := len(g.nodes)
		g.index[contract] = i
		g.nodes = append(g.nodes, d)
		g.edges = append(g.edges, nil)
		return i, nil
	}

	// Whole-graph validation: seed every contract the profile can serve,
	// not just the ones a caller happens to request first.
	for _, contract := range r.Contracts() {
		if len(r.Lookup(contract, profile)) == 0 {
			// Nothing eligible and nothing depending on it yet: not part
			// of this profile's graph. Resolving it later still fails
			// with MissingBindingError.
			continue
		}
		if _, err := add(contract); err != nil {
			return nil, err
		}
	}

	// nodes grows while we wire edges; the index loop picks up appended
	// dependency nodes.
	for i := 0; i < len(g.nodes); i++ {
		for _, dep := range g.nodes[i].Dependencies {
			j, err := add(dep)
			if err != nil {
				return nil, err
			}
			g.edges[i] = append(g.edges[i], j)
		}
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	g.order = g.topoSort()
	return g, nil
}

// detectCycles runs a depth-first traversal distinguishing "on the current
// stack" from "fully visited". An edge into an on-stack node yields the
// cycle by unwinding the stack from that node, producing an actionable
// [A B C A] path. No factory anywhere in the graph runs while any subgraph
// holds a cycle, because this check precedes all construction.
func (g *graph) detectCycles() error {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int8, len(g.nodes))
	var stack []int

	var visit func(n int) []string
	visit = func(n int) []string {
		state[n] = onStack
		stack = append(stack, n)
		for _, m := range g.edges[n] {
			switch state[m] {
			case unvisited:
				if cycle := visit(m); cycle != nil {
					return cycle
				}
			case onStack:
				start := 0
				for i, k := range stack {
					if k == m {
						start = i
						break
					}
				}
				var cycle []string
				for _, k := range stack[start:] {
					cycle = append(cycle, g.nodes[k].ID)
				}
				return append(cycle, g.nodes[m].ID)
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return nil
	}

	for n := range g.nodes {
		if state[n] == unvisited {
			if cycle := visit(n); cycle != nil {
				return CircularDependencyError{Cycle: cycle}
			}
		}
	}
	return nil
}

// topoSort returns node indexes with every node after all nodes it depends
// on. Only called on an acyclic graph; detectCycles guarantees one exists.
func (g *graph) topoSort() []int {
	visited := make([]bool, len(g.nodes))
	order := make([]int, 0, len(g.nodes))

	var visit func(n int)
	visit = func(n int) {
		visited[n] = true
		for _, m := range g.edges[n] {
			if !visited[m] {
				visit(m)
			}
		}
		order = append(order, n)
	}

	for n := range g.nodes {
		if !visited[n] {
			visit(n)
		}
	}
	return order
}
