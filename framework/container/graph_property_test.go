package container

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// randomAcyclicRegistry builds a registry of n declarations where edges only
// point toward lower indexes, so the graph is acyclic by construction. The
// returned counters record factory invocations per declaration ID.
func randomAcyclicRegistry(t *rapid.T, n int) (*Registry, map[string]*atomic.Int32) {
	r := NewRegistry()
	counters := make(map[string]*atomic.Int32, n)

	for i := 0; i < n; i++ {
		id := "node-" + strconv.Itoa(i)
		var deps []Contract
		if i > 0 {
			targets := rapid.SliceOfNDistinct(rapid.IntRange(0, i-1), 0, i, rapid.ID).
				Draw(t, "deps-"+strconv.Itoa(i))
			for _, j := range targets {
				deps = append(deps, Contract("svc."+strconv.Itoa(j)))
			}
		}
		lifetime := Singleton
		if rapid.Bool().Draw(t, "transient-"+strconv.Itoa(i)) {
			lifetime = Transient
		}

		count := &atomic.Int32{}
		counters[id] = count
		err := r.Register(Declaration{
			ID:           id,
			Provides:     Contract("svc." + strconv.Itoa(i)),
			Dependencies: deps,
			Lifetime:     lifetime,
			Factory: func(Deps) (any, error) {
				count.Add(1)
				return id, nil
			},
		})
		require.NoError(t, err)
	}
	return r, counters
}

// TestBuildGraph_TopoOrderProperty checks, over random acyclic graphs, that
// the computed order is a permutation of the nodes with every dependency
// placed before its dependent.
func TestBuildGraph_TopoOrderProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		r, _ := randomAcyclicRegistry(t, n)

		g, err := buildGraph(r, Production)
		require.NoError(t, err)
		require.Len(t, g.order, n)

		pos := make(map[int]int, n)
		for p, idx := range g.order {
			_, dup := pos[idx]
			require.False(t, dup, "order repeats node %d", idx)
			pos[idx] = p
		}
		for from, targets := range g.edges {
			for _, to := range targets {
				require.Less(t, pos[to], pos[from],
					"dependency %s must precede %s", g.nodes[to].ID, g.nodes[from].ID)
			}
		}
	})
}

// TestRuntime_SingletonOnceProperty checks, over random graphs and random
// concurrent resolution patterns, that each singleton factory runs exactly
// once no matter how many dependents reach it.
func TestRuntime_SingletonOnceProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		r, counters := randomAcyclicRegistry(t, n)

		g, err := buildGraph(r, Production)
		require.NoError(t, err)
		rt := newRuntime(g)

		// Resolve every node, repeatedly and concurrently.
		repeats := rapid.IntRange(1, 3).Draw(t, "repeats")
		var wg sync.WaitGroup
		for i := 0; i < repeats; i++ {
			for idx := range g.nodes {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					if _, err := rt.instance(idx); err != nil {
						panic(err)
					}
				}(idx)
			}
		}
		wg.Wait()

		for _, d := range g.nodes {
			got := int(counters[d.ID].Load())
			if d.Lifetime == Singleton {
				require.Equal(t, 1, got, "singleton %s", d.ID)
			} else {
				require.GreaterOrEqual(t, got, repeats, "transient %s", d.ID)
			}
		}
	})
}
