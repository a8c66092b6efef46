package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ── Lifecycle hooks ──────────────────────────────────────────────────────────

// Initializer is an opt-in hook on constructed singletons: Start calls it in
// dependency order after the instance and everything below it exist.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Disposer is an opt-in hook on cached singletons: Teardown calls it in
// reverse construction order.
type Disposer interface {
	Dispose(ctx context.Context) error
}

// ── Runtime ──────────────────────────────────────────────────────────────────

// singletonCell guards at-most-one construction per singleton declaration,
// even under concurrent first access. First write wins; every caller sees
// the same instance or the same error.
type singletonCell struct {
	once sync.Once
	inst any
	err  error
}

// runtime holds the resolution state for one (container, profile) pair:
// the validated graph, the singleton instance cache, and the construction
// bookkeeping needed for ordered teardown. The graph itself is immutable
// and shared; only the cache mutates after validation.
type runtime struct {
	graph *graph
	err   error // validation failure; terminal for this profile

	cells []*singletonCell // index-aligned with graph.nodes, nil for transients

	mu          sync.Mutex
	constructed []int // singleton node indexes in construction completion order
	initialized []int // nodes whose Initialize hook has run
}

func newRuntime(g *graph) *runtime {
	rt := &runtime{graph: g, cells: make([]*singletonCell, len(g.nodes))}
	for i, n := range g.nodes {
		if n.Lifetime == Singleton {
			rt.cells[i] = &singletonCell{}
		}
	}
	return rt
}

// instance returns a live instance for a node. Singletons are constructed
// at most once and cached; transients are constructed fresh for every
// dependent that reaches them.
func (rt *runtime) instance(idx int) (any, error) {
	n := rt.graph.nodes[idx]
	if n.Lifetime == Transient {
		return rt.construct(idx)
	}

	cell := rt.cells[idx]
	cell.once.Do(func() {
		cell.inst, cell.err = rt.construct(idx)
		if cell.err == nil {
			rt.mu.Lock()
			rt.constructed = append(rt.constructed, idx)
			rt.mu.Unlock()
		}
	})
	return cell.inst, cell.err
}

// construct builds one instance after materializing its dependencies. The
// recursion bottoms out because the graph is already proven acyclic, and it
// never runs a factory before everything the factory needs exists.
func (rt *runtime) construct(idx int) (any, error) {
	n := rt.graph.nodes[idx]
	instances := make(map[Contract]any, len(n.Dependencies))
	for k, depIdx := range rt.graph.edges[idx] {
		inst, err := rt.instance(depIdx)
		if err != nil {
			// Already a ConstructionError naming the declaration that
			// actually failed; construction is not rolled back.
			return nil, err
		}
		instances[n.Dependencies[k]] = inst
	}

	inst, err := n.Factory(depSet{id: n.ID, instances: instances})
	if err != nil {
		return nil, ConstructionError{ID: n.ID, Cause: err}
	}
	return inst, nil
}

// constructAll eagerly materializes every singleton in topological order.
func (rt *runtime) constructAll() error {
	for _, idx := range rt.graph.order {
		if rt.graph.nodes[idx].Lifetime != Singleton {
			continue
		}
		if _, err := rt.instance(idx); err != nil {
			return err
		}
	}
	return nil
}

// start constructs all singletons, then runs Initialize hooks dependencies
// first. Hooks that already initialized on an earlier start are skipped, so
// repeated starts on one profile never re-run a hook. If a hook fails, the
// ones newly run are disposed in reverse order before the error is returned.
func (rt *runtime) start(ctx context.Context) error {
	if err := rt.constructAll(); err != nil {
		return err
	}

	rt.mu.Lock()
	order := append([]int(nil), rt.constructed...)
	done := make(map[int]bool, len(rt.initialized))
	for _, idx := range rt.initialized {
		done[idx] = true
	}
	rt.mu.Unlock()

	var started []int
	for _, idx := range order {
		if done[idx] {
			continue
		}
		hook, ok := rt.cells[idx].inst.(Initializer)
		if !ok {
			continue
		}
		if err := hook.Initialize(ctx); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				if d, ok := rt.cells[started[i]].inst.(Disposer); ok {
					_ = d.Dispose(ctx)
				}
			}
			return fmt.Errorf("container: initializing %q: %w", rt.graph.nodes[idx].ID, err)
		}
		started = append(started, idx)
	}

	rt.mu.Lock()
	rt.initialized = append(rt.initialized, started...)
	rt.mu.Unlock()
	return nil
}

// teardown disposes cached singletons in reverse construction order and
// clears the cache. A failing Dispose does not stop the remaining ones;
// errors are joined and reported together.
func (rt *runtime) teardown(ctx context.Context) error {
	rt.mu.Lock()
	order := rt.constructed
	rt.constructed = nil
	rt.initialized = nil
	rt.mu.Unlock()

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		if d, ok := rt.cells[idx].inst.(Disposer); ok {
			if err := d.Dispose(ctx); err != nil {
				errs = append(errs, fmt.Errorf("container: disposing %q: %w", rt.graph.nodes[idx].ID, err))
			}
		}
	}
	return errors.Join(errs...)
}
