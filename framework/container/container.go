package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ── State machine ────────────────────────────────────────────────────────────

// State describes where a container sits in its lifecycle for one profile.
//
//	Scanning ──► Validating ──► Ready
//	                  │
//	                  └────────► Failed   (terminal for that profile)
//
// The registry is mutable only in Scanning. The first Finalize or Resolve
// freezes it; from then on each profile validates independently without
// re-scanning. Teardown moves every profile to TornDown.
type State string

const (
	StateScanning   State = "scanning"
	StateValidating State = "validating"
	StateReady      State = "ready"
	StateFailed     State = "failed"
	StateTornDown   State = "torn down"
)

// ── Options ──────────────────────────────────────────────────────────────────

// Option configures a Container at creation.
type Option func(*Container)

// WithEagerSingletons makes Finalize construct every singleton up front
// instead of lazily on first resolution. Factories still never run before
// the whole graph has validated.
func WithEagerSingletons() Option {
	return func(c *Container) { c.eager = true }
}

// ── Container ────────────────────────────────────────────────────────────────

// Container owns the registry and the per-profile resolution state for one
// process. Scanning is single-threaded; after validation, concurrent
// Resolve calls share the immutable graph and synchronize only around
// singleton cache insertion.
type Container struct {
	mu       sync.RWMutex
	registry *Registry
	runtimes map[Profile]*runtime
	eager    bool
	tornDown bool

	// inflight lets Teardown wait out constructions still in progress, so
	// a dependency is never disposed under a dependent being built.
	inflight sync.RWMutex
}

// New creates an empty container in the Scanning state.
func New(opts ...Option) *Container {
	c := &Container{
		registry: NewRegistry(),
		runtimes: make(map[Profile]*runtime),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a single declaration. Only valid while Scanning.
func (c *Container) Register(d Declaration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return ErrTornDown
	}
	return c.registry.Register(d)
}

// Len returns the number of registered declarations, for scan reporting.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Len()
}

// State reports the lifecycle state for a profile.
func (c *Container) State(profile Profile) State {
	profile = NewProfile(string(profile))
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tornDown {
		return StateTornDown
	}
	if !c.registry.Frozen() {
		return StateScanning
	}
	rt, ok := c.runtimes[profile]
	if !ok {
		return StateValidating
	}
	if rt.err != nil {
		return StateFailed
	}
	return StateReady
}

// Finalize freezes the registry and validates the whole graph for the
// profile: bindings selected, dependencies wired, cycles rejected. A
// validation failure is recorded and terminal for that profile; other
// profiles validate independently. Finalize is idempotent and implied by
// the first Resolve.
func (c *Container) Finalize(profile Profile) error {
	_, err := c.runtimeFor(NewProfile(string(profile)))
	return err
}

// Resolve returns a live instance for the contract under the profile,
// validating the graph first if this is the profile's first resolution.
func (c *Container) Resolve(profile Profile, contract Contract) (any, error) {
	profile = NewProfile(string(profile))
	rt, err := c.runtimeFor(profile)
	if err != nil {
		return nil, err
	}
	idx, ok := rt.graph.index[contract]
	if !ok {
		return nil, MissingBindingError{Contract: contract, Profile: profile}
	}

	c.inflight.RLock()
	defer c.inflight.RUnlock()
	if c.isTornDown() {
		return nil, ErrTornDown
	}
	return rt.instance(idx)
}

// Start finalizes the profile, constructs every singleton in dependency
// order, and runs Initialize hooks dependencies first. If a hook fails, the
// hooks already run are disposed in reverse order before Start returns the
// error. Start is idempotent per profile: hooks that initialized once are
// never re-run.
func (c *Container) Start(ctx context.Context, profile Profile) error {
	rt, err := c.runtimeFor(NewProfile(string(profile)))
	if err != nil {
		return err
	}
	c.inflight.RLock()
	defer c.inflight.RUnlock()
	if c.isTornDown() {
		return ErrTornDown
	}
	return rt.start(ctx)
}

// Teardown waits for in-flight constructions, disposes every cached
// singleton in reverse construction order across all validated profiles,
// and clears the instance caches. Terminal: the container cannot be reused.
func (c *Container) Teardown(ctx context.Context) error {
	c.inflight.Lock()
	defer c.inflight.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return nil
	}
	c.tornDown = true

	var errs []error
	for _, rt := range c.runtimes {
		if rt.err != nil {
			continue
		}
		if err := rt.teardown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.runtimes = make(map[Profile]*runtime)
	return errors.Join(errs...)
}

// ── internals ────────────────────────────────────────────────────────────────

// runtimeFor returns the validated runtime for a profile, building it at
// most once. The first call for any profile ends the Scanning phase.
func (c *Container) runtimeFor(profile Profile) (*runtime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return nil, ErrTornDown
	}
	c.registry.Freeze()

	if rt, ok := c.runtimes[profile]; ok {
		if rt.err != nil {
			return nil, rt.err
		}
		return rt, nil
	}

	g, err := buildGraph(c.registry, profile)
	if err != nil {
		c.runtimes[profile] = &runtime{err: err}
		return nil, err
	}
	rt := newRuntime(g)
	c.runtimes[profile] = rt

	if c.eager {
		if err := rt.constructAll(); err != nil {
			// Construction failures are not validation failures: cached
			// singletons stay cached, the profile stays Ready.
			return nil, err
		}
	}
	return rt, nil
}

func (c *Container) isTornDown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tornDown
}

// ── Generics helpers ─────────────────────────────────────────────────────────

// Get resolves a contract and type-asserts the instance.
//
//	mailer, err := container.Get[ports.Mailer](c, container.Test, ports.MailerContract)
func Get[T any](c *Container, profile Profile, contract Contract) (T, error) {
	var zero T
	raw, err := c.Resolve(profile, contract)
	if err != nil {
		return zero, err
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("container: %q resolved to %T, not %T", contract, raw, zero)
	}
	return typed, nil
}

// MustGet is Get for composition roots where a wiring failure should stop
// the process anyway.
func MustGet[T any](c *Container, profile Profile, contract Contract) T {
	v, err := Get[T](c, profile, contract)
	if err != nil {
		panic(err)
	}
	return v
}
