package container

import (
	"fmt"
	"time"
)

// ── Modules ──────────────────────────────────────────────────────────────────

// Module is the explicit registration step: something that enumerates the
// declarations it owns and feeds them to the registry. There is no ambient
// package scanning and no import side effects; a composition root lists its
// modules and hands them to Scan.
type Module interface {
	Register(r *Registry) error
}

// ModuleFunc adapts a plain function into a Module.
type ModuleFunc func(r *Registry) error

func (f ModuleFunc) Register(r *Registry) error { return f(r) }

// Declarations bundles literal declarations into a Module, for wiring that
// does not warrant its own type:
//
//	c.Scan(container.Declarations(clockDecl, mailerDecl))
func Declarations(decls ...Declaration) Module {
	return ModuleFunc(func(r *Registry) error {
		for _, d := range decls {
			if err := r.Register(d); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Scan ─────────────────────────────────────────────────────────────────────

// ScanStats summarizes one Scan call for startup reporting.
type ScanStats struct {
	ServicesRegistered int
	AdaptersRegistered int
	ModulesScanned     int
	Duration           time.Duration
	Warnings           []string
}

// Scan applies each module's registrations in order. Only valid while the
// container is still Scanning; the first registration error aborts the scan
// and is returned as-is. A module that registers nothing is recorded as a
// warning rather than an error.
func (c *Container) Scan(modules ...Module) (ScanStats, error) {
	started := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return ScanStats{}, ErrTornDown
	}
	if c.registry.Frozen() {
		return ScanStats{}, RegistryFrozenError{}
	}

	stats := ScanStats{ModulesScanned: len(modules)}
	services0, adapters0 := c.registry.services, c.registry.adapters

	for i, m := range modules {
		before := c.registry.Len()
		if err := m.Register(c.registry); err != nil {
			return ScanStats{}, err
		}
		if c.registry.Len() == before {
			stats.Warnings = append(stats.Warnings,
				fmt.Sprintf("module %d (%T) registered no declarations", i, m))
		}
	}

	stats.ServicesRegistered = c.registry.services - services0
	stats.AdaptersRegistered = c.registry.adapters - adapters0
	stats.Duration = time.Since(started)
	return stats, nil
}
