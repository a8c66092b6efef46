package container

import (
	"fmt"
	"reflect"
)

// ── Contracts ────────────────────────────────────────────────────────────────

// Contract identifies an abstract capability (a "port") that one or more
// declarations can satisfy. Services usually provide their own contract;
// adapters provide a port contract shared with their siblings.
type Contract string

func (c Contract) String() string { return string(c) }

// ContractOf derives a package-qualified Contract from an interface pointer,
// keeping contract keys stable and typo-free:
//
//	var MailerPort = container.ContractOf((*Mailer)(nil))  // "app/ports.Mailer"
func ContractOf(iface any) Contract {
	t := reflect.TypeOf(iface)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return Contract(t.PkgPath() + "." + t.Name())
}

// ── Lifetime & Kind ──────────────────────────────────────────────────────────

// Lifetime is the construction policy for a declaration.
type Lifetime string

const (
	// Singleton constructs at most one instance per container, cached and
	// reused by every dependent.
	Singleton Lifetime = "singleton"

	// Transient constructs a fresh instance on every resolution that
	// reaches the declaration; dependents never share one.
	Transient Lifetime = "transient"
)

func (l Lifetime) String() string { return string(l) }

// Kind classifies a declaration for scan reporting.
type Kind string

const (
	KindService Kind = "service"
	KindAdapter Kind = "adapter"
)

// ── Factories ────────────────────────────────────────────────────────────────

// Deps hands a factory the already-constructed instances of its declared
// dependencies. Only contracts listed in Declaration.Dependencies are
// present; asking for anything else panics, since it means the declaration
// and the factory disagree about the wiring.
type Deps interface {
	// Get returns the resolved instance for a declared dependency.
	Get(contract Contract) any
}

// Factory builds one instance from resolved dependencies. A non-nil error
// aborts the resolution and surfaces as a ConstructionError.
type Factory func(deps Deps) (any, error)

// As resolves a dependency from the bag and type-asserts it.
//
//	clock := container.As[Clock](deps, ClockPort)
func As[T any](deps Deps, contract Contract) T {
	v, ok := deps.Get(contract).(T)
	if !ok {
		panic(fmt.Sprintf("container: dependency %q is %T, not %T",
			contract, deps.Get(contract), *new(T)))
	}
	return v
}

// depSet is the Deps implementation handed to factories.
type depSet struct {
	id        string
	instances map[Contract]any
}

func (d depSet) Get(contract Contract) any {
	v, ok := d.instances[contract]
	if !ok {
		panic(fmt.Sprintf("container: %q asked for undeclared dependency %q", d.id, contract))
	}
	return v
}

// ── Declaration ──────────────────────────────────────────────────────────────

// Declaration describes one concrete service or adapter. Declarations are
// created during scanning and never mutated afterwards; the Registry owns
// them exclusively.
type Declaration struct {
	// ID is unique within the registry.
	ID string

	// Provides is the contract this declaration satisfies.
	Provides Contract

	// Dependencies lists the contracts required to construct the instance,
	// in the order the factory expects them. Duplicates are rejected.
	Dependencies []Contract

	// Profiles under which this declaration is eligible. Empty defaults to
	// the wildcard, matching every profile.
	Profiles []Profile

	// Lifetime defaults to Singleton.
	Lifetime Lifetime

	// Kind defaults to KindService.
	Kind Kind

	// Factory constructs the instance. Required.
	Factory Factory
}

// normalize fills defaults and lowercases profiles. Called once, before the
// declaration enters the registry.
func (d *Declaration) normalize() {
	if len(d.Profiles) == 0 {
		d.Profiles = []Profile{All}
	}
	for i, p := range d.Profiles {
		d.Profiles[i] = NewProfile(string(p))
	}
	if d.Lifetime == "" {
		d.Lifetime = Singleton
	}
	if d.Kind == "" {
		d.Kind = KindService
	}
}

// validate rejects malformed declarations before registration.
func (d *Declaration) validate() error {
	if d.ID == "" {
		return InvalidDeclarationError{ID: d.ID, Reason: "empty id"}
	}
	if d.Provides == "" {
		return InvalidDeclarationError{ID: d.ID, Reason: "empty provides contract"}
	}
	if d.Factory == nil {
		return InvalidDeclarationError{ID: d.ID, Reason: "nil factory"}
	}
	if d.Lifetime != Singleton && d.Lifetime != Transient {
		return InvalidDeclarationError{ID: d.ID, Reason: "unknown lifetime " + string(d.Lifetime)}
	}
	seen := make(map[Contract]struct{}, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		if dep == "" {
			return InvalidDeclarationError{ID: d.ID, Reason: "empty dependency contract"}
		}
		if _, dup := seen[dep]; dup {
			return InvalidDeclarationError{ID: d.ID, Reason: "duplicate dependency " + string(dep)}
		}
		seen[dep] = struct{}{}
	}
	return nil
}

// eligibleUnder reports whether the declaration can serve the given profile,
// and whether the match is exact rather than via the wildcard.
func (d *Declaration) eligibleUnder(profile Profile) (eligible, exact bool) {
	for _, p := range d.Profiles {
		if p == profile {
			return true, true
		}
		if p.IsWildcard() {
			eligible = true
		}
	}
	return eligible, false
}
