package container

// Registry maps each contract to the ordered set of declarations able to
// satisfy it. It is mutable only during the scan phase; Freeze flips it
// read-only before any structural validation begins, which removes the
// central registration/resolution race.
//
// Insertion order is preserved per contract and across contracts so that
// ambiguity reports and graph walks stay deterministic.
type Registry struct {
	byContract map[Contract][]*Declaration
	byID       map[string]*Declaration
	contracts  []Contract // insertion order of first appearance
	frozen     bool

	services int
	adapters int
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		byContract: make(map[Contract][]*Declaration),
		byID:       make(map[string]*Declaration),
	}
}

// Register adds a declaration under its Provides contract.
//
// Fails with InvalidDeclarationError for malformed declarations,
// DuplicateDeclarationError when the ID is already taken, and
// RegistryFrozenError once the scan phase has ended.
func (r *Registry) Register(d Declaration) error {
	if r.frozen {
		return RegistryFrozenError{ID: d.ID}
	}
	d.normalize()
	if err := d.validate(); err != nil {
		return err
	}
	if _, exists := r.byID[d.ID]; exists {
		return DuplicateDeclarationError{ID: d.ID}
	}

	decl := &d
	r.byID[d.ID] = decl
	if _, seen := r.byContract[d.Provides]; !seen {
		r.contracts = append(r.contracts, d.Provides)
	}
	r.byContract[d.Provides] = append(r.byContract[d.Provides], decl)

	switch d.Kind {
	case KindAdapter:
		r.adapters++
	default:
		r.services++
	}
	return nil
}

// Lookup returns the candidates for a contract that are eligible under the
// given profile (exact match or wildcard), in registration order.
func (r *Registry) Lookup(contract Contract, profile Profile) []*Declaration {
	var out []*Declaration
	for _, d := range r.byContract[contract] {
		if ok, _ := d.eligibleUnder(profile); ok {
			out = append(out, d)
		}
	}
	return out
}

// Freeze ends the scan phase. Idempotent; every Register afterwards fails.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether the scan phase has ended.
func (r *Registry) Frozen() bool { return r.frozen }

// Len returns the number of registered declarations, exposed for scan
// reporting.
func (r *Registry) Len() int { return len(r.byID) }

// Contracts returns every registered contract in first-appearance order.
func (r *Registry) Contracts() []Contract {
	out := make([]Contract, len(r.contracts))
	copy(out, r.contracts)
	return out
}
