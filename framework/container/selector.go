package container

// bind narrows a contract's candidate set to exactly one declaration for
// the given profile.
//
// Selection rule: a declaration naming the exact active profile outranks
// one eligible only via the wildcard; the wildcard is a fallback, not a
// competing match. If more than one candidate remains tied inside either
// rank, selection fails with AmbiguousBindingError listing exactly the tied
// IDs. Zero eligible candidates fail with MissingBindingError.
//
// bind is pure: repeated calls with the same (contract, profile) return the
// same declaration identity.
func bind(r *Registry, contract Contract, profile Profile) (*Declaration, error) {
	var exact, wildcard []*Declaration
	for _, d := range r.byContract[contract] {
		eligible, isExact := d.eligibleUnder(profile)
		if !eligible {
			continue
		}
		if isExact {
			exact = append(exact, d)
		} else {
			wildcard = append(wildcard, d)
		}
	}

	pool := exact
	if len(pool) == 0 {
		pool = wildcard
	}

	switch len(pool) {
	case 0:
		return nil, MissingBindingError{Contract: contract, Profile: profile}
	case 1:
		return pool[0], nil
	default:
		ids := make([]string, len(pool))
		for i, d := range pool {
			ids[i] = d.ID
		}
		return nil, AmbiguousBindingError{Contract: contract, Profile: profile, Candidates: ids}
	}
}
