package container

import (
	"errors"
	"strconv"
	"strings"
)

// The container never recovers from any of these internally: each one is a
// startup-class failure meant to abort the process before it serves traffic.
// Error types carry structured context (contract, profile, candidate or
// cycle ids) so callers can build an actionable message; none is formatted
// with fmt to keep the failure path allocation-cheap.

var (
	// ErrTornDown is returned when a container is used after Teardown.
	ErrTornDown = errors.New("container: torn down")
)

// InvalidDeclarationError reports a malformed declaration handed to
// Register before it reaches the registry.
type InvalidDeclarationError struct {
	ID     string
	Reason string
}

func (e InvalidDeclarationError) Error() string {
	return "container: invalid declaration " + strconv.Quote(e.ID) + ": " + e.Reason
}

// DuplicateDeclarationError is returned when two declarations share an ID.
type DuplicateDeclarationError struct {
	ID string
}

func (e DuplicateDeclarationError) Error() string {
	return "container: duplicate declaration " + strconv.Quote(e.ID)
}

// RegistryFrozenError is returned by Register once the scan phase has ended.
type RegistryFrozenError struct {
	ID string
}

func (e RegistryFrozenError) Error() string {
	return "container: registry is frozen, cannot register " + strconv.Quote(e.ID)
}

// MissingBindingError is returned when no declaration is eligible for a
// contract under the active profile.
type MissingBindingError struct {
	Contract Contract
	Profile  Profile
}

func (e MissingBindingError) Error() string {
	return "container: no declaration provides " + strconv.Quote(string(e.Contract)) +
		" under profile " + strconv.Quote(string(e.Profile))
}

// AmbiguousBindingError is returned when more than one declaration remains
// eligible for a contract after the exact-over-wildcard specificity rule.
// Candidates holds the tied declaration IDs in registration order.
type AmbiguousBindingError struct {
	Contract   Contract
	Profile    Profile
	Candidates []string
}

func (e AmbiguousBindingError) Error() string {
	return "container: ambiguous binding for " + strconv.Quote(string(e.Contract)) +
		" under profile " + strconv.Quote(string(e.Profile)) +
		": candidates " + strings.Join(e.Candidates, ", ")
}

// CircularDependencyError is returned when the dependency graph contains a
// cycle. Cycle holds declaration IDs starting and ending at the same ID,
// e.g. [A B C A].
type CircularDependencyError struct {
	Cycle []string
}

func (e CircularDependencyError) Error() string {
	return "container: circular dependency " + strings.Join(e.Cycle, " -> ")
}

// ConstructionError wraps a factory failure. Construction of the remaining
// graph is aborted; singletons already cached stay cached.
type ConstructionError struct {
	ID    string
	Cause error
}

func (e ConstructionError) Error() string {
	return "container: constructing " + strconv.Quote(e.ID) + ": " + e.Cause.Error()
}

func (e ConstructionError) Unwrap() error { return e.Cause }
