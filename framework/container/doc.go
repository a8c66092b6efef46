// Package container provides a hexagonal-architecture IoC container:
// services declare the ports they depend on, adapters are bound to those
// ports per deployment profile, and the container resolves the whole object
// graph once at startup.
//
// # Container Lifecycle
//
//  1. Create:   c := container.New()
//  2. Scan:     c.Scan(modules...) accumulates declarations
//  3. Finalize: c.Finalize(profile) freezes the registry, selects bindings,
//     builds the dependency graph and rejects cycles; explicit, or implicit
//     on the first Resolve
//  4. Resolve:  c.Resolve(profile, port) constructs instances in dependency
//     order, caching singletons
//  5. Teardown: c.Teardown(ctx) disposes cached singletons in reverse
//     construction order
//
// # Declarations
//
// A Declaration describes one service or adapter: the Contract it provides,
// the Contracts it depends on, the Profiles under which it is eligible, its
// Lifetime, and a Factory that builds the instance from resolved
// dependencies.
//
//	container.Declaration{
//	    ID:           "smtp-mailer",
//	    Provides:     MailerPort,
//	    Kind:         container.KindAdapter,
//	    Profiles:     container.In(container.Production),
//	    Dependencies: []container.Contract{ClockPort},
//	    Factory: func(deps container.Deps) (any, error) {
//	        clock := container.As[Clock](deps, ClockPort)
//	        return NewSMTPMailer(clock), nil
//	    },
//	}
//
// Declarations are fed to the container by Modules, an explicit registration
// step rather than import side effects:
//
//	stats, err := c.Scan(app.CoreModule{}, app.AdapterModule{})
//
// # Profiles
//
// A profile names a deployment context (production, test, staging, ...).
// Adapters registered for the exact active profile outrank wildcard ("*")
// registrations; two candidates still tied after that rule are reported as
// ambiguous rather than silently picked.
//
// # Failure philosophy
//
// Every wiring defect is detected during Finalize, before any factory runs:
// missing bindings, ambiguous bindings, dependency cycles. All errors are
// typed (MissingBindingError, AmbiguousBindingError,
// CircularDependencyError, ...) and carry enough context to print an
// actionable message. Nothing is retried and no fallback candidate is ever
// chosen behind your back.
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Resolve(container.Test, MailerPort)
//
//	// Generic (preferred, no type assertion required)
//	mailer, err := container.Get[Mailer](c, container.Test, MailerPort)
package container
