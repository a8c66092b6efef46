// Package app is the demo application: a notes service wired through the
// container, with adapters selected by deployment profile.
package app

import (
	"github.com/google/uuid"

	"github.com/portico-di/portico/app/adapters"
	"github.com/portico-di/portico/app/ports"
	"github.com/portico-di/portico/app/services"
	"github.com/portico-di/portico/framework/container"
)

// Modules returns everything the demo registers, in scan order.
func Modules() []container.Module {
	return []container.Module{CoreModule{}, AdapterModule{}}
}

// CoreModule registers the profile-independent domain services.
type CoreModule struct{}

func (CoreModule) Register(r *container.Registry) error {
	if err := r.Register(container.Declaration{
		ID:       "request-trace",
		Provides: TraceContract,
		Lifetime: container.Transient,
		Factory: func(container.Deps) (any, error) {
			return RequestTrace{ID: uuid.NewString()}, nil
		},
	}); err != nil {
		return err
	}

	return r.Register(container.Declaration{
		ID:       "note-service",
		Provides: services.NoteServiceContract,
		Dependencies: []container.Contract{
			ports.ClockContract,
			ports.MailerContract,
			ports.StoreContract,
		},
		Factory: func(deps container.Deps) (any, error) {
			return services.NewNoteService(
				container.As[ports.Clock](deps, ports.ClockContract),
				container.As[ports.Mailer](deps, ports.MailerContract),
				container.As[ports.NoteStore](deps, ports.StoreContract),
			), nil
		},
	})
}

// AdapterModule registers one adapter set per profile. The production pair
// and the test pair provide the same ports; the active profile decides
// which one the services see. The clock is a wildcard: every profile shares
// it unless a more specific declaration appears.
type AdapterModule struct{}

func (AdapterModule) Register(r *container.Registry) error {
	decls := []container.Declaration{
		{
			ID:       "system-clock",
			Provides: ports.ClockContract,
			Kind:     container.KindAdapter,
			Profiles: container.In(container.All),
			Factory: func(container.Deps) (any, error) {
				return adapters.SystemClock{}, nil
			},
		},
		{
			ID:       "log-mailer",
			Provides: ports.MailerContract,
			Kind:     container.KindAdapter,
			Profiles: container.In(container.Production, container.Staging),
			Factory: func(container.Deps) (any, error) {
				return adapters.LogMailer{}, nil
			},
		},
		{
			ID:       "memory-note-store",
			Provides: ports.StoreContract,
			Kind:     container.KindAdapter,
			Profiles: container.In(container.Production, container.Staging, container.Development),
			Factory: func(container.Deps) (any, error) {
				return adapters.NewMemoryNoteStore(), nil
			},
		},
		{
			ID:       "fake-mailer",
			Provides: ports.MailerContract,
			Kind:     container.KindAdapter,
			Profiles: container.In(container.Test, container.CI, container.Development),
			Factory: func(container.Deps) (any, error) {
				return adapters.NewFakeMailer(), nil
			},
		},
		{
			ID:       "fake-note-store",
			Provides: ports.StoreContract,
			Kind:     container.KindAdapter,
			Profiles: container.In(container.Test, container.CI),
			Factory: func(container.Deps) (any, error) {
				return adapters.NewFakeNoteStore(), nil
			},
		},
	}
	for _, d := range decls {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}
