package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/portico-di/portico/app/ports"
)

// ── Test fakes ───────────────────────────────────────────────────────────────
//
// Fakes are real implementations with test-friendly behavior, not mocks:
// they are registered for the test profile and the services using them
// cannot tell the difference.

// FrozenClock always reports the same instant.
type FrozenClock struct {
	Instant time.Time
}

func (c FrozenClock) Now() time.Time { return c.Instant }

// FakeMailer records every message for assertions.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func NewFakeMailer() *FakeMailer { return &FakeMailer{} }

func (m *FakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Count returns how many messages were sent.
func (m *FakeMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// FakeNoteStore is an in-memory store without lifecycle hooks.
type FakeNoteStore struct {
	mu    sync.Mutex
	notes []ports.Note
}

func NewFakeNoteStore() *FakeNoteStore { return &FakeNoteStore{} }

func (s *FakeNoteStore) Save(ctx context.Context, n ports.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
	return nil
}

func (s *FakeNoteStore) List(ctx context.Context) ([]ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}
