// Package adapters provides the concrete implementations bound to the demo
// application's ports, one set per deployment profile.
package adapters

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/portico-di/portico/app/ports"
)

// ── Production adapters ──────────────────────────────────────────────────────

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// LogMailer stands in for a real SMTP integration: it writes each message
// to the process log. Good enough for the demo; swap it for a provider SDK
// without touching any service.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// ErrStoreClosed is returned by a MemoryNoteStore used outside its
// Initialize/Dispose window.
var ErrStoreClosed = errors.New("adapters: note store is closed")

// MemoryNoteStore keeps notes in memory. It implements the container's
// Initialize/Dispose hooks: the store only accepts traffic between Start
// and Teardown.
type MemoryNoteStore struct {
	mu     sync.RWMutex
	notes  []ports.Note
	opened bool
}

func NewMemoryNoteStore() *MemoryNoteStore { return &MemoryNoteStore{} }

func (s *MemoryNoteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
	return nil
}

func (s *MemoryNoteStore) Dispose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = false
	s.notes = nil
	return nil
}

func (s *MemoryNoteStore) Save(ctx context.Context, n ports.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ErrStoreClosed
	}
	s.notes = append(s.notes, n)
	return nil
}

func (s *MemoryNoteStore) List(ctx context.Context) ([]ports.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.opened {
		return nil, ErrStoreClosed
	}
	out := make([]ports.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}
