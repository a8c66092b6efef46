// Package services holds the core domain logic of the demo application.
// Nothing here knows which adapters are active; everything arrives through
// ports.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/portico-di/portico/app/ports"
	"github.com/portico-di/portico/framework/container"
)

// NoteServiceContract is the key under which the service is registered.
var NoteServiceContract = container.ContractOf((*NoteService)(nil))

// ErrEmptyNote rejects blank submissions.
var ErrEmptyNote = errors.New("notes: empty note text")

// NoteService records notes and notifies about each one. It depends on the
// Clock, Mailer and NoteStore ports.
type NoteService struct {
	clock  ports.Clock
	mailer ports.Mailer
	store  ports.NoteStore
}

// NewNoteService wires the service from its ports.
func NewNoteService(clock ports.Clock, mailer ports.Mailer, store ports.NoteStore) *NoteService {
	return &NoteService{clock: clock, mailer: mailer, store: store}
}

// Add stores a note stamped with the current time and sends a notification.
func (s *NoteService) Add(ctx context.Context, text string) (ports.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ports.Note{}, ErrEmptyNote
	}

	n := ports.Note{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Save(ctx, n); err != nil {
		return ports.Note{}, err
	}
	if err := s.mailer.Send("inbox@example.com", "new note", text); err != nil {
		return ports.Note{}, err
	}
	return n, nil
}

// List returns every stored note.
func (s *NoteService) List(ctx context.Context) ([]ports.Note, error) {
	return s.store.List(ctx)
}
