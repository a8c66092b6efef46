// Package ports declares the capability contracts of the demo application.
// Services depend on these interfaces only; concrete adapters are bound per
// profile by the container.
package ports

import (
	"context"
	"time"

	"github.com/portico-di/portico/framework/container"
)

// Clock abstracts time so tests can freeze it.
type Clock interface {
	Now() time.Time
}

// Mailer sends notifications.
type Mailer interface {
	Send(to, subject, body string) error
}

// Note is the domain record persisted through NoteStore.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteStore persists notes.
type NoteStore interface {
	Save(ctx context.Context, n Note) error
	List(ctx context.Context) ([]Note, error)
}

// Contract keys, derived from the interfaces so they stay typo-free.
var (
	ClockContract  = container.ContractOf((*Clock)(nil))
	MailerContract = container.ContractOf((*Mailer)(nil))
	StoreContract  = container.ContractOf((*NoteStore)(nil))
)
