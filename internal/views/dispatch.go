package views

import (
	"context"

	"adminhub/internal/client"

	"github.com/rs/zerolog/log"
)

// Result is what a mutation reports back to the page. A failed mutation never
// touches the published snapshot.
type Result struct {
	OK        bool
	Cancelled bool
	// Refreshed is false when the write succeeded but the reload did not.
	Refreshed bool
	Err       error
	Message   string
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Mutation is one write. Prompt marks it destructive: it runs only after the
// Confirmer approves. Guard runs before any request is sent.
type Mutation struct {
	Action string
	Prompt string
	Guard  func() error
	Do     func(ctx context.Context) error
}

// Dispatcher runs mutations and reloads the page after each successful one.
type Dispatcher struct {
	Confirmer Confirmer
	Refresh   func(ctx context.Context) error
}

const msgDone = "İşlem başarıyla tamamlandı"

func (d Dispatcher) Dispatch(ctx context.Context, m Mutation) Result {
	if m.Prompt != "" && (d.Confirmer == nil || !d.Confirmer.Confirm(m.Prompt)) {
		return Result{Cancelled: true, Message: "işlem iptal edildi"}
	}
	if m.Guard != nil {
		if err := m.Guard(); err != nil {
			return Result{Err: err, Message: client.Message(err)}
		}
	}
	if err := m.Do(ctx); err != nil {
		log.Debug().Err(err).Str("action", m.Action).Msg("mutation failed")
		return Result{Err: err, Message: client.Message(err)}
	}
	if d.Refresh == nil {
		return Result{OK: true, Message: msgDone}
	}
	if err := d.Refresh(ctx); err != nil {
		return Result{OK: true, Err: err, Message: msgDone + ", liste yenilenemedi: " + client.Message(err)}
	}
	return Result{OK: true, Refreshed: true, Message: msgDone}
}
