package ledger

import (
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

type HandlerOpt func(*Handler)

// WithAdmins sets the senders allowed to run admin operations.
func WithAdmins(ids ...game.PlayerID) HandlerOpt {
	return func(h *Handler) {
		for _, id := range ids {
			h.admins[id] = true
		}
	}
}

// WithStore sets where the game snapshot is saved.
func WithStore(st storage.Storer[*game.Snapshot]) HandlerOpt {
	return func(h *Handler) {
		h.store = st
	}
}
