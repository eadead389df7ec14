package messaging

import (
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// TxSubject is the request/reply subject transactions are submitted on.
const TxSubject = "quest.tx"

// EventSubject returns the subject events of type t are published on.
func EventSubject(t game.EventType) string {
	return fmt.Sprintf("quest.events.%s", t)
}

// PlayerSubject returns the subject notices for a player are published on.
func PlayerSubject(id game.PlayerID) string {
	return fmt.Sprintf("player-%s", id)
}
