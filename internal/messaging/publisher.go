package messaging

import (
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-quest/internal/game"
)

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher forwards game events to NATS as JSON and sends the rendered
// notices to the players involved.
type EventPublisher struct {
	pub      Publisher
	notifier *Notifier
}

// NewEventPublisher creates an EventPublisher. A nil notifier disables
// player notices.
func NewEventPublisher(pub Publisher, notifier *Notifier) *EventPublisher {
	return &EventPublisher{pub: pub, notifier: notifier}
}

// Emit implements game.EventSink. Delivery is best effort; events emitted
// before the broker is up are dropped.
func (p *EventPublisher) Emit(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("encoding event", "type", ev.Type, "error", err)
		return
	}
	if err := p.pub.Publish(EventSubject(ev.Type), data); err != nil {
		slog.Debug("event not published", "type", ev.Type, "error", err)
		return
	}

	if p.notifier == nil {
		return
	}
	notices, err := p.notifier.Render(ev)
	if err != nil {
		slog.Warn("rendering notice", "type", ev.Type, "error", err)
	}
	for _, n := range notices {
		if err := p.pub.Publish(PlayerSubject(n.To), []byte(n.Text)); err != nil {
			slog.Warn("publishing notice", "player", n.To, "error", err)
		}
	}
}
