package game

import "time"

// EventType names a successful state transition.
type EventType string

const (
	EventPlayerRegistered    EventType = "player_registered"
	EventLocationCreated     EventType = "location_created"
	EventTreasureCreated     EventType = "treasure_created"
	EventLocationExplored    EventType = "location_explored"
	EventTreasureClaimed     EventType = "treasure_claimed"
	EventTreasureTransferred EventType = "treasure_transferred"
)

// Event describes a transition that has been applied to the game state.
// Fields that do not apply to the event type are left zero.
type Event struct {
	Type EventType `json:"type"`
	At   time.Time `json:"at"`

	Player    PlayerID   `json:"player,omitempty"`
	Recipient PlayerID   `json:"recipient,omitempty"`
	Location  LocationID `json:"location,omitempty"`
	Treasure  TreasureID `json:"treasure,omitempty"`
	Amount    uint64     `json:"amount,omitempty"`

	// Name is the display name of the subject: the username, location name
	// or treasure name.
	Name string `json:"name,omitempty"`

	// Kind is the location type of an explored location.
	Kind string `json:"kind,omitempty"`
}

// EventSink receives events after each successful transition.
type EventSink interface {
	Emit(Event)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}
