package game

import (
	"slices"
	"time"
)

const (
	// MaxEnergy is the energy a player registers with.
	MaxEnergy = 100

	// ExploreEnergyCost is the energy spent on each exploration.
	ExploreEnergyCost = 10
)

// PlayerID is the identity of a player as supplied by the caller's
// authentication layer.
type PlayerID string

func (id PlayerID) String() string {
	return string(id)
}

// Player represents a registered participant and their progression.
type Player struct {
	Username string `json:"username"`

	// Progression. Level always equals LevelForExp(Experience).
	Level          uint64 `json:"level"`
	Experience     uint64 `json:"experience"`
	TreasuresFound uint64 `json:"treasures_found"`
	PuzzlesSolved  uint64 `json:"puzzles_solved"`
	TotalRewards   uint64 `json:"total_rewards"`

	LastExploration time.Time  `json:"last_exploration,omitzero"`
	CurrentLocation LocationID `json:"current_location,omitempty"`

	// Energy gates exploration and is never regenerated by the game itself.
	Energy uint64 `json:"energy"`

	Inventory    Inventory `json:"inventory"`
	Achievements []string  `json:"achievements"`

	RegisteredAt time.Time `json:"registered_at"`
	IsActive     bool      `json:"is_active"`
}

func newPlayer(username string, now time.Time) *Player {
	return &Player{
		Username:     username,
		Level:        1,
		Energy:       MaxEnergy,
		Inventory:    Inventory{},
		Achievements: []string{},
		RegisteredAt: now,
		IsActive:     true,
	}
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	c.Achievements = slices.Clone(p.Achievements)
	return &c
}
