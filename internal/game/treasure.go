package game

import (
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/pixil98/go-errors"
)

// TreasureID identifies a treasure. Ids start at 1.
type TreasureID uint64

// TreasureType is the reward tier of a treasure.
type TreasureType uint8

const (
	TreasureTypeUnknown TreasureType = iota
	TreasureTypeCommon
	TreasureTypeRare
	TreasureTypeEpic
	TreasureTypeLegendary
)

// ParseTreasureType returns the TreasureType for name, or
// TreasureTypeUnknown.
func ParseTreasureType(name string) TreasureType {
	switch strings.ToLower(name) {
	case "common":
		return TreasureTypeCommon
	case "rare":
		return TreasureTypeRare
	case "epic":
		return TreasureTypeEpic
	case "legendary":
		return TreasureTypeLegendary
	default:
		return TreasureTypeUnknown
	}
}

// BaseReward returns the base reward of the tier. Any value outside the four
// known tiers is paid at the legendary rate.
func (t TreasureType) BaseReward() uint64 {
	switch t {
	case TreasureTypeCommon:
		return 1_000_000
	case TreasureTypeRare:
		return 3_000_000
	case TreasureTypeEpic:
		return 7_000_000
	default:
		return 15_000_000
	}
}

// Reward returns the base reward scaled by multiplier. ok is false when the
// product does not fit in a uint64.
func (t TreasureType) Reward(multiplier uint64) (reward uint64, ok bool) {
	hi, lo := bits.Mul64(t.BaseReward(), multiplier)
	return lo, hi == 0
}

// Point is a position on the game map.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Treasure is a claimable reward placed at a location.
type Treasure struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	TreasureType TreasureType `json:"treasure_type"`
	LocationID   LocationID   `json:"location_id"`
	Coordinates  Point        `json:"coordinates"`
	RewardAmount uint64       `json:"reward_amount"`

	// Reserved for puzzle-gated treasures.
	PuzzleHash string `json:"puzzle_hash,omitempty"`
	PuzzleClue string `json:"puzzle_clue,omitempty"`

	DiscoveredBy PlayerID  `json:"discovered_by,omitempty"`
	DiscoveredAt time.Time `json:"discovered_at,omitzero"`
	IsClaimed    bool      `json:"is_claimed"`

	RarityMultiplier uint64 `json:"rarity_multiplier"`
	RequiredLevel    uint64 `json:"required_level"`
}

// Clone returns a copy of the treasure.
func (t *Treasure) Clone() *Treasure {
	c := *t
	return &c
}

// TreasureParams are the inputs to CreateTreasure.
type TreasureParams struct {
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	TreasureType     TreasureType `json:"treasure_type"`
	LocationID       LocationID   `json:"location_id"`
	X                int64        `json:"x"`
	Y                int64        `json:"y"`
	RarityMultiplier uint64       `json:"rarity_multiplier"`
	RequiredLevel    uint64       `json:"required_level"`
}

// TreasureSpec is a treasure definition loaded from asset files. Location
// refers to the asset id of a LocationSpec.
type TreasureSpec struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	TypeStr          string `json:"type"`
	Location         string `json:"location"`
	X                int64  `json:"x"`
	Y                int64  `json:"y"`
	RarityMultiplier uint64 `json:"rarity_multiplier"`
	RequiredLevel    uint64 `json:"required_level"`
}

// Validate satisfies storage.ValidatingSpec.
func (s *TreasureSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("treasure name is required"))
	}
	if s.TypeStr == "" {
		el.Add(fmt.Errorf("treasure type is required"))
	} else if ParseTreasureType(s.TypeStr) == TreasureTypeUnknown {
		el.Add(fmt.Errorf("treasure type %q is invalid", s.TypeStr))
	}
	if s.Location == "" {
		el.Add(fmt.Errorf("treasure location is required"))
	}
	if s.RarityMultiplier == 0 {
		el.Add(fmt.Errorf("treasure rarity_multiplier must be positive"))
	} else if _, ok := ParseTreasureType(s.TypeStr).Reward(s.RarityMultiplier); !ok {
		el.Add(fmt.Errorf("treasure rarity_multiplier %d overflows the reward", s.RarityMultiplier))
	}
	return el.Err()
}

// Params converts the spec into CreateTreasure inputs placed at loc.
func (s *TreasureSpec) Params(loc LocationID) TreasureParams {
	return TreasureParams{
		Name:             s.Name,
		Description:      s.Description,
		TreasureType:     ParseTreasureType(s.TypeStr),
		LocationID:       loc,
		X:                s.X,
		Y:                s.Y,
		RarityMultiplier: s.RarityMultiplier,
		RequiredLevel:    s.RequiredLevel,
	}
}
