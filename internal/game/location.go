package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
)

// LocationID identifies a location. Ids start at 1; 0 means no location.
type LocationID uint64

// LocationType is the kind of terrain a location represents.
type LocationType uint8

const (
	LocationTypeUnknown LocationType = iota
	LocationTypeForest
	LocationTypeMountain
	LocationTypeCave
	LocationTypeRuins
	LocationTypeOcean
)

var locationTypeNames = map[string]LocationType{
	"forest":   LocationTypeForest,
	"mountain": LocationTypeMountain,
	"cave":     LocationTypeCave,
	"ruins":    LocationTypeRuins,
	"ocean":    LocationTypeOcean,
}

// ParseLocationType returns the LocationType for name, or
// LocationTypeUnknown.
func ParseLocationType(name string) LocationType {
	return locationTypeNames[strings.ToLower(name)]
}

func (t LocationType) String() string {
	switch t {
	case LocationTypeForest:
		return "forest"
	case LocationTypeMountain:
		return "mountain"
	case LocationTypeCave:
		return "cave"
	case LocationTypeRuins:
		return "ruins"
	case LocationTypeOcean:
		return "ocean"
	default:
		return fmt.Sprintf("type-%d", uint8(t))
	}
}

// Area is the circular region a location covers.
type Area struct {
	X      int64  `json:"x"`
	Y      int64  `json:"y"`
	Radius uint64 `json:"radius"`
}

// Location is a discoverable region that hosts treasures.
type Location struct {
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	LocationType     LocationType `json:"location_type"`
	Coordinates      Area         `json:"coordinates"`
	TreasureCount    uint64       `json:"treasure_count"`
	DifficultyLevel  uint64       `json:"difficulty_level"`
	EntryRequirement uint64       `json:"entry_requirement"`
	DiscoveryBonus   uint64       `json:"discovery_bonus"`
	IsHidden         bool         `json:"is_hidden"`
	DiscoveredBy     []PlayerID   `json:"discovered_by"`
}

// Clone returns a deep copy of the location.
func (l *Location) Clone() *Location {
	c := *l
	c.DiscoveredBy = slices.Clone(l.DiscoveredBy)
	return &c
}

// LocationParams are the inputs to CreateLocation.
type LocationParams struct {
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	LocationType     LocationType `json:"location_type"`
	X                int64        `json:"x"`
	Y                int64        `json:"y"`
	Radius           uint64       `json:"radius"`
	Difficulty       uint64       `json:"difficulty"`
	EntryRequirement uint64       `json:"entry_requirement"`
	DiscoveryBonus   uint64       `json:"discovery_bonus"`
}

// LocationSpec is a location definition loaded from asset files.
type LocationSpec struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	TypeStr          string `json:"type"`
	X                int64  `json:"x"`
	Y                int64  `json:"y"`
	Radius           uint64 `json:"radius"`
	Difficulty       uint64 `json:"difficulty"`
	EntryRequirement uint64 `json:"entry_requirement"`
	DiscoveryBonus   uint64 `json:"discovery_bonus"`
}

// Validate satisfies storage.ValidatingSpec.
func (s *LocationSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("location name is required"))
	}
	if s.TypeStr == "" {
		el.Add(fmt.Errorf("location type is required"))
	} else if ParseLocationType(s.TypeStr) == LocationTypeUnknown {
		el.Add(fmt.Errorf("location type %q is invalid", s.TypeStr))
	}
	if s.Radius == 0 {
		el.Add(fmt.Errorf("location radius must be positive"))
	}
	return el.Err()
}

// Params converts the spec into CreateLocation inputs.
func (s *LocationSpec) Params() LocationParams {
	return LocationParams{
		Name:             s.Name,
		Description:      s.Description,
		LocationType:     ParseLocationType(s.TypeStr),
		X:                s.X,
		Y:                s.Y,
		Radius:           s.Radius,
		Difficulty:       s.Difficulty,
		EntryRequirement: s.EntryRequirement,
		DiscoveryBonus:   s.DiscoveryBonus,
	}
}
