package game

import (
	"cmp"
	"maps"
	"slices"
	"time"
)

// ExploreMessage is returned by a successful ExploreLocation.
const ExploreMessage = "Location explored successfully!"

// GameState is the single source of truth for players, locations and
// treasures. It is not safe for concurrent use; callers serialize access.
//
// Every operation either applies all of its changes or returns an error
// without touching the state.
type GameState struct {
	players   map[PlayerID]*Player
	locations map[LocationID]*Location
	treasures map[TreasureID]*Treasure

	totalPlayers   uint64
	nextLocationID LocationID
	nextTreasureID TreasureID
	prizePool      uint64
	gameActive     bool

	registrationFee uint64
	now             func() time.Time
	sink            EventSink

	// version increases with every applied change.
	version uint64
}

// NewGameState creates an empty, active game.
func NewGameState(opts ...GameStateOpt) *GameState {
	g := &GameState{
		players:         make(map[PlayerID]*Player),
		locations:       make(map[LocationID]*Location),
		treasures:       make(map[TreasureID]*Treasure),
		nextLocationID:  1,
		nextTreasureID:  1,
		gameActive:      true,
		registrationFee: DefaultRegistrationFee,
		now:             time.Now,
		sink:            nopSink{},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Version returns a counter that changes whenever the state changes.
func (g *GameState) Version() uint64 {
	return g.version
}

func (g *GameState) emit(e Event) {
	g.version++
	g.sink.Emit(e)
}

// RegisterPlayer creates a new player with starting stats and adds the
// registration fee to the prize pool.
func (g *GameState) RegisterPlayer(username string, id PlayerID) error {
	if _, exists := g.players[id]; exists {
		return ErrAlreadyRegistered
	}

	now := g.now()
	g.players[id] = newPlayer(username, now)
	g.totalPlayers++
	g.prizePool += g.registrationFee

	g.emit(Event{Type: EventPlayerRegistered, At: now, Player: id, Name: username})
	return nil
}

// CreateLocation stores a new location and returns its id. Inputs are
// trusted and not validated.
func (g *GameState) CreateLocation(p LocationParams) LocationID {
	id := g.nextLocationID
	g.nextLocationID++

	g.locations[id] = &Location{
		Name:         p.Name,
		Description:  p.Description,
		LocationType: p.LocationType,
		Coordinates: Area{
			X:      p.X,
			Y:      p.Y,
			Radius: p.Radius,
		},
		DifficultyLevel:  p.Difficulty,
		EntryRequirement: p.EntryRequirement,
		DiscoveryBonus:   p.DiscoveryBonus,
		DiscoveredBy:     []PlayerID{},
	}

	g.emit(Event{Type: EventLocationCreated, At: g.now(), Location: id, Name: p.Name})
	return id
}

// CreateTreasure stores a new unclaimed treasure and returns its id. The
// location is not checked for existence.
func (g *GameState) CreateTreasure(p TreasureParams) TreasureID {
	id := g.nextTreasureID
	g.nextTreasureID++

	// Callers keep the multiplier within TreasureType.Reward's bound.
	reward := p.TreasureType.BaseReward() * p.RarityMultiplier
	g.treasures[id] = &Treasure{
		Name:         p.Name,
		Description:  p.Description,
		TreasureType: p.TreasureType,
		LocationID:   p.LocationID,
		Coordinates: Point{
			X: p.X,
			Y: p.Y,
		},
		RewardAmount:     reward,
		RarityMultiplier: p.RarityMultiplier,
		RequiredLevel:    p.RequiredLevel,
	}

	g.emit(Event{
		Type:     EventTreasureCreated,
		At:       g.now(),
		Location: p.LocationID,
		Treasure: id,
		Amount:   reward,
		Name:     p.Name,
	})
	return id
}

// ExploreLocation moves the player to the location, spending energy and
// awarding experience. The player coordinates are accepted as given; no
// geofence is applied.
func (g *GameState) ExploreLocation(locId LocationID, x, y int64, id PlayerID) (string, error) {
	p, ok := g.players[id]
	if !ok {
		return "", ErrPlayerNotRegistered
	}
	loc, ok := g.locations[locId]
	if !ok {
		return "", ErrInvalidLocation
	}
	if p.Level < loc.EntryRequirement {
		return "", ErrNotAuthorized
	}
	if p.Energy < ExploreEnergyCost {
		return "", ErrCooldownActive
	}

	now := g.now()
	p.CurrentLocation = locId
	p.LastExploration = now
	p.Energy -= ExploreEnergyCost
	p.gainExp(ExploreExp)

	g.emit(Event{
		Type:     EventLocationExplored,
		At:       now,
		Player:   id,
		Location: locId,
		Name:     loc.Name,
		Kind:     loc.LocationType.String(),
	})
	return ExploreMessage, nil
}

// ClaimTreasure gives an unclaimed treasure to the player and returns its
// reward. Only the first successful claim of a treasure is ever accepted.
func (g *GameState) ClaimTreasure(tId TreasureID, id PlayerID) (uint64, error) {
	t, ok := g.treasures[tId]
	if !ok {
		return 0, ErrTreasureNotFound
	}
	p, ok := g.players[id]
	if !ok {
		return 0, ErrPlayerNotRegistered
	}
	if t.IsClaimed {
		return 0, ErrTreasureAlreadyClaimed
	}
	if p.Level < t.RequiredLevel {
		return 0, ErrNotAuthorized
	}

	now := g.now()
	t.IsClaimed = true
	t.DiscoveredBy = id
	t.DiscoveredAt = now

	p.TreasuresFound++
	p.TotalRewards += t.RewardAmount
	p.Inventory.Add(tId)
	p.gainExp(ClaimExp)

	g.emit(Event{
		Type:     EventTreasureClaimed,
		At:       now,
		Player:   id,
		Location: t.LocationID,
		Treasure: tId,
		Amount:   t.RewardAmount,
		Name:     t.Name,
	})
	return t.RewardAmount, nil
}

// TransferTreasure moves a claimed treasure from the sender's inventory to
// the recipient's. The treasure record itself keeps its original discoverer.
func (g *GameState) TransferTreasure(tId TreasureID, recipient, sender PlayerID) error {
	from, ok := g.players[sender]
	if !ok {
		return ErrPlayerNotRegistered
	}
	to, ok := g.players[recipient]
	if !ok {
		return ErrPlayerNotRegistered
	}
	t, ok := g.treasures[tId]
	if !ok || !t.IsClaimed || !from.Inventory.Contains(tId) {
		return ErrTreasureNotFound
	}

	from.Inventory.Remove(tId)
	to.Inventory.Add(tId)

	g.emit(Event{
		Type:      EventTreasureTransferred,
		At:        g.now(),
		Player:    sender,
		Recipient: recipient,
		Treasure:  tId,
		Name:      t.Name,
	})
	return nil
}

// SetGameActive sets the game active flag reported in the stats.
func (g *GameState) SetGameActive(active bool) {
	if g.gameActive == active {
		return
	}
	g.gameActive = active
	g.version++
}

// GetPlayerInfo returns a copy of the player, or nil if not registered.
func (g *GameState) GetPlayerInfo(id PlayerID) *Player {
	p, ok := g.players[id]
	if !ok {
		return nil
	}
	return p.Clone()
}

// GetTreasureInfo returns a copy of the treasure, or nil if not found.
func (g *GameState) GetTreasureInfo(id TreasureID) *Treasure {
	t, ok := g.treasures[id]
	if !ok {
		return nil
	}
	return t.Clone()
}

// GetLocationInfo returns a copy of the location, or nil if not found.
func (g *GameState) GetLocationInfo(id LocationID) *Location {
	l, ok := g.locations[id]
	if !ok {
		return nil
	}
	return l.Clone()
}

// LocationEntry pairs a location with its id.
type LocationEntry struct {
	ID       LocationID `json:"id"`
	Location *Location  `json:"location"`
}

// ListLocations returns copies of all locations ordered by id.
func (g *GameState) ListLocations() []LocationEntry {
	ids := slices.Sorted(maps.Keys(g.locations))
	entries := make([]LocationEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, LocationEntry{ID: id, Location: g.locations[id].Clone()})
	}
	return entries
}

// Standing is a player's position on the leaderboard.
type Standing struct {
	Player         PlayerID `json:"player"`
	Username       string   `json:"username"`
	Level          uint64   `json:"level"`
	TreasuresFound uint64   `json:"treasures_found"`
	TotalRewards   uint64   `json:"total_rewards"`
}

// Leaderboard returns up to n players ranked by total rewards, then
// treasures found, then id. A non-positive n returns every player.
func (g *GameState) Leaderboard(n int) []Standing {
	standings := make([]Standing, 0, len(g.players))
	for id, p := range g.players {
		standings = append(standings, Standing{
			Player:         id,
			Username:       p.Username,
			Level:          p.Level,
			TreasuresFound: p.TreasuresFound,
			TotalRewards:   p.TotalRewards,
		})
	}

	slices.SortFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.TotalRewards, a.TotalRewards); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TreasuresFound, a.TreasuresFound); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})

	if n > 0 && n < len(standings) {
		standings = standings[:n]
	}
	return standings
}
