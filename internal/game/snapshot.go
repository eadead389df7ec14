package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Snapshot is the persisted form of a GameState.
type Snapshot struct {
	Players   map[PlayerID]*Player     `json:"players"`
	Locations map[LocationID]*Location `json:"locations"`
	Treasures map[TreasureID]*Treasure `json:"treasures"`

	TotalPlayers   uint64     `json:"total_players"`
	NextLocationID LocationID `json:"next_location_id"`
	NextTreasureID TreasureID `json:"next_treasure_id"`
	PrizePool      uint64     `json:"prize_pool"`
	GameActive     bool       `json:"game_active"`
}

// Snapshot returns a deep copy of the state.
func (g *GameState) Snapshot() *Snapshot {
	s := &Snapshot{
		Players:        make(map[PlayerID]*Player, len(g.players)),
		Locations:      make(map[LocationID]*Location, len(g.locations)),
		Treasures:      make(map[TreasureID]*Treasure, len(g.treasures)),
		TotalPlayers:   g.totalPlayers,
		NextLocationID: g.nextLocationID,
		NextTreasureID: g.nextTreasureID,
		PrizePool:      g.prizePool,
		GameActive:     g.gameActive,
	}
	for id, p := range g.players {
		s.Players[id] = p.Clone()
	}
	for id, l := range g.locations {
		s.Locations[id] = l.Clone()
	}
	for id, t := range g.treasures {
		s.Treasures[id] = t.Clone()
	}
	return s
}

// Validate satisfies storage.ValidatingSpec. It checks the counters and
// cross references a restored state depends on.
func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	if s.TotalPlayers != uint64(len(s.Players)) {
		el.Add(fmt.Errorf("total_players %d does not match %d players", s.TotalPlayers, len(s.Players)))
	}
	if s.NextLocationID == 0 {
		el.Add(fmt.Errorf("next_location_id must be at least 1"))
	}
	if s.NextTreasureID == 0 {
		el.Add(fmt.Errorf("next_treasure_id must be at least 1"))
	}
	for id, l := range s.Locations {
		if l == nil {
			el.Add(fmt.Errorf("location %d has no record", id))
		}
		if id == 0 || id >= s.NextLocationID {
			el.Add(fmt.Errorf("location id %d outside allocated range", id))
		}
	}

	owners := make(map[TreasureID]PlayerID)
	for pid, p := range s.Players {
		if p == nil {
			el.Add(fmt.Errorf("player %q has no record", pid))
			continue
		}
		if p.Level != LevelForExp(p.Experience) {
			el.Add(fmt.Errorf("player %q level %d does not match experience %d", pid, p.Level, p.Experience))
		}
		if p.Energy > MaxEnergy {
			el.Add(fmt.Errorf("player %q energy %d exceeds %d", pid, p.Energy, MaxEnergy))
		}
		for _, tid := range p.Inventory {
			if prev, ok := owners[tid]; ok {
				el.Add(fmt.Errorf("treasure %d held by both %q and %q", tid, prev, pid))
			}
			owners[tid] = pid
			if t := s.Treasures[tid]; t == nil || !t.IsClaimed {
				el.Add(fmt.Errorf("player %q holds unclaimed or unknown treasure %d", pid, tid))
			}
		}
	}

	for id, t := range s.Treasures {
		if t == nil {
			el.Add(fmt.Errorf("treasure %d has no record", id))
		}
		if id == 0 || id >= s.NextTreasureID {
			el.Add(fmt.Errorf("treasure id %d outside allocated range", id))
		}
	}

	return el.Err()
}

// Restore builds a GameState from a snapshot. The snapshot is copied, so
// later changes to it do not affect the returned state.
func Restore(s *Snapshot, opts ...GameStateOpt) *GameState {
	g := NewGameState(opts...)

	g.players = make(map[PlayerID]*Player, len(s.Players))
	for id, p := range s.Players {
		c := p.Clone()
		if c.Inventory == nil {
			c.Inventory = Inventory{}
		}
		g.players[id] = c
	}
	g.locations = make(map[LocationID]*Location, len(s.Locations))
	for id, l := range s.Locations {
		g.locations[id] = l.Clone()
	}
	g.treasures = make(map[TreasureID]*Treasure, len(s.Treasures))
	for id, t := range s.Treasures {
		g.treasures[id] = t.Clone()
	}

	g.totalPlayers = s.TotalPlayers
	g.nextLocationID = s.NextLocationID
	g.nextTreasureID = s.NextTreasureID
	g.prizePool = s.PrizePool
	g.gameActive = s.GameActive

	return g
}
