package game

import (
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// recordingSink captures emitted events.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(e Event) {
	s.events = append(s.events, e)
}

func newTestState(t *testing.T) (*GameState, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	g := NewGameState(
		WithClock(func() time.Time { return testNow }),
		WithEventSink(sink),
	)
	return g, sink
}

func mustRegister(t *testing.T, g *GameState, id PlayerID) {
	t.Helper()
	if err := g.RegisterPlayer(string(id)+"-name", id); err != nil {
		t.Fatalf("registering %s: %v", id, err)
	}
}

func forest(entry uint64) LocationParams {
	return LocationParams{
		Name:             "Test Forest",
		Description:      "A mysterious forest",
		LocationType:     LocationTypeForest,
		X:                50,
		Y:                50,
		Radius:           20,
		Difficulty:       3,
		EntryRequirement: entry,
		DiscoveryBonus:   100_000,
	}
}

func coin(tt TreasureType, mult, level uint64) TreasureParams {
	return TreasureParams{
		Name:             "Gold Coin",
		Description:      "Shiny coin",
		TreasureType:     tt,
		LocationID:       1,
		X:                15,
		Y:                15,
		RarityMultiplier: mult,
		RequiredLevel:    level,
	}
}

// assertLevelInvariant checks level == experience/1000 + 1 for every player.
func assertLevelInvariant(t *testing.T, g *GameState) {
	t.Helper()
	for id, p := range g.players {
		if p.Level != p.Experience/1000+1 {
			t.Errorf("player %s: level %d does not match experience %d", id, p.Level, p.Experience)
		}
	}
}

func TestGameState_RegisterPlayer(t *testing.T) {
	g, sink := newTestState(t)

	err := g.RegisterPlayer("Alice", "alice123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := g.GetPlayerInfo("alice123")
	if p == nil {
		t.Fatal("expected player to be registered")
	}
	testutil.AssertEqual(t, "username", p.Username, "Alice")
	testutil.AssertEqual(t, "level", p.Level, uint64(1))
	testutil.AssertEqual(t, "experience", p.Experience, uint64(0))
	testutil.AssertEqual(t, "energy", p.Energy, uint64(MaxEnergy))
	testutil.AssertEqual(t, "inventory", len(p.Inventory), 0)
	testutil.AssertEqual(t, "achievements", len(p.Achievements), 0)
	testutil.AssertEqual(t, "registered at", p.RegisteredAt, testNow)
	testutil.AssertEqual(t, "active", p.IsActive, true)
	testutil.AssertEqual(t, "current location", p.CurrentLocation, LocationID(0))

	stats := g.GetGameStats()
	testutil.AssertEqual(t, "total players", stats.TotalPlayers, uint64(1))
	testutil.AssertEqual(t, "prize pool", stats.PrizePool, uint64(1_000_000))

	testutil.AssertEqual(t, "events", len(sink.events), 1)
	testutil.AssertEqual(t, "event type", sink.events[0].Type, EventPlayerRegistered)
}

func TestGameState_RegisterPlayer_Duplicate(t *testing.T) {
	g, sink := newTestState(t)
	mustRegister(t, g, "bob456")
	before := g.Snapshot()
	version := g.Version()

	err := g.RegisterPlayer("Bob2", "bob456")

	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if !errors.Is(err, ErrPlayerNotRegistered) {
		t.Errorf("duplicate registration should match ErrPlayerNotRegistered")
	}
	testutil.AssertEqual(t, "code", CodeOf(err), CodePlayerNotRegistered)
	testutil.AssertEqual(t, "username kept", g.GetPlayerInfo("bob456").Username, "bob456-name")
	testutil.AssertEqual(t, "total players", g.GetGameStats().TotalPlayers, before.TotalPlayers)
	testutil.AssertEqual(t, "prize pool", g.GetGameStats().PrizePool, before.PrizePool)
	testutil.AssertEqual(t, "version", g.Version(), version)
	testutil.AssertEqual(t, "events", len(sink.events), 1)
}

func TestGameState_RegistrationFee(t *testing.T) {
	g := NewGameState(WithRegistrationFee(250))
	mustRegister(t, g, "a")
	mustRegister(t, g, "b")

	testutil.AssertEqual(t, "prize pool", g.GetGameStats().PrizePool, uint64(500))
}

func TestGameState_CreateLocation(t *testing.T) {
	g, _ := newTestState(t)

	first := g.CreateLocation(forest(1))
	second := g.CreateLocation(forest(5))

	testutil.AssertEqual(t, "first id", first, LocationID(1))
	testutil.AssertEqual(t, "second id", second, LocationID(2))

	loc := g.GetLocationInfo(first)
	if loc == nil {
		t.Fatal("expected location")
	}
	testutil.AssertEqual(t, "name", loc.Name, "Test Forest")
	testutil.AssertEqual(t, "difficulty", loc.DifficultyLevel, uint64(3))
	testutil.AssertEqual(t, "coordinates", loc.Coordinates, Area{X: 50, Y: 50, Radius: 20})
	testutil.AssertEqual(t, "treasure count", loc.TreasureCount, uint64(0))
	testutil.AssertEqual(t, "hidden", loc.IsHidden, false)
	testutil.AssertEqual(t, "discovered by", len(loc.DiscoveredBy), 0)
}

func TestGameState_CreateTreasure_Reward(t *testing.T) {
	tests := map[string]struct {
		treasureType TreasureType
		multiplier   uint64
		expReward    uint64
	}{
		"common single":     {treasureType: TreasureTypeCommon, multiplier: 1, expReward: 1_000_000},
		"rare double":       {treasureType: TreasureTypeRare, multiplier: 2, expReward: 6_000_000},
		"epic triple":       {treasureType: TreasureTypeEpic, multiplier: 3, expReward: 21_000_000},
		"legendary single":  {treasureType: TreasureTypeLegendary, multiplier: 1, expReward: 15_000_000},
		"type zero":         {treasureType: TreasureTypeUnknown, multiplier: 1, expReward: 15_000_000},
		"type out of range": {treasureType: TreasureType(9), multiplier: 2, expReward: 30_000_000},
		"zero multiplier":   {treasureType: TreasureTypeRare, multiplier: 0, expReward: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestState(t)

			id := g.CreateTreasure(coin(tt.treasureType, tt.multiplier, 1))

			tr := g.GetTreasureInfo(id)
			if tr == nil {
				t.Fatal("expected treasure")
			}
			testutil.AssertEqual(t, "id", id, TreasureID(1))
			testutil.AssertEqual(t, "reward", tr.RewardAmount, tt.expReward)
			testutil.AssertEqual(t, "claimed", tr.IsClaimed, false)
			testutil.AssertEqual(t, "discovered by", tr.DiscoveredBy, PlayerID(""))
		})
	}
}

func TestGameState_CreateTreasure_UnknownLocation(t *testing.T) {
	g, _ := newTestState(t)

	p := coin(TreasureTypeCommon, 1, 1)
	p.LocationID = 42
	id := g.CreateTreasure(p)

	testutil.AssertEqual(t, "location", g.GetTreasureInfo(id).LocationID, LocationID(42))
}

func TestGameState_ExploreLocation(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, g *GameState)
		location LocationID
		player   PlayerID
		expErr   error
	}{
		"success": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "explorer")
				g.CreateLocation(forest(1))
			},
			location: 1,
			player:   "explorer",
		},
		"unregistered player": {
			setup: func(t *testing.T, g *GameState) {
				g.CreateLocation(forest(1))
			},
			location: 1,
			player:   "ghost",
			expErr:   ErrPlayerNotRegistered,
		},
		"unregistered player checked before location": {
			location: 7,
			player:   "ghost",
			expErr:   ErrPlayerNotRegistered,
		},
		"unknown location": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "explorer")
			},
			location: 7,
			player:   "explorer",
			expErr:   ErrInvalidLocation,
		},
		"under leveled": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "newbie")
				g.CreateLocation(forest(5))
			},
			location: 1,
			player:   "newbie",
			expErr:   ErrNotAuthorized,
		},
		"out of energy": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "tired")
				g.CreateLocation(forest(1))
				g.players["tired"].Energy = ExploreEnergyCost - 1
			},
			location: 1,
			player:   "tired",
			expErr:   ErrCooldownActive,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestState(t)
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := g.GetPlayerInfo(tt.player)

			msg, err := g.ExploreLocation(tt.location, 25, 25, tt.player)

			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				testutil.AssertEqual(t, "message", msg, "")
				if before != nil {
					after := g.GetPlayerInfo(tt.player)
					testutil.AssertEqual(t, "energy unchanged", after.Energy, before.Energy)
					testutil.AssertEqual(t, "experience unchanged", after.Experience, before.Experience)
					testutil.AssertEqual(t, "location unchanged", after.CurrentLocation, before.CurrentLocation)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "message", msg, ExploreMessage)

			p := g.GetPlayerInfo(tt.player)
			testutil.AssertEqual(t, "current location", p.CurrentLocation, tt.location)
			testutil.AssertEqual(t, "energy", p.Energy, uint64(90))
			testutil.AssertEqual(t, "experience", p.Experience, uint64(50))
			testutil.AssertEqual(t, "last exploration", p.LastExploration, testNow)
			assertLevelInvariant(t, g)
		})
	}
}

func TestGameState_ExploreLocation_DrainsEnergy(t *testing.T) {
	g, _ := newTestState(t)
	mustRegister(t, g, "energetic")
	loc := g.CreateLocation(forest(1))

	for i := 0; i < 10; i++ {
		if _, err := g.ExploreLocation(loc, 95, 95, "energetic"); err != nil {
			t.Fatalf("exploration %d: %v", i+1, err)
		}
		assertLevelInvariant(t, g)
	}
	testutil.AssertEqual(t, "energy", g.GetPlayerInfo("energetic").Energy, uint64(0))

	_, err := g.ExploreLocation(loc, 95, 95, "energetic")
	testutil.AssertEqual(t, "eleventh code", CodeOf(err), CodeCooldownActive)

	p := g.GetPlayerInfo("energetic")
	testutil.AssertEqual(t, "energy after failure", p.Energy, uint64(0))
	testutil.AssertEqual(t, "experience", p.Experience, uint64(500))
}

func TestGameState_ExploreLocation_Event(t *testing.T) {
	g, sink := newTestState(t)
	mustRegister(t, g, "scout")
	loc := g.CreateLocation(forest(1))

	if _, err := g.ExploreLocation(loc, 50, 50, "scout"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := sink.events[len(sink.events)-1]
	testutil.AssertEqual(t, "type", last.Type, EventLocationExplored)
	testutil.AssertEqual(t, "name", last.Name, "Test Forest")
	testutil.AssertEqual(t, "kind", last.Kind, "forest")
}

func TestGameState_ClaimTreasure(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, g *GameState)
		treasure TreasureID
		player   PlayerID
		expErr   error
	}{
		"success": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "hunter")
				g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
			},
			treasure: 1,
			player:   "hunter",
		},
		"unknown treasure": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "hunter")
			},
			treasure: 99,
			player:   "hunter",
			expErr:   ErrTreasureNotFound,
		},
		"unknown treasure checked before player": {
			treasure: 99,
			player:   "ghost",
			expErr:   ErrTreasureNotFound,
		},
		"unregistered player": {
			setup: func(t *testing.T, g *GameState) {
				g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
			},
			treasure: 1,
			player:   "ghost",
			expErr:   ErrPlayerNotRegistered,
		},
		"already claimed": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "first")
				mustRegister(t, g, "hunter")
				g.CreateTreasure(coin(TreasureTypeRare, 1, 1))
				if _, err := g.ClaimTreasure(1, "first"); err != nil {
					t.Fatalf("first claim: %v", err)
				}
			},
			treasure: 1,
			player:   "hunter",
			expErr:   ErrTreasureAlreadyClaimed,
		},
		"under leveled": {
			setup: func(t *testing.T, g *GameState) {
				mustRegister(t, g, "hunter")
				g.CreateTreasure(coin(TreasureTypeRare, 2, 3))
			},
			treasure: 1,
			player:   "hunter",
			expErr:   ErrNotAuthorized,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestState(t)
			if tt.setup != nil {
				tt.setup(t, g)
			}
			beforeStats := g.GetGameStats()

			reward, err := g.ClaimTreasure(tt.treasure, tt.player)

			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				testutil.AssertEqual(t, "reward", reward, uint64(0))
				testutil.AssertEqual(t, "stats unchanged", g.GetGameStats(), beforeStats)
				if p := g.GetPlayerInfo(tt.player); p != nil {
					testutil.AssertEqual(t, "inventory unchanged", p.Inventory.Contains(tt.treasure), false)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "reward", reward, uint64(1_000_000))

			p := g.GetPlayerInfo(tt.player)
			testutil.AssertEqual(t, "treasures found", p.TreasuresFound, uint64(1))
			testutil.AssertEqual(t, "total rewards", p.TotalRewards, uint64(1_000_000))
			testutil.AssertEqual(t, "in inventory", p.Inventory.Contains(tt.treasure), true)
			testutil.AssertEqual(t, "experience", p.Experience, uint64(ClaimExp))

			tr := g.GetTreasureInfo(tt.treasure)
			testutil.AssertEqual(t, "claimed", tr.IsClaimed, true)
			testutil.AssertEqual(t, "discovered by", tr.DiscoveredBy, tt.player)
			testutil.AssertEqual(t, "discovered at", tr.DiscoveredAt, testNow)
			assertLevelInvariant(t, g)
		})
	}
}

func TestGameState_ClaimTreasure_FirstClaimantWins(t *testing.T) {
	g, _ := newTestState(t)
	mustRegister(t, g, "player1")
	mustRegister(t, g, "player2")
	id := g.CreateTreasure(coin(TreasureTypeRare, 1, 1))

	if _, err := g.ClaimTreasure(id, "player1"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := g.ClaimTreasure(id, "player2")
	testutil.AssertEqual(t, "second claim code", CodeOf(err), CodeTreasureAlreadyClaimed)

	p1 := g.GetPlayerInfo("player1")
	p2 := g.GetPlayerInfo("player2")
	testutil.AssertEqual(t, "player1 rewards", p1.TotalRewards, uint64(3_000_000))
	testutil.AssertEqual(t, "player2 rewards", p2.TotalRewards, uint64(0))
	testutil.AssertEqual(t, "player2 inventory", len(p2.Inventory), 0)
	testutil.AssertEqual(t, "discoverer", g.GetTreasureInfo(id).DiscoveredBy, PlayerID("player1"))
}

func TestGameState_Leveling(t *testing.T) {
	g, _ := newTestState(t)
	mustRegister(t, g, "learner")

	for i := 0; i < 5; i++ {
		id := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
		if _, err := g.ClaimTreasure(id, "learner"); err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
	}

	p := g.GetPlayerInfo("learner")
	testutil.AssertEqual(t, "experience", p.Experience, uint64(1000))
	testutil.AssertEqual(t, "level", p.Level, uint64(2))
	testutil.AssertEqual(t, "treasures found", p.TreasuresFound, uint64(5))

	// Level 2 now meets a level 2 requirement.
	gated := g.CreateTreasure(coin(TreasureTypeEpic, 1, 2))
	if _, err := g.ClaimTreasure(gated, "learner"); err != nil {
		t.Fatalf("level gated claim: %v", err)
	}
}

func TestGameState_TransferTreasure(t *testing.T) {
	tests := map[string]struct {
		setup     func(t *testing.T, g *GameState)
		treasure  TreasureID
		recipient PlayerID
		sender    PlayerID
		expErr    error
	}{
		"success": {
			treasure:  1,
			recipient: "trader2",
			sender:    "trader1",
		},
		"unknown sender": {
			treasure:  1,
			recipient: "trader2",
			sender:    "ghost",
			expErr:    ErrPlayerNotRegistered,
		},
		"unknown recipient": {
			treasure:  1,
			recipient: "nonexistent",
			sender:    "trader1",
			expErr:    ErrPlayerNotRegistered,
		},
		"unknown treasure": {
			treasure:  99,
			recipient: "trader2",
			sender:    "trader1",
			expErr:    ErrTreasureNotFound,
		},
		"unclaimed treasure": {
			treasure:  2,
			recipient: "trader2",
			sender:    "trader1",
			expErr:    ErrTreasureNotFound,
		},
		"not owned by sender": {
			treasure:  1,
			recipient: "trader1",
			sender:    "trader2",
			expErr:    ErrTreasureNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestState(t)
			mustRegister(t, g, "trader1")
			mustRegister(t, g, "trader2")
			claimed := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
			g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
			if _, err := g.ClaimTreasure(claimed, "trader1"); err != nil {
				t.Fatalf("claim: %v", err)
			}
			before := g.Snapshot()

			err := g.TransferTreasure(tt.treasure, tt.recipient, tt.sender)

			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				after := g.Snapshot()
				testutil.AssertEqual(t, "trader1 inventory", len(after.Players["trader1"].Inventory), len(before.Players["trader1"].Inventory))
				testutil.AssertEqual(t, "trader2 inventory", len(after.Players["trader2"].Inventory), len(before.Players["trader2"].Inventory))
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			from := g.GetPlayerInfo(tt.sender)
			to := g.GetPlayerInfo(tt.recipient)
			testutil.AssertEqual(t, "sender holds", from.Inventory.Contains(tt.treasure), false)
			testutil.AssertEqual(t, "recipient holds", to.Inventory.Contains(tt.treasure), true)
			testutil.AssertEqual(t, "discoverer unchanged", g.GetTreasureInfo(tt.treasure).DiscoveredBy, tt.sender)

			held := 0
			for _, p := range g.players {
				for _, id := range p.Inventory {
					if id == tt.treasure {
						held++
					}
				}
			}
			testutil.AssertEqual(t, "copies held", held, 1)
		})
	}
}

func TestGameState_TransferTreasure_BackAndForth(t *testing.T) {
	g, sink := newTestState(t)
	mustRegister(t, g, "a")
	mustRegister(t, g, "b")
	id := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
	if _, err := g.ClaimTreasure(id, "a"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	for _, hop := range [][2]PlayerID{{"a", "b"}, {"b", "a"}, {"a", "b"}} {
		if err := g.TransferTreasure(id, hop[1], hop[0]); err != nil {
			t.Fatalf("transfer %s -> %s: %v", hop[0], hop[1], err)
		}
	}

	testutil.AssertEqual(t, "a inventory", len(g.GetPlayerInfo("a").Inventory), 0)
	testutil.AssertEqual(t, "b inventory", len(g.GetPlayerInfo("b").Inventory), 1)

	last := sink.events[len(sink.events)-1]
	testutil.AssertEqual(t, "last event", last.Type, EventTreasureTransferred)
	testutil.AssertEqual(t, "last sender", last.Player, PlayerID("a"))
	testutil.AssertEqual(t, "last recipient", last.Recipient, PlayerID("b"))
}

func TestGameState_Queries_NotFound(t *testing.T) {
	g, _ := newTestState(t)

	if p := g.GetPlayerInfo("nonexistent"); p != nil {
		t.Errorf("expected nil player, got %+v", p)
	}
	if tr := g.GetTreasureInfo(999999); tr != nil {
		t.Errorf("expected nil treasure, got %+v", tr)
	}
	if l := g.GetLocationInfo(999999); l != nil {
		t.Errorf("expected nil location, got %+v", l)
	}
}

func TestGameState_Queries_ReturnCopies(t *testing.T) {
	g, _ := newTestState(t)
	mustRegister(t, g, "owner")
	id := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
	if _, err := g.ClaimTreasure(id, "owner"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	p := g.GetPlayerInfo("owner")
	p.Inventory.Remove(id)
	p.Energy = 0

	fresh := g.GetPlayerInfo("owner")
	testutil.AssertEqual(t, "inventory", fresh.Inventory.Contains(id), true)
	testutil.AssertEqual(t, "energy", fresh.Energy, uint64(MaxEnergy))
}

func TestGameState_GetGameStats(t *testing.T) {
	g, _ := newTestState(t)
	initial := g.GetGameStats()
	testutil.AssertEqual(t, "initial", initial, GameStats{GameActive: true})

	mustRegister(t, g, "statplayer")
	id := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
	g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
	if _, err := g.ClaimTreasure(id, "statplayer"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	g.SetGameActive(false)

	testutil.AssertEqual(t, "updated", g.GetGameStats(), GameStats{
		TotalPlayers:        1,
		TotalTreasuresFound: 1,
		PrizePool:           1_000_000,
		GameActive:          false,
	})
}

func TestGameState_Scenario(t *testing.T) {
	g, _ := newTestState(t)

	if err := g.RegisterPlayer("Alice", "alice123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := g.RegisterPlayer("Alice", "alice123")
	testutil.AssertEqual(t, "duplicate code", CodeOf(err), ErrorCode(102))

	loc := g.CreateLocation(forest(1))
	testutil.AssertEqual(t, "location id", loc, LocationID(1))
	_, err = g.ExploreLocation(loc, 50, 50, "mallory")
	testutil.AssertEqual(t, "unregistered explore code", CodeOf(err), ErrorCode(102))

	tid := g.CreateTreasure(coin(TreasureTypeCommon, 1, 1))
	testutil.AssertEqual(t, "reward", g.GetTreasureInfo(tid).RewardAmount, uint64(1_000_000))

	_, err = g.ClaimTreasure(tid, "mallory")
	testutil.AssertEqual(t, "unregistered claim code", CodeOf(err), ErrorCode(102))

	gated := g.CreateTreasure(coin(TreasureTypeCommon, 1, 4))
	_, err = g.ClaimTreasure(gated, "alice123")
	testutil.AssertEqual(t, "under level claim code", CodeOf(err), ErrorCode(100))

	reward, err := g.ClaimTreasure(tid, "alice123")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	testutil.AssertEqual(t, "claimed reward", reward, uint64(1_000_000))
	testutil.AssertEqual(t, "treasures found", g.GetPlayerInfo("alice123").TreasuresFound, uint64(1))
}

func TestGameState_ListLocations(t *testing.T) {
	g, _ := newTestState(t)
	for _, name := range []string{"a", "b", "c"} {
		p := forest(1)
		p.Name = name
		g.CreateLocation(p)
	}

	entries := g.ListLocations()
	testutil.AssertEqual(t, "count", len(entries), 3)
	for i, e := range entries {
		testutil.AssertEqual(t, "id order", e.ID, LocationID(i+1))
	}
	testutil.AssertEqual(t, "last name", entries[2].Location.Name, "c")
}

func TestGameState_Leaderboard(t *testing.T) {
	g, _ := newTestState(t)
	for _, id := range []PlayerID{"carol", "alice", "bob", "dave"} {
		mustRegister(t, g, id)
	}
	claim := func(tt TreasureType, who PlayerID) {
		t.Helper()
		id := g.CreateTreasure(coin(tt, 1, 1))
		if _, err := g.ClaimTreasure(id, who); err != nil {
			t.Fatalf("claim: %v", err)
		}
	}
	claim(TreasureTypeRare, "bob")
	claim(TreasureTypeCommon, "alice")
	claim(TreasureTypeCommon, "alice")
	claim(TreasureTypeCommon, "alice")
	claim(TreasureTypeCommon, "carol")
	claim(TreasureTypeCommon, "carol")
	claim(TreasureTypeCommon, "carol")

	tests := map[string]struct {
		n   int
		exp []PlayerID
	}{
		"all players":   {n: 0, exp: []PlayerID{"alice", "carol", "bob", "dave"}},
		"top two":       {n: 2, exp: []PlayerID{"alice", "carol"}},
		"more than all": {n: 10, exp: []PlayerID{"alice", "carol", "bob", "dave"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			board := g.Leaderboard(tt.n)
			testutil.AssertEqual(t, "length", len(board), len(tt.exp))
			for i, s := range board {
				testutil.AssertEqual(t, "rank", s.Player, tt.exp[i])
			}
		})
	}
}
