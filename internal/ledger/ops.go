package ledger

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// Operation names.
const (
	OpRegisterPlayer   = "register_player"
	OpCreateLocation   = "create_location"
	OpCreateTreasure   = "create_treasure"
	OpExploreLocation  = "explore_location"
	OpClaimTreasure    = "claim_treasure"
	OpTransferTreasure = "transfer_treasure"
	OpSetGameActive    = "set_game_active"
	OpGetPlayerInfo    = "get_player_info"
	OpGetTreasureInfo  = "get_treasure_info"
	OpGetLocationInfo  = "get_location_info"
	OpGetGameStats     = "get_game_stats"
	OpListLocations    = "list_locations"
	OpLeaderboard      = "leaderboard"
)

type RegisterPlayerArgs struct {
	Username string `json:"username"`
}

type ExploreLocationArgs struct {
	LocationID game.LocationID `json:"location_id"`
	X          int64           `json:"x"`
	Y          int64           `json:"y"`
}

type TreasureArgs struct {
	TreasureID game.TreasureID `json:"treasure_id"`
}

type TransferTreasureArgs struct {
	TreasureID game.TreasureID `json:"treasure_id"`
	Recipient  game.PlayerID   `json:"recipient"`
}

type SetGameActiveArgs struct {
	Active bool `json:"active"`
}

// PlayerArgs selects a player; an empty Player means the sender.
type PlayerArgs struct {
	Player game.PlayerID `json:"player"`
}

type LocationArgs struct {
	LocationID game.LocationID `json:"location_id"`
}

type LeaderboardArgs struct {
	Limit int `json:"limit"`
}

// PlayerView is the value of a get_player_info receipt.
type PlayerView struct {
	*game.Player
	ExpToNextLevel uint64 `json:"exp_to_next_level"`
}

// ClaimResult is the value of a successful claim_treasure receipt.
type ClaimResult struct {
	TreasureID game.TreasureID `json:"treasure_id"`
	Reward     uint64          `json:"reward"`
}

func registerBuiltins(h *Handler) {
	builtins := map[string]Operation{
		OpRegisterPlayer:   {Exec: registerPlayer},
		OpCreateLocation:   {Admin: true, Exec: createLocation},
		OpCreateTreasure:   {Admin: true, Exec: createTreasure},
		OpExploreLocation:  {Exec: exploreLocation},
		OpClaimTreasure:    {Exec: claimTreasure},
		OpTransferTreasure: {Exec: transferTreasure},
		OpSetGameActive:    {Admin: true, Exec: setGameActive},
		OpGetPlayerInfo:    {Exec: getPlayerInfo},
		OpGetTreasureInfo:  {Exec: getTreasureInfo},
		OpGetLocationInfo:  {Exec: getLocationInfo},
		OpGetGameStats:     {Exec: getGameStats},
		OpListLocations:    {Exec: listLocations},
		OpLeaderboard:      {Exec: leaderboard},
	}
	for name, op := range builtins {
		// Names are unique constants; Register only fails on duplicates.
		_ = h.Register(name, op)
	}
}

func registerPlayer(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[RegisterPlayerArgs](tx)
	if err != nil {
		return nil, err
	}
	if args.Username == "" {
		return nil, NewUserError("username is required")
	}
	if err := g.RegisterPlayer(args.Username, tx.Sender); err != nil {
		return nil, err
	}
	return true, nil
}

func createLocation(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[game.LocationParams](tx)
	if err != nil {
		return nil, err
	}
	return g.CreateLocation(args), nil
}

func createTreasure(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[game.TreasureParams](tx)
	if err != nil {
		return nil, err
	}
	if args.RarityMultiplier == 0 {
		return nil, NewUserError("rarity_multiplier must be positive")
	}
	// A single reward always fits in a uint64. A player's total_rewards is a
	// plain sum of claimed rewards and is not bounded here.
	if _, ok := args.TreasureType.Reward(args.RarityMultiplier); !ok {
		return nil, NewUserError(fmt.Sprintf("rarity_multiplier %d overflows the reward", args.RarityMultiplier))
	}
	return g.CreateTreasure(args), nil
}

func exploreLocation(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[ExploreLocationArgs](tx)
	if err != nil {
		return nil, err
	}
	return g.ExploreLocation(args.LocationID, args.X, args.Y, tx.Sender)
}

func claimTreasure(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[TreasureArgs](tx)
	if err != nil {
		return nil, err
	}
	reward, err := g.ClaimTreasure(args.TreasureID, tx.Sender)
	if err != nil {
		return nil, err
	}
	return ClaimResult{TreasureID: args.TreasureID, Reward: reward}, nil
}

func transferTreasure(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[TransferTreasureArgs](tx)
	if err != nil {
		return nil, err
	}
	if err := g.TransferTreasure(args.TreasureID, args.Recipient, tx.Sender); err != nil {
		return nil, err
	}
	return true, nil
}

func setGameActive(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[SetGameActiveArgs](tx)
	if err != nil {
		return nil, err
	}
	g.SetGameActive(args.Active)
	return args.Active, nil
}

func getPlayerInfo(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[PlayerArgs](tx)
	if err != nil {
		return nil, err
	}
	id := args.Player
	if id == "" {
		id = tx.Sender
	}
	p := g.GetPlayerInfo(id)
	if p == nil {
		return nil, nil
	}
	return PlayerView{Player: p, ExpToNextLevel: game.ExpToNextLevel(p.Experience)}, nil
}

func getTreasureInfo(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[TreasureArgs](tx)
	if err != nil {
		return nil, err
	}
	if t := g.GetTreasureInfo(args.TreasureID); t != nil {
		return t, nil
	}
	return nil, nil
}

func getLocationInfo(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[LocationArgs](tx)
	if err != nil {
		return nil, err
	}
	if l := g.GetLocationInfo(args.LocationID); l != nil {
		return l, nil
	}
	return nil, nil
}

func getGameStats(_ context.Context, g *game.GameState, _ *Tx) (any, error) {
	return g.GetGameStats(), nil
}

func listLocations(_ context.Context, g *game.GameState, _ *Tx) (any, error) {
	return g.ListLocations(), nil
}

func leaderboard(_ context.Context, g *game.GameState, tx *Tx) (any, error) {
	args, err := decodePayload[LeaderboardArgs](tx)
	if err != nil {
		return nil, err
	}
	return g.Leaderboard(args.Limit), nil
}
