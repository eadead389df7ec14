package game

// GameStats summarizes the game. It is computed from the live state on
// every call.
type GameStats struct {
	TotalPlayers        uint64 `json:"total_players"`
	TotalTreasuresFound uint64 `json:"total_treasures_found"`
	PrizePool           uint64 `json:"prize_pool"`
	GameActive          bool   `json:"game_active"`
}

// GetGameStats returns the current game statistics.
func (g *GameState) GetGameStats() GameStats {
	var found uint64
	for _, t := range g.treasures {
		if t.IsClaimed {
			found++
		}
	}

	return GameStats{
		TotalPlayers:        g.totalPlayers,
		TotalTreasuresFound: found,
		PrizePool:           g.prizePool,
		GameActive:          g.gameActive,
	}
}
