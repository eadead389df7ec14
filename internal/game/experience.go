package game

const (
	// ExpPerLevel is the experience needed for each level after the first.
	ExpPerLevel = 1000

	// ExploreExp is awarded for every successful exploration.
	ExploreExp = 50

	// ClaimExp is awarded for every successful treasure claim.
	ClaimExp = 200
)

// LevelForExp returns the level a player with the given experience holds.
// Level 1 covers 0-999 XP, level 2 covers 1000-1999 XP, and so on.
func LevelForExp(experience uint64) uint64 {
	return experience/ExpPerLevel + 1
}

// ExpToNextLevel returns the remaining XP needed to reach the next level.
func ExpToNextLevel(experience uint64) uint64 {
	return LevelForExp(experience)*ExpPerLevel - experience
}

// gainExp adds experience to the player and recomputes their level.
func (p *Player) gainExp(amount uint64) {
	p.Experience += amount
	p.Level = LevelForExp(p.Experience)
}
