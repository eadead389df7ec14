package game

import "time"

// DefaultRegistrationFee is added to the prize pool for each registration.
const DefaultRegistrationFee = 1_000_000

type GameStateOpt func(*GameState)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) GameStateOpt {
	return func(g *GameState) {
		g.now = now
	}
}

// WithEventSink sets the receiver of transition events.
func WithEventSink(sink EventSink) GameStateOpt {
	return func(g *GameState) {
		if sink == nil {
			sink = nopSink{}
		}
		g.sink = sink
	}
}

// WithRegistrationFee sets the amount each registration adds to the prize
// pool.
func WithRegistrationFee(fee uint64) GameStateOpt {
	return func(g *GameState) {
		g.registrationFee = fee
	}
}
