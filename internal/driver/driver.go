package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 5
)

// Manager is a component with periodic work, such as saving state.
type Manager interface {
	Tick(context.Context) error
}

// QuestDriver ticks its managers at a fixed interval.
type QuestDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewQuestDriver(managers []Manager, opts ...QuestDriverOpt) *QuestDriver {
	d := &QuestDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until ctx is done. A failing manager is logged and retried on
// the next tick.
func (d *QuestDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				slog.ErrorContext(ctx, "driver tick failed", "error", err)
			}
		}
	}
}

// Tick runs every manager once and returns the first error. Later managers
// still run when an earlier one fails.
func (d *QuestDriver) Tick(ctx context.Context) error {
	var firstErr error
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
