package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-quest/internal/driver"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/ledger"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/storage"
	"github.com/pixil98/go-service"
	"github.com/spf13/afero"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	return buildWorkers(context.Background(), cfg, cfg.filesystem())
}

func buildWorkers(ctx context.Context, cfg *Config, fs afero.Fs) (service.WorkerList, error) {
	// Create the message broker first so the game can publish events to it
	server, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	notifier, err := messaging.NewNotifier(messaging.DefaultNotices)
	if err != nil {
		return nil, fmt.Errorf("creating notifier: %w", err)
	}
	sink := messaging.NewEventPublisher(server, notifier)

	// Load the saved game, or seed a new one from the world definitions
	stateStore, err := cfg.Storage.State.BuildFileStore(fs)
	if err != nil {
		return nil, fmt.Errorf("creating state store: %w", err)
	}
	state, err := loadGameState(ctx, cfg, fs, stateStore, sink)
	if err != nil {
		return nil, err
	}

	handler := ledger.NewHandler(state, append(cfg.handlerOpts(), ledger.WithStore(stateStore))...)

	// Setup the quest driver
	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}
	drv := driver.NewQuestDriver([]driver.Manager{handler}, driver.WithTickLength(tick))

	// Create a worker list
	return service.WorkerList{
		"nats":    server,
		"gateway": messaging.NewGateway(server, handler),
		"ledger":  handler,
		"driver":  drv,
	}, nil
}

func loadGameState(ctx context.Context, cfg *Config, fs afero.Fs, store storage.Storer[*game.Snapshot], sink game.EventSink) (*game.GameState, error) {
	if snap := store.Get(ledger.StateKey); snap != nil {
		slog.InfoContext(ctx, "restoring saved game",
			"players", len(snap.Players),
			"locations", len(snap.Locations),
			"treasures", len(snap.Treasures))
		return game.Restore(snap, cfg.gameStateOpts(sink)...), nil
	}

	dict, err := cfg.Storage.BuildDictionary(fs)
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	state := game.NewGameState(cfg.gameStateOpts(sink)...)
	ids, err := dict.Seed(state)
	if err != nil {
		return nil, fmt.Errorf("seeding game: %w", err)
	}
	slog.InfoContext(ctx, "seeded new game", "locations", len(ids), "treasures", len(dict.Treasures.GetAll()))

	return state, nil
}
