package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/ledger"
	"github.com/spf13/afero"
)

type Config struct {
	TickInterval    string        `json:"tick_interval"`
	Admins          []string      `json:"admins"`
	RegistrationFee *uint64       `json:"registration_fee"`
	Storage         StorageConfig `json:"storage"`
	Nats            NatsConfig    `json:"nats"`

	fs afero.Fs
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if len(c.Admins) == 0 {
		el.Add(fmt.Errorf("at least one admin is required"))
	}
	for i, a := range c.Admins {
		if a == "" {
			el.Add(fmt.Errorf("admin %d is empty", i))
		}
	}

	el.Add(c.Storage.validate(c.filesystem()))
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) filesystem() afero.Fs {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	return c.fs
}

func (c *Config) tickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	return d, nil
}

func (c *Config) gameStateOpts(sink game.EventSink) []game.GameStateOpt {
	opts := []game.GameStateOpt{game.WithEventSink(sink)}
	if c.RegistrationFee != nil {
		opts = append(opts, game.WithRegistrationFee(*c.RegistrationFee))
	}
	return opts
}

func (c *Config) handlerOpts() []ledger.HandlerOpt {
	admins := make([]game.PlayerID, len(c.Admins))
	for i, a := range c.Admins {
		admins[i] = game.PlayerID(a)
	}
	return []ledger.HandlerOpt{ledger.WithAdmins(admins...)}
}
