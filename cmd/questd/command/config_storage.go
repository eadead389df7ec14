package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
	"github.com/spf13/afero"
)

type StorageConfig struct {
	/* World definitions */
	Locations AssetConfig[*game.LocationSpec] `json:"locations"`
	Treasures AssetConfig[*game.TreasureSpec] `json:"treasures"`

	/* Saved game */
	State StateConfig `json:"state"`
}

func (c *StorageConfig) BuildDictionary(fs afero.Fs) (*game.Dictionary, error) {
	locations, err := c.Locations.BuildFileStore(fs)
	if err != nil {
		return nil, fmt.Errorf("creating location store: %w", err)
	}
	treasures, err := c.Treasures.BuildFileStore(fs)
	if err != nil {
		return nil, fmt.Errorf("creating treasure store: %w", err)
	}

	dict := &game.Dictionary{
		Locations: locations,
		Treasures: treasures,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate(fs afero.Fs) error {
	el := errors.NewErrorList()
	el.Add(c.Locations.Validate(fs, "locations"))
	el.Add(c.Treasures.Validate(fs, "treasures"))
	el.Add(c.State.Validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(fs afero.Fs, name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := fs.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore(fs afero.Fs) (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](fs, c.Path)
}

// StateConfig is where the game snapshot is saved. The directory is created
// on startup if it does not exist.
type StateConfig struct {
	Path string `json:"path"`
}

func (c *StateConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("state: path is required")
	}
	return nil
}

func (c *StateConfig) BuildFileStore(fs afero.Fs) (*storage.FileStore[*game.Snapshot], error) {
	if err := fs.MkdirAll(c.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return storage.NewFileStore[*game.Snapshot](fs, c.Path)
}
