package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-quest/internal/storage"
)

// Dictionary holds the world definition stores used to seed a new game.
type Dictionary struct {
	Locations storage.Storer[*LocationSpec]
	Treasures storage.Storer[*TreasureSpec]
}

// Resolve checks that every treasure refers to a known location.
func (d *Dictionary) Resolve() error {
	for id, t := range d.Treasures.GetAll() {
		if d.Locations.Get(t.Location) == nil {
			return fmt.Errorf("treasure %s: location %q not found", id, t.Location)
		}
	}
	return nil
}

// Seed creates every location and treasure in the dictionary, in asset id
// order, and returns the location id each location asset was given.
func (d *Dictionary) Seed(g *GameState) (map[string]LocationID, error) {
	if err := d.Resolve(); err != nil {
		return nil, err
	}

	locs := d.Locations.GetAll()
	ids := make(map[string]LocationID, len(locs))
	for _, key := range slices.Sorted(maps.Keys(locs)) {
		ids[key] = g.CreateLocation(locs[key].Params())
	}

	treasures := d.Treasures.GetAll()
	for _, key := range slices.Sorted(maps.Keys(treasures)) {
		t := treasures[key]
		g.CreateTreasure(t.Params(ids[t.Location]))
	}

	return ids, nil
}
