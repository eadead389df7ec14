package game

import "slices"

// Inventory holds the ids of the treasures a player owns, in the order they
// were acquired. An id appears at most once.
type Inventory []TreasureID

// Add appends id to the inventory. Adding an id that is already present is
// a no-op.
func (inv *Inventory) Add(id TreasureID) {
	if inv.Contains(id) {
		return
	}
	*inv = append(*inv, id)
}

// Remove removes id from the inventory.
// Returns false if the id was not held.
func (inv *Inventory) Remove(id TreasureID) bool {
	i := slices.Index(*inv, id)
	if i < 0 {
		return false
	}
	*inv = slices.Delete(*inv, i, i+1)
	return true
}

// Contains checks if the treasure is in the inventory.
func (inv Inventory) Contains(id TreasureID) bool {
	return slices.Contains(inv, id)
}
