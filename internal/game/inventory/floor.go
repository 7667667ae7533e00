package inventory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// Placed is a pickup lying in the world.
type Placed struct {
	ID       string
	Position weapon.Vec2
	Pickup
}

// Floor tracks the pickups lying in the world.
// It is thread-safe via sync.RWMutex.
type Floor struct {
	mu    sync.RWMutex
	items []Placed
}

// NewFloor creates a Floor with no pickups.
func NewFloor() *Floor {
	return &Floor{}
}

// Drop places p at pos and returns its instance ID.
//
// Postcondition: p is appended to the floor under a fresh ID.
func (f *Floor) Drop(pos weapon.Vec2, p Pickup) string {
	pl := Placed{ID: uuid.NewString(), Position: pos, Pickup: p}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, pl)
	return pl.ID
}

// Take removes and returns the pickup with the given ID.
// Returns false if it is not on the floor.
//
// Postcondition: on failure the floor is unchanged.
func (f *Floor) Take(id string) (Placed, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, pl := range f.items {
		if pl.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return pl, true
		}
	}
	return Placed{}, false
}

// Within returns the pickups no farther than radius from pos, in drop order.
func (f *Floor) Within(pos weapon.Vec2, radius float64) []Placed {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []Placed
	for _, pl := range f.items {
		if pl.Position.Distance(pos) <= radius {
			out = append(out, pl)
		}
	}
	return out
}

// Items returns a snapshot copy of every pickup on the floor.
//
// Postcondition: returned slice is a copy; mutations do not affect internal state.
func (f *Floor) Items() []Placed {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Placed, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of pickups on the floor.
func (f *Floor) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}
