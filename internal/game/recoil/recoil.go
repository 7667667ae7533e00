// Package recoil animates the transient displacement of a sprite after a shot.
package recoil

import (
	"time"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// Decay interpolates a displacement back to zero over a fixed duration.
// The zero value is at rest.
type Decay struct {
	duration time.Duration
	start    time.Duration
	kick     weapon.Vec3
	active   bool
}

// NewDecay returns a Decay that settles after d.
//
// Precondition: d > 0.
func NewDecay(d time.Duration) *Decay {
	return &Decay{duration: d}
}

// Kick starts a new displacement at now, replacing any displacement in
// progress.
func (d *Decay) Kick(now time.Duration, displacement weapon.Vec3) {
	d.start = now
	d.kick = displacement
	d.active = true
}

// Offset returns the displacement at now and settles the decay once its
// duration has elapsed.
//
// Postcondition: returns the zero vector when not active.
func (d *Decay) Offset(now time.Duration) weapon.Vec3 {
	if !d.active {
		return weapon.Vec3{}
	}
	t := float64(now-d.start) / float64(d.duration)
	if t >= 1 {
		d.active = false
		return weapon.Vec3{}
	}
	if t < 0 {
		t = 0
	}
	return weapon.LerpVec3(d.kick, weapon.Vec3{}, t)
}

// Active reports whether a displacement is still decaying.
func (d *Decay) Active() bool { return d.active }

// Reset returns the decay to rest immediately.
func (d *Decay) Reset() {
	d.active = false
	d.kick = weapon.Vec3{}
}
