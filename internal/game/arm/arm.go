// Package arm models the player's weapon arm: the flip-aware aim angle and
// the arm's own recoil displacement.
package arm

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/recoil"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// DefaultRecoilDuration is the arm's settle time when none is configured.
const DefaultRecoilDuration = 100 * time.Millisecond

// recoilShare is the fraction of the requested magnitude the arm applies.
const recoilShare = 0.5

// Rig implements weapon.ArmRecoiler.
//
// Update must be called once per tick before the controller so that recoil
// requests are stamped with the current simulation time.
type Rig struct {
	rest   weapon.Vec3
	decay  *recoil.Decay
	logger *zap.Logger

	now    time.Duration
	facing float64
	angle  float64
}

// NewRig returns a Rig resting at rest whose recoil settles after d.
// A non-positive d selects DefaultRecoilDuration.
func NewRig(rest weapon.Vec3, d time.Duration, logger *zap.Logger) *Rig {
	if logger == nil {
		logger = zap.NewNop()
	}
	if d <= 0 {
		d = DefaultRecoilDuration
	}
	return &Rig{
		rest:   rest,
		decay:  recoil.NewDecay(d),
		logger: logger,
		facing: 1,
	}
}

// Update records the simulation time and recomputes the arm angle for the
// aim direction. Facing left adds 180 degrees so the flipped sprite points
// along the aim.
func (r *Rig) Update(now time.Duration, facing float64, aim weapon.Vec2) {
	r.now = now
	r.facing = 1
	if facing < 0 {
		r.facing = -1
	}
	r.angle = aim.AngleDeg()
	if r.facing < 0 {
		r.angle += 180
	}
}

// Angle returns the arm rotation in degrees computed by the last Update.
func (r *Rig) Angle() float64 { return r.angle }

// Facing returns +1 or -1 as recorded by the last Update.
func (r *Rig) Facing() float64 { return r.facing }

// Offset returns the facing-adjusted rest position plus the decaying recoil.
func (r *Rig) Offset() weapon.Vec3 {
	return r.rest.FlipX(r.facing).Add(r.decay.Offset(r.now))
}

// ApplyRecoil displaces the arm along direction by half of magnitude.
func (r *Rig) ApplyRecoil(direction weapon.Vec2, magnitude float64) {
	kick := weapon.Extend(direction.Normalize().Scale(magnitude * recoilShare))
	r.decay.Kick(r.now, kick)
	r.logger.Debug("arm recoil",
		zap.Float64("magnitude", magnitude),
		zap.Float64("dx", kick.X),
		zap.Float64("dy", kick.Y),
	)
}
