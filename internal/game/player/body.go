package player

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// DefaultMoveSpeed is the walking speed in units per second.
const DefaultMoveSpeed = 5.0

// impulseDrag is the fraction of the kickback velocity lost per second.
const impulseDrag = 5.0

// Body is a minimal kinematic player body implementing weapon.Body.
// Horizontal walking is set each step; kickback impulses add a velocity
// that bleeds off over time.
type Body struct {
	Position weapon.Vec2

	speed     float64
	impulse   weapon.Vec2
	kickbacks int
	logger    *zap.Logger
}

// NewBody returns a Body at the origin walking at speed units per second.
// A non-positive speed selects DefaultMoveSpeed.
func NewBody(speed float64, logger *zap.Logger) *Body {
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Body{speed: speed, logger: logger}
}

// ApplyImpulse adds force to the body's velocity. The body has unit mass.
func (b *Body) ApplyImpulse(force weapon.Vec2) {
	b.impulse = b.impulse.Add(force)
}

// KickbackApplied records a kickback notification.
func (b *Body) KickbackApplied() {
	b.kickbacks++
	b.logger.Debug("kickback received", zap.Int("total", b.kickbacks))
}

// Kickbacks returns the number of kickback notifications received.
func (b *Body) Kickbacks() int { return b.kickbacks }

// Velocity returns the current impulse velocity, excluding walking.
func (b *Body) Velocity() weapon.Vec2 { return b.impulse }

// Step advances the body by dt walking in direction move (-1, 0 or +1).
func (b *Body) Step(dt time.Duration, move float64) {
	s := dt.Seconds()
	if s <= 0 {
		return
	}
	walk := weapon.Vec2{X: clampUnit(move) * b.speed}
	b.Position = b.Position.Add(walk.Add(b.impulse).Scale(s))
	b.impulse = b.impulse.Scale(math.Max(0, 1-impulseDrag*s))
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
