// Package player assembles the weapon subsystem around one player: the
// weapon controller, the quick-slot bar, the arm rig, the body and the
// projectile world. It turns raw per-tick input into controller input.
package player

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/arm"
	"github.com/cory-johannsen/armory/internal/game/controller"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// DefaultSlots is the slot count used when Options.Slots is not positive.
const DefaultSlots = 4

// DefaultPickupRadius is the reach used when Options.PickupRadius is not
// positive.
const DefaultPickupRadius = 1.0

// dropDistance is how far in front of the player a dropped pickup lands.
const dropDistance = 2.0

// Options tune a Player.
type Options struct {
	Slots             int
	StartingWeapons   []string
	RecoilDuration    time.Duration
	ArmRecoilDuration time.Duration
	// ArmRest is the arm pivot offset from the body when facing right.
	ArmRest   weapon.Vec3
	MoveSpeed float64
	// PickupRadius is how close the body must be to collect a floor pickup.
	PickupRadius float64
}

// Ports are the presentation collaborators. Every field may be nil.
type Ports struct {
	Audio  weapon.AudioPlayer
	HUD    weapon.HUD
	Slots  inventory.SlotSink
	Damage projectile.DamageHook
}

// Input is the raw input sampled for one tick.
type Input struct {
	// SlotKey is the pressed quick-slot key 1..9, or 0.
	SlotKey int
	// DiscardKey is the quick-slot number 1..9 to discard, or 0.
	DiscardKey  int
	Reload      bool
	FireHeld    bool
	FirePressed bool
	// Move is the horizontal walk direction: -1, 0 or +1.
	Move   float64
	Cursor weapon.Vec3
	// Targets are tested against the projectiles after they move.
	Targets []projectile.Target
}

// Player owns one player's weapon subsystem.
//
// A Player is not safe for concurrent use; the game loop owns it.
type Player struct {
	body   *Body
	rig    *arm.Rig
	world  *projectile.World
	ctrl   *controller.Controller
	bar    *inventory.Bar
	floor  *inventory.Floor
	logger *zap.Logger

	reach  float64
	now    time.Duration
	facing float64
}

// New builds a player armed with profiles.
//
// Precondition: every profile is valid.
// Postcondition: the starting weapons occupy the first slots and the player
// is holstered. Returns an error wrapping controller.ErrNoProfiles when
// profiles is empty, or controller.ErrUnknownWeapon for a starting weapon
// with no profile.
func New(profiles []*weapon.Profile, ports Ports, opts Options, logger *zap.Logger) (*Player, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Slots <= 0 {
		opts.Slots = DefaultSlots
	}
	if opts.PickupRadius <= 0 {
		opts.PickupRadius = DefaultPickupRadius
	}
	body := NewBody(opts.MoveSpeed, logger)
	rig := arm.NewRig(opts.ArmRest, opts.ArmRecoilDuration, logger)
	world := projectile.NewWorld(ports.Damage, logger)

	ctrl, err := controller.New(profiles, weapon.Ports{
		Spawner: world,
		Audio:   ports.Audio,
		HUD:     ports.HUD,
		Arm:     rig,
		Body:    body,
	}, controller.Options{RecoilDuration: opts.RecoilDuration}, logger)
	if err != nil {
		return nil, fmt.Errorf("player: New: %w", err)
	}

	bar := inventory.NewBar(opts.Slots, ctrl, ports.Slots, logger)
	for _, id := range opts.StartingWeapons {
		if !ctrl.Has(id) {
			return nil, fmt.Errorf("player: New: starting weapon %q: %w", id, controller.ErrUnknownWeapon)
		}
		bar.AddWeapon(id)
	}
	bar.Refresh()

	return &Player{
		body:   body,
		rig:    rig,
		world:  world,
		ctrl:   ctrl,
		bar:    bar,
		floor:  inventory.NewFloor(),
		logger: logger,
		reach:  opts.PickupRadius,
		facing: 1,
	}, nil
}

// Controller returns the weapon controller.
func (p *Player) Controller() *controller.Controller { return p.ctrl }

// Bar returns the quick-slot bar.
func (p *Player) Bar() *inventory.Bar { return p.bar }

// World returns the projectile world.
func (p *Player) World() *projectile.World { return p.world }

// Rig returns the arm rig.
func (p *Player) Rig() *arm.Rig { return p.rig }

// Body returns the player body.
func (p *Player) Body() *Body { return p.body }

// Floor returns the pickups lying in the world.
func (p *Player) Floor() *inventory.Floor { return p.floor }

// Facing returns +1 facing right or -1 facing left.
func (p *Player) Facing() float64 { return p.facing }

// Now returns the simulation time of the last Tick.
func (p *Player) Now() time.Duration { return p.now }

// Collect applies a pickup to the bar.
func (p *Player) Collect(pk inventory.Pickup) (bool, error) {
	ok, err := p.bar.Collect(pk)
	if err != nil {
		return false, fmt.Errorf("player: Player.Collect: %w", err)
	}
	return ok, nil
}

// Drop places pk on the floor in front of the player and returns its ID.
func (p *Player) Drop(pk inventory.Pickup) string {
	pos := p.body.Position.Add(weapon.Vec2{X: dropDistance * p.facing})
	id := p.floor.Drop(pos, pk)
	p.logger.Debug("pickup dropped",
		zap.String("id", id),
		zap.String("kind", string(pk.Kind)),
		zap.String("weapon", pk.WeaponID),
	)
	return id
}

// Tick advances the player to now and returns the projectile hits against
// in.Targets.
//
// Order: discard key, slot key, body movement and facing, floor pickups,
// arm aim, controller tick, projectile step, collisions.
//
// Precondition: now is non-decreasing across calls.
func (p *Player) Tick(now time.Duration, in Input) []projectile.Hit {
	dt := now - p.now
	if dt < 0 {
		dt = 0
	}
	p.now = now
	before := p.ctrl.ActiveID()

	if in.DiscardKey != 0 {
		if err := p.bar.DiscardSlot(in.DiscardKey - 1); err != nil {
			p.logger.Debug("discard key ignored", zap.Int("key", in.DiscardKey), zap.Error(err))
		}
	}
	var switchTo string
	if in.SlotKey != 0 {
		id, err := p.bar.SelectSlot(in.SlotKey - 1)
		if err != nil {
			p.logger.Debug("slot key ignored", zap.Int("key", in.SlotKey), zap.Error(err))
		}
		switchTo = id
	}

	p.body.Step(dt, in.Move)
	p.facing = facingFor(in.Cursor.X, p.body.Position.X, in.Move, p.facing)
	p.collectFloor()

	pivot := weapon.Extend(p.body.Position)
	p.rig.Update(now, p.facing, in.Cursor.Sub(pivot).XY().Normalize())
	origin := pivot.Add(p.rig.Offset())

	p.ctrl.Tick(now, controller.Input{
		Switch:      switchTo,
		Reload:      in.Reload,
		FireHeld:    in.FireHeld,
		FirePressed: in.FirePressed,
		Cursor:      in.Cursor,
		Origin:      origin,
		AimRotation: p.rig.Angle(),
		Facing:      p.facing,
	})

	p.world.Step(dt)
	var hits []projectile.Hit
	if len(in.Targets) > 0 {
		hits = p.world.Collide(in.Targets)
	}

	if p.ctrl.ActiveID() != before {
		p.bar.Refresh()
	}
	return hits
}

// collectFloor collects every pickup in reach. A weapon pickup that cannot
// be placed stays on the floor; an invalid pickup is removed.
func (p *Player) collectFloor() {
	for _, pl := range p.floor.Within(p.body.Position, p.reach) {
		ok, err := p.bar.Collect(pl.Pickup)
		if err != nil {
			p.logger.Warn("invalid pickup removed", zap.String("id", pl.ID), zap.Error(err))
			p.floor.Take(pl.ID)
			continue
		}
		if ok {
			p.floor.Take(pl.ID)
		}
	}
}

// facingFor faces the cursor, falling back to the walk direction when the
// cursor is level with the body, and keeps prev when neither decides.
func facingFor(cursorX, bodyX, move, prev float64) float64 {
	switch {
	case cursorX < bodyX:
		return -1
	case cursorX > bodyX:
		return 1
	case move < 0:
		return -1
	case move > 0:
		return 1
	}
	return prev
}
