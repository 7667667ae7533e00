// Package controller drives the active weapon once per simulation tick.
//
// The controller owns the active-weapon selection, the delayed reload start
// after an empty magazine, the sprite recoil animation and the fire gate.
// Weapon instances are created on first use and keep their ammunition for the
// rest of the session.
package controller

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/recoil"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

var (
	// ErrNoProfiles is returned by New when no weapon profile is configured.
	ErrNoProfiles = errors.New("no weapon profiles configured")
	// ErrMissingPort is returned by New when a required collaborator is nil.
	ErrMissingPort = errors.New("missing required port")
	// ErrUnknownWeapon is returned for a weapon ID with no registered profile.
	ErrUnknownWeapon = errors.New("unknown weapon")
)

// DefaultRecoilDuration is the time the weapon sprite takes to settle after
// a shot when Options.RecoilDuration is zero.
const DefaultRecoilDuration = 200 * time.Millisecond

// Options tune the controller.
type Options struct {
	RecoilDuration time.Duration
}

// Input is the per-tick input consumed by Tick.
type Input struct {
	// Switch requests a switch to the named weapon. Empty means no request.
	Switch string
	// Reload is the manual reload key.
	Reload bool
	// FireHeld and FirePressed are the continuous and edge trigger states.
	FireHeld    bool
	FirePressed bool
	// Cursor is the cursor position in world coordinates.
	Cursor weapon.Vec3
	// Origin is the weapon's world position.
	Origin weapon.Vec3
	// AimRotation is the arm rotation in degrees.
	AimRotation float64
	// Facing is +1 facing right and -1 facing left. Zero counts as right.
	Facing float64
}

func (in Input) shot() weapon.Shot {
	return weapon.Shot{
		Origin:      in.Origin,
		AimRotation: in.AimRotation,
		Facing:      facingSign(in.Facing),
		Target:      in.Cursor,
	}
}

// Controller selects and drives one active weapon.
//
// A Controller is not safe for concurrent use; the game loop owns it.
type Controller struct {
	registry *weapon.Registry
	ports    weapon.Ports
	logger   *zap.Logger

	weapons map[string]weapon.Weapon
	active  weapon.Weapon

	lastShot time.Duration
	hasFired bool

	delaying   bool
	delayUntil time.Duration

	decay  *recoil.Decay
	offset weapon.Vec3
	aim    weapon.Vec2
}

// New builds a controller over profiles.
//
// Precondition: every profile is valid.
// Postcondition: returns an error wrapping ErrNoProfiles when profiles is
// empty, ErrMissingPort when ports.Spawner or ports.Body is nil, or the
// registry error for a duplicate ID. Missing optional ports are replaced by
// no-ops.
func New(profiles []*weapon.Profile, ports weapon.Ports, opts Options, logger *zap.Logger) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("controller: New: %w", ErrNoProfiles)
	}
	if ports.Spawner == nil {
		return nil, fmt.Errorf("controller: New: projectile spawner: %w", ErrMissingPort)
	}
	if ports.Body == nil {
		return nil, fmt.Errorf("controller: New: player body: %w", ErrMissingPort)
	}
	if ports.HUD == nil {
		logger.Warn("no HUD configured, ammo readout disabled")
	}
	if ports.Audio == nil {
		logger.Warn("no audio player configured, weapon sounds disabled")
	}
	if ports.Arm == nil {
		logger.Warn("no arm rig configured, arm recoil disabled")
	}
	ports = ports.WithDefaults()

	reg := weapon.NewRegistry()
	if err := reg.RegisterAll(profiles); err != nil {
		return nil, fmt.Errorf("controller: New: %w", err)
	}
	if opts.RecoilDuration <= 0 {
		opts.RecoilDuration = DefaultRecoilDuration
	}
	return &Controller{
		registry: reg,
		ports:    ports,
		logger:   logger,
		weapons:  make(map[string]weapon.Weapon, reg.Len()),
		decay:    recoil.NewDecay(opts.RecoilDuration),
	}, nil
}

// Has reports whether id names a configured weapon.
func (c *Controller) Has(id string) bool {
	_, ok := c.registry.Profile(id)
	return ok
}

// Profiles returns the configured profiles in configuration order.
func (c *Controller) Profiles() []*weapon.Profile { return c.registry.All() }

// Weapon returns the instance for id, creating it with a full magazine and
// the profile's starting reserve on first use.
func (c *Controller) Weapon(id string) (weapon.Weapon, error) {
	if w, ok := c.weapons[id]; ok {
		return w, nil
	}
	p, ok := c.registry.Profile(id)
	if !ok {
		return nil, fmt.Errorf("controller: Controller.Weapon: %q: %w", id, ErrUnknownWeapon)
	}
	w, err := weapon.New(p, c.ports, c.logger)
	if err != nil {
		return nil, fmt.Errorf("controller: Controller.Weapon: %w", err)
	}
	c.weapons[id] = w
	c.logger.Debug("weapon instance created", zap.String("weapon", id))
	return w, nil
}

// Active returns the active weapon, or nil when holstered.
func (c *Controller) Active() weapon.Weapon { return c.active }

// ActiveID returns the active weapon's ID, or "" when holstered.
func (c *Controller) ActiveID() string {
	if c.active == nil {
		return ""
	}
	return c.active.Profile().ID
}

// Switch makes id the active weapon.
//
// The previous weapon's reload and any pending delayed start are cancelled.
// Switching to the active weapon is a no-op.
//
// Postcondition: on success the HUD shows the new weapon's readout; an
// automatic reload is armed for the next Tick if its magazine is empty.
func (c *Controller) Switch(id string) error {
	if c.active != nil && c.active.Profile().ID == id {
		return nil
	}
	w, err := c.Weapon(id)
	if err != nil {
		return fmt.Errorf("controller: Controller.Switch: %w", err)
	}
	c.deactivate()
	c.active = w
	w.RefreshHUD()
	c.logger.Info("weapon switched",
		zap.String("weapon", id),
		zap.Int("magazine", w.State().Magazine),
		zap.Int("reserve", w.State().Reserve),
	)
	return nil
}

// Holster puts the active weapon away and clears the HUD.
func (c *Controller) Holster() {
	if c.active == nil {
		return
	}
	c.logger.Info("weapon holstered", zap.String("weapon", c.ActiveID()))
	c.deactivate()
	c.ports.HUD.Clear()
}

func (c *Controller) deactivate() {
	if c.active != nil {
		c.active.CancelReload()
	}
	c.active = nil
	c.delaying = false
	c.decay.Reset()
}

// Phase returns the reload phase of the active weapon, reporting
// PhaseDelayedStart while an empty-magazine delay is pending.
func (c *Controller) Phase() weapon.Phase {
	if c.active == nil {
		return weapon.PhaseIdle
	}
	if c.delaying {
		return weapon.PhaseDelayedStart
	}
	return c.active.State().Phase
}

// WeaponOffset returns the weapon sprite offset computed by the last Tick:
// the facing-adjusted rest offset plus the decaying recoil displacement.
func (c *Controller) WeaponOffset() weapon.Vec3 { return c.offset }

// AimDirection returns the normalized aim direction computed by the last Tick.
func (c *Controller) AimDirection() weapon.Vec2 { return c.aim }

// Tick advances the controller to now.
//
// Order: switch request, recoil decay, manual reload, delayed reload start,
// active reload tick, automatic reload trigger, fire attempt. While a delayed
// start is pending the tick ends after the delay check.
//
// Precondition: now is non-decreasing across calls.
func (c *Controller) Tick(now time.Duration, in Input) {
	shot := in.shot()
	c.aim = shot.AimDirection()

	if in.Switch != "" {
		if err := c.Switch(in.Switch); err != nil {
			c.logger.Warn("switch request rejected", zap.String("weapon", in.Switch), zap.Error(err))
		}
	}

	w := c.active
	if w == nil {
		c.offset = weapon.Vec3{}
		return
	}
	rest := w.Profile().WeaponOffset.FlipX(shot.Facing)
	c.offset = rest.Add(c.decay.Offset(now))

	if in.Reload {
		if c.delaying {
			c.logger.Debug("manual reload cancels delayed start")
		}
		c.delaying = false
		w.StartReload(now)
	}

	if c.delaying {
		if now < c.delayUntil {
			return
		}
		c.delaying = false
		w.StartReload(now)
	}

	w.TickReload(now)

	c.triggerAutoReload(now, w)

	if in.FireHeld || in.FirePressed {
		c.tryFire(now, w, shot, rest)
	}
}

func (c *Controller) triggerAutoReload(now time.Duration, w weapon.Weapon) {
	st := w.State()
	if st.Magazine > 0 || st.Reserve <= 0 || st.Phase != weapon.PhaseIdle || c.delaying {
		return
	}
	if delay := w.Profile().EmptyReloadDelay; delay > 0 {
		c.delaying = true
		c.delayUntil = now + delay
		c.logger.Debug("reload start delayed", zap.Duration("delay", delay))
		return
	}
	w.StartReload(now)
}

func (c *Controller) tryFire(now time.Duration, w weapon.Weapon, shot weapon.Shot, rest weapon.Vec3) {
	last := c.lastShot
	if !c.hasFired {
		last = now - w.Profile().FireInterval
	}
	if !w.CanFire(now, last) {
		return
	}
	aim, ok := w.Fire(shot)
	if !ok {
		return
	}
	c.lastShot = now
	c.hasFired = true

	kick := weapon.Extend(aim.Neg().Scale(w.Profile().RecoilDistance()))
	c.decay.Kick(now, kick)
	c.offset = rest.Add(kick)
}

func facingSign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
