package weapon

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Phase is the reload phase of a weapon.
type Phase int

const (
	// PhaseIdle means no reload is in progress.
	PhaseIdle Phase = iota
	// PhaseReloading means a reload protocol is advancing on each tick.
	PhaseReloading
	// PhaseDelayedStart means the controller is waiting out EmptyReloadDelay
	// before starting a reload. Weapons never report it themselves.
	PhaseDelayedStart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReloading:
		return "reloading"
	case PhaseDelayedStart:
		return "delayed_start"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of a weapon's mutable runtime state.
type State struct {
	Magazine        int
	Reserve         int
	Phase           Phase
	ReloadStartedAt time.Duration
	// RoundsLoaded and RoundsNeeded are only tracked by incremental reloads.
	RoundsLoaded int
	RoundsNeeded int
}

// Weapon is the capability set the controller drives. Implementations are
// Pistol and Shotgun, selected by the profile Kind.
//
// Times are simulation time measured from session start.
type Weapon interface {
	Profile() *Profile
	Kind() Kind
	State() State

	// CanFire reports whether a trigger pull at now would fire.
	CanFire(now, lastShot time.Duration) bool
	// Fire spawns the pellets of one trigger pull and consumes one round.
	// Returns the aim direction and false when the magazine is empty.
	Fire(shot Shot) (Vec2, bool)

	// StartReload begins a reload from Idle. Returns false when the reload
	// was not started: already reloading, no reserve, or magazine full.
	StartReload(now time.Duration) bool
	// TickReload advances an in-progress reload. No-op when Idle.
	TickReload(now time.Duration)
	// CancelReload returns the weapon to Idle and forgets reload progress.
	CancelReload()

	// AddReserve adds n rounds to the reserve.
	//
	// Precondition: n >= 0.
	AddReserve(n int)
	// RefreshHUD pushes the current readout to the HUD.
	RefreshHUD()
}

// New creates a weapon instance for p with a full magazine and
// p.StartingReserve rounds in reserve.
//
// Precondition: p is valid (see Profile.Validate).
// Postcondition: returns a Pistol or Shotgun matching p.Kind, or an error for
// an unknown kind.
func New(p *Profile, ports Ports, logger *zap.Logger) (Weapon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := core{
		profile:  p,
		ports:    ports.WithDefaults(),
		logger:   logger.With(zap.String("weapon", p.ID)),
		magazine: p.MagazineCapacity,
		reserve:  p.StartingReserve,
	}
	switch p.Kind {
	case KindPistol:
		return &Pistol{core: c}, nil
	case KindShotgun:
		return &Shotgun{core: c}, nil
	default:
		return nil, fmt.Errorf("weapon: New: unknown kind %q for profile %q", p.Kind, p.ID)
	}
}

// core holds the state and behaviour common to every weapon kind.
type core struct {
	profile *Profile
	ports   Ports
	logger  *zap.Logger

	magazine        int
	reserve         int
	phase           Phase
	reloadStartedAt time.Duration
}

func (c *core) Profile() *Profile { return c.profile }

func (c *core) Kind() Kind { return c.profile.Kind }

func (c *core) AddReserve(n int) {
	if n < 0 {
		panic(fmt.Sprintf("weapon: AddReserve: n must be >= 0, got %d", n))
	}
	c.reserve += n
}

func (c *core) RefreshHUD() {
	c.ports.HUD.ShowAmmo(Readout{
		Current:  c.magazine,
		Capacity: c.profile.MagazineCapacity,
		Reserve:  c.reserve,
		Name:     c.profile.Name,
		Kind:     c.profile.Kind.HUDIndex(),
	})
}

// cadenceReady reports whether the fire interval has elapsed since lastShot.
func (c *core) cadenceReady(now, lastShot time.Duration) bool {
	return now >= lastShot+c.profile.FireInterval
}

// canStartReload applies the shared guard conditions and logs the reason a
// reload cannot start.
func (c *core) canStartReload() bool {
	if c.phase == PhaseReloading {
		return false
	}
	if c.reserve <= 0 {
		c.logger.Debug("no reserve ammunition to reload")
		return false
	}
	if c.magazine >= c.profile.MagazineCapacity {
		c.logger.Debug("magazine already full")
		return false
	}
	return true
}

func (c *core) Fire(shot Shot) (Vec2, bool) {
	if c.magazine <= 0 {
		c.logger.Debug("trigger pulled on empty magazine")
		return Vec2{}, false
	}
	p := c.profile
	c.ports.Audio.Play(p.FireSound)

	aim := shot.AimDirection()
	c.ports.Arm.ApplyRecoil(aim.Neg(), p.ArmRecoil())
	if p.Kickback {
		c.ports.Body.ApplyImpulse(aim.Neg().Scale(p.KickbackForce))
		c.ports.Body.KickbackApplied()
	}

	for _, req := range SpreadPattern(p, shot) {
		c.ports.Spawner.Spawn(req)
	}

	c.magazine--
	c.RefreshHUD()
	return aim, true
}
