package testutil

import (
	"time"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// Recorder implements every weapon collaborator port and records the calls
// it receives, for assertions in state-machine tests.
type Recorder struct {
	Spawns    []weapon.SpawnRequest
	Sounds    []string
	Readouts  []weapon.Readout
	Clears    int
	Recoils   []RecoilCall
	Impulses  []weapon.Vec2
	Kickbacks int
}

// RecoilCall is one ApplyRecoil invocation.
type RecoilCall struct {
	Direction weapon.Vec2
	Magnitude float64
}

func (r *Recorder) Spawn(req weapon.SpawnRequest) { r.Spawns = append(r.Spawns, req) }
func (r *Recorder) Play(clip string)              { r.Sounds = append(r.Sounds, clip) }
func (r *Recorder) ShowAmmo(ro weapon.Readout)    { r.Readouts = append(r.Readouts, ro) }
func (r *Recorder) Clear()                        { r.Clears++ }
func (r *Recorder) ApplyImpulse(f weapon.Vec2)    { r.Impulses = append(r.Impulses, f) }
func (r *Recorder) KickbackApplied()              { r.Kickbacks++ }

func (r *Recorder) ApplyRecoil(direction weapon.Vec2, magnitude float64) {
	r.Recoils = append(r.Recoils, RecoilCall{Direction: direction, Magnitude: magnitude})
}

// Ports returns a Ports bundle routing every collaborator to r.
func (r *Recorder) Ports() weapon.Ports {
	return weapon.Ports{Spawner: r, Audio: r, HUD: r, Arm: r, Body: r}
}

// CountSound returns how many times clip was played.
func (r *Recorder) CountSound(clip string) int {
	n := 0
	for _, s := range r.Sounds {
		if s == clip {
			n++
		}
	}
	return n
}

// LastReadout returns the most recent HUD readout and whether one exists.
func (r *Recorder) LastReadout() (weapon.Readout, bool) {
	if len(r.Readouts) == 0 {
		return weapon.Readout{}, false
	}
	return r.Readouts[len(r.Readouts)-1], true
}

// PistolProfile returns a valid pistol profile: 10 rounds, 250ms cadence,
// 1.5s reload, 100 in reserve.
func PistolProfile() *weapon.Profile {
	return &weapon.Profile{
		ID:                  "carrion_9mm",
		Name:                "Carrion 9mm",
		Kind:                weapon.KindPistol,
		MagazineCapacity:    10,
		StartingReserve:     100,
		FireInterval:        250 * time.Millisecond,
		ReloadDuration:      1500 * time.Millisecond,
		RecoilForce:         2,
		ArmRecoilMultiplier: 1.5,
		PelletsPerShot:      1,
		ProjectileSpeed:     20,
		ProjectileRange:     15,
		WeaponOffset:        weapon.Vec3{X: 0.4, Y: -0.1},
		MuzzleOffset:        weapon.Vec3{X: 0.5, Y: 0.1},
		Projectile:          weapon.ProjectileDef{Type: weapon.ProjectileNormal, Damage: 10, Scale: 1, Lifetime: 3 * time.Second},
		FireSound:           "pistol_fire",
		ReloadSound:         "pistol_reload",
	}
}

// ShotgunProfile returns a valid shotgun profile: 8 shells, 3 pellets over
// ±10°, 3s reload, 0.5s empty-magazine delay, kickback enabled.
func ShotgunProfile() *weapon.Profile {
	return &weapon.Profile{
		ID:                  "esp_cano_curto",
		Name:                "ESP Cano Curto",
		Kind:                weapon.KindShotgun,
		MagazineCapacity:    8,
		StartingReserve:     40,
		FireInterval:        800 * time.Millisecond,
		ReloadDuration:      3 * time.Second,
		EmptyReloadDelay:    500 * time.Millisecond,
		RecoilForce:         6,
		ArmRecoilMultiplier: 1,
		KickbackForce:       4,
		Kickback:            true,
		SpreadDegrees:       10,
		PelletsPerShot:      3,
		ProjectileSpeed:     18,
		ProjectileRange:     8,
		WeaponOffset:        weapon.Vec3{X: 0.5, Y: -0.1},
		MuzzleOffset:        weapon.Vec3{X: 0.8, Y: 0.05},
		Projectile:          weapon.ProjectileDef{Type: weapon.ProjectileNormal, Damage: 6, Scale: 0.6, Lifetime: 2 * time.Second},
		FireSound:           "shotgun_fire",
		ReloadSound:         "shotgun_shell",
	}
}
