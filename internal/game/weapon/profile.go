// Package weapon provides weapon profiles, the per-instance firing and reload
// state machines, and the collaborator ports those state machines drive.
package weapon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind selects the reload protocol and firing eligibility of a weapon.
type Kind string

const (
	// KindPistol reloads the whole magazine at once after a delayed cue.
	KindPistol Kind = "pistol"
	// KindShotgun reloads one round at a time and may fire mid-reload.
	KindShotgun Kind = "shotgun"
)

// HUDIndex returns the numeric kind reported to the HUD (0 pistol, 1 shotgun).
func (k Kind) HUDIndex() int {
	if k == KindShotgun {
		return 1
	}
	return 0
}

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool {
	return k == KindPistol || k == KindShotgun
}

// ProjectileType selects the collision behaviour of spawned projectiles.
type ProjectileType string

const (
	ProjectileNormal        ProjectileType = "normal"
	ProjectileFragmentation ProjectileType = "fragmentation"
	ProjectileIncendiary    ProjectileType = "incendiary"
	ProjectileFreezing      ProjectileType = "freezing"
	// ProjectilePiercing keeps flying after a hit.
	ProjectilePiercing ProjectileType = "piercing"
)

// Valid reports whether t names a known projectile type.
func (t ProjectileType) Valid() bool {
	switch t {
	case ProjectileNormal, ProjectileFragmentation, ProjectileIncendiary, ProjectileFreezing, ProjectilePiercing:
		return true
	}
	return false
}

// ProjectileDef describes the projectile a weapon spawns.
type ProjectileDef struct {
	Type     ProjectileType `yaml:"type"`
	Damage   float64        `yaml:"damage"`
	Scale    float64        `yaml:"scale"`
	Lifetime time.Duration  `yaml:"lifetime"` // 0 = bounded by range only
}

// Profile is the immutable configuration of one weapon archetype, loaded
// from YAML and shared read-only by weapon instances.
type Profile struct {
	ID                  string        `yaml:"id"`
	Name                string        `yaml:"name"`
	Kind                Kind          `yaml:"kind"`
	MagazineCapacity    int           `yaml:"magazine_capacity"`
	StartingReserve     int           `yaml:"starting_reserve"`
	FireInterval        time.Duration `yaml:"fire_interval"`
	ReloadDuration      time.Duration `yaml:"reload_duration"`
	EmptyReloadDelay    time.Duration `yaml:"empty_reload_delay"` // applied when a reload starts on an empty magazine
	RecoilForce         float64       `yaml:"recoil_force"`
	ArmRecoilMultiplier float64       `yaml:"arm_recoil_multiplier"`
	KickbackForce       float64       `yaml:"kickback_force"`
	Kickback            bool          `yaml:"kickback"`
	SpreadDegrees       float64       `yaml:"spread_degrees"`
	PelletsPerShot      int           `yaml:"pellets_per_shot"`
	ProjectileSpeed     float64       `yaml:"projectile_speed"`
	ProjectileRange     float64       `yaml:"projectile_range"`
	SpriteRotation      float64       `yaml:"sprite_rotation"`
	WeaponOffset        Vec3          `yaml:"weapon_offset"`
	MuzzleOffset        Vec3          `yaml:"muzzle_offset"`
	Projectile          ProjectileDef `yaml:"projectile"`
	FireSound           string        `yaml:"fire_sound"`
	ReloadSound         string        `yaml:"reload_sound"`
	Sprite              string        `yaml:"sprite"`
}

// RecoilDistance is the visual displacement of the weapon sprite on firing.
func (p *Profile) RecoilDistance() float64 {
	return p.RecoilForce * recoilScale
}

// ArmRecoil is the magnitude sent to the arm collaborator on firing.
func (p *Profile) ArmRecoil() float64 {
	return p.RecoilForce * recoilScale * p.ArmRecoilMultiplier
}

// recoilScale converts profile recoil force into world units.
const recoilScale = 0.05

// Validate checks that the Profile satisfies its invariants.
// Precondition: p is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (p *Profile) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !p.Kind.Valid() {
		errs = append(errs, fmt.Errorf("Kind must be %q or %q, got %q", KindPistol, KindShotgun, p.Kind))
	}
	if p.MagazineCapacity <= 0 {
		errs = append(errs, errors.New("MagazineCapacity must be > 0"))
	}
	if p.StartingReserve < 0 {
		errs = append(errs, errors.New("StartingReserve must be >= 0"))
	}
	if p.FireInterval < 0 || p.ReloadDuration < 0 || p.EmptyReloadDelay < 0 {
		errs = append(errs, errors.New("durations must be >= 0"))
	}
	if p.PelletsPerShot < 1 {
		errs = append(errs, errors.New("PelletsPerShot must be >= 1"))
	}
	if !p.Projectile.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown projectile type %q", p.Projectile.Type))
	}
	if p.Projectile.Lifetime < 0 {
		errs = append(errs, errors.New("projectile Lifetime must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("profile validation failed: %v", errs)
	}
	return nil
}

// LoadProfiles reads all *.yaml files from dir in lexicographic order, parses
// each as a Profile, validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Profiles or the first encountered error.
func LoadProfiles(dir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadProfiles: cannot read directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	profiles := make([]*Profile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		p, err := LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadProfile reads and validates a single profile file.
//
// Precondition: path names a readable YAML file.
// Postcondition: returns a valid Profile or a non-nil error.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadProfiles: cannot read file %q: %w", path, err)
	}
	p := &Profile{
		PelletsPerShot: 1,
		Projectile:     ProjectileDef{Type: ProjectileNormal, Scale: 1},
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("LoadProfiles: cannot parse file %q: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("LoadProfiles: invalid profile in %q: %w", path, err)
	}
	return p, nil
}
