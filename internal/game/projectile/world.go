// Package projectile simulates the projectiles spawned by weapons: straight
// flight, expiry by lifetime or range, and typed hit effects.
package projectile

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// Effect is the secondary effect a projectile type applies on hit.
type Effect string

const (
	EffectNone     Effect = "none"
	EffectFragment Effect = "fragment"
	EffectBurn     Effect = "burn"
	EffectFreeze   Effect = "freeze"
	EffectPierce   Effect = "pierce"
)

// EffectOf returns the hit effect of t and whether the projectile survives
// the hit. Only piercing projectiles survive.
func EffectOf(t weapon.ProjectileType) (Effect, bool) {
	switch t {
	case weapon.ProjectileFragmentation:
		return EffectFragment, false
	case weapon.ProjectileIncendiary:
		return EffectBurn, false
	case weapon.ProjectileFreezing:
		return EffectFreeze, false
	case weapon.ProjectilePiercing:
		return EffectPierce, true
	default:
		return EffectNone, false
	}
}

// Projectile is one live projectile.
type Projectile struct {
	ID       string
	WeaponID string
	Def      weapon.ProjectileDef
	Origin   weapon.Vec2
	Position weapon.Vec2
	Rotation float64
	Velocity weapon.Vec2
	Range    float64
	Age      time.Duration
	// struck holds the IDs of targets already hit; a piercing projectile hits
	// each target once.
	struck map[string]bool
}

// Travelled returns the distance from the spawn point.
func (p *Projectile) Travelled() float64 { return p.Position.Distance(p.Origin) }

func (p *Projectile) expired() bool {
	if p.Def.Lifetime > 0 && p.Age >= p.Def.Lifetime {
		return true
	}
	return p.Range > 0 && p.Travelled() > p.Range
}

// Target is a circular hit area.
type Target struct {
	ID       string
	Position weapon.Vec2
	Radius   float64
}

// Hit is the outcome of one projectile striking one target.
type Hit struct {
	ProjectileID string
	WeaponID     string
	TargetID     string
	Type         weapon.ProjectileType
	Effect       Effect
	// Damage is the damage reported by the DamageHook.
	Damage float64
	// Hits counts the targets the projectile has struck, including this one.
	Hits int
	// Destroyed is true when the projectile was removed by this hit.
	Destroyed bool
}

// DamageHook resolves the damage of a hit. It stands in for the damage
// model, which lives outside this package.
type DamageHook interface {
	Damage(h Hit, base float64) float64
}

// HookFunc adapts a function to DamageHook.
type HookFunc func(h Hit, base float64) float64

// Damage calls f.
func (f HookFunc) Damage(h Hit, base float64) float64 { return f(h, base) }

type baseDamage struct{}

func (baseDamage) Damage(_ Hit, base float64) float64 { return base }

// World owns every live projectile and implements weapon.ProjectileSpawner.
//
// World is safe for concurrent use: the renderer reads snapshots while the
// game loop spawns and steps.
type World struct {
	mu     sync.Mutex
	live   map[string]*Projectile
	hook   DamageHook
	logger *zap.Logger
}

// NewWorld returns an empty World. A nil hook applies each projectile's base
// damage.
func NewWorld(hook DamageHook, logger *zap.Logger) *World {
	if hook == nil {
		hook = baseDamage{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{live: make(map[string]*Projectile), hook: hook, logger: logger}
}

// Spawn creates a projectile from req.
func (w *World) Spawn(req weapon.SpawnRequest) {
	pos := req.Position.XY()
	p := &Projectile{
		ID:       uuid.NewString(),
		WeaponID: req.WeaponID,
		Def:      req.Projectile,
		Origin:   pos,
		Position: pos,
		Rotation: req.Rotation,
		Velocity: req.Velocity,
		Range:    req.Range,
		struck:   make(map[string]bool),
	}
	w.mu.Lock()
	w.live[p.ID] = p
	w.mu.Unlock()
	w.logger.Debug("projectile spawned",
		zap.String("id", p.ID),
		zap.String("weapon", p.WeaponID),
		zap.Float64("rotation", p.Rotation),
	)
}

// Step moves every projectile by dt and removes the ones past their lifetime
// or range.
//
// Postcondition: returns the number of projectiles removed.
func (w *World) Step(dt time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	removed := 0
	for id, p := range w.live {
		p.Position = p.Position.Add(p.Velocity.Scale(dt.Seconds()))
		p.Age += dt
		if p.expired() {
			delete(w.live, id)
			removed++
		}
	}
	return removed
}

// Collide tests every projectile against targets and applies hit effects.
// Projectiles never collide with each other.
//
// Postcondition: hits are ordered by projectile ID then target order; every
// non-piercing projectile that hit something is removed.
func (w *World) Collide(targets []Target) []Hit {
	w.mu.Lock()
	defer w.mu.Unlock()

	var hits []Hit
	for _, id := range w.sortedIDs() {
		p := w.live[id]
		for _, t := range targets {
			if p.struck[t.ID] || p.Position.Distance(t.Position) > t.Radius {
				continue
			}
			effect, survives := EffectOf(p.Def.Type)
			p.struck[t.ID] = true
			h := Hit{
				ProjectileID: p.ID,
				WeaponID:     p.WeaponID,
				TargetID:     t.ID,
				Type:         p.Def.Type,
				Effect:       effect,
				Hits:         len(p.struck),
				Destroyed:    !survives,
			}
			h.Damage = w.hook.Damage(h, p.Def.Damage)
			hits = append(hits, h)
			w.logger.Debug("projectile hit",
				zap.String("id", p.ID),
				zap.String("target", t.ID),
				zap.String("effect", string(effect)),
				zap.Float64("damage", h.Damage),
			)
			if !survives {
				delete(w.live, id)
				break
			}
		}
	}
	return hits
}

// Snapshot returns copies of the live projectiles ordered by ID.
func (w *World) Snapshot() []Projectile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Projectile, 0, len(w.live))
	for _, id := range w.sortedIDs() {
		p := *w.live[id]
		p.struck = nil
		out = append(out, p)
	}
	return out
}

// Len returns the number of live projectiles.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.live)
}

func (w *World) sortedIDs() []string {
	ids := make([]string, 0, len(w.live))
	for id := range w.live {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
