// Package replay drives a player from a YAML input script without a
// terminal, for regression runs and balancing.
package replay

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// ErrInvalidScript is wrapped by every script validation error.
var ErrInvalidScript = errors.New("invalid replay script")

// Step is the input applied at one moment of a replay. Held fire, walking
// and the cursor persist until a later step changes them; every other field
// applies to the single tick at or after At.
type Step struct {
	At      time.Duration `yaml:"at"`
	Slot    int           `yaml:"slot"`
	Discard int           `yaml:"discard"`
	Reload  bool          `yaml:"reload"`
	// Fire is a single trigger press.
	Fire bool `yaml:"fire"`
	// Hold starts or stops continuous fire.
	Hold   *bool             `yaml:"hold"`
	Move   *float64          `yaml:"move"`
	Cursor *weapon.Vec2      `yaml:"cursor"`
	Pickup *inventory.Pickup `yaml:"pickup"`
}

// TargetSpec is a stationary target.
type TargetSpec struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// FloorSpec is a pickup lying on the ground when the replay starts.
type FloorSpec struct {
	X                float64 `yaml:"x"`
	Y                float64 `yaml:"y"`
	inventory.Pickup `yaml:",inline"`
}

// Script is a replay file.
type Script struct {
	// Tick is the simulation step. Zero defers to the session tick rate.
	Tick time.Duration `yaml:"tick"`
	// Duration is the simulated time to run for.
	Duration time.Duration `yaml:"duration"`
	// Cursor is the initial cursor position.
	Cursor  weapon.Vec2  `yaml:"cursor"`
	Targets []TargetSpec `yaml:"targets"`
	Floor   []FloorSpec  `yaml:"floor"`
	Steps   []Step       `yaml:"steps"`
}

// Validate checks the script's invariants and sorts Steps by At.
//
// Postcondition: returns nil or an error wrapping ErrInvalidScript that lists
// every violation.
func (s *Script) Validate() error {
	var errs []error
	if s.Tick < 0 {
		errs = append(errs, fmt.Errorf("tick must be >= 0, got %s", s.Tick))
	}
	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be > 0, got %s", s.Duration))
	}
	seen := make(map[string]bool, len(s.Targets))
	for i, t := range s.Targets {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: id must not be empty", i))
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("targets[%d]: duplicate id %q", i, t.ID))
		}
		seen[t.ID] = true
		if t.Radius <= 0 {
			errs = append(errs, fmt.Errorf("targets[%d]: radius must be > 0, got %v", i, t.Radius))
		}
	}
	for i, f := range s.Floor {
		if f.Kind != inventory.PickupAmmo && f.Kind != inventory.PickupWeapon {
			errs = append(errs, fmt.Errorf("floor[%d]: unknown pickup kind %q", i, f.Kind))
		}
	}
	for i, st := range s.Steps {
		if st.At < 0 {
			errs = append(errs, fmt.Errorf("steps[%d]: at must be >= 0, got %s", i, st.At))
		}
		if st.Slot < 0 || st.Slot > 9 {
			errs = append(errs, fmt.Errorf("steps[%d]: slot must be 0-9, got %d", i, st.Slot))
		}
		if st.Discard < 0 || st.Discard > 9 {
			errs = append(errs, fmt.Errorf("steps[%d]: discard must be 0-9, got %d", i, st.Discard))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return nil
}

// targets converts the specs to projectile targets.
func (s *Script) targets() []projectile.Target {
	out := make([]projectile.Target, len(s.Targets))
	for i, t := range s.Targets {
		out[i] = projectile.Target{ID: t.ID, Position: weapon.Vec2{X: t.X, Y: t.Y}, Radius: t.Radius}
	}
	return out
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: Parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("replay: Parse: %w", err)
	}
	return &s, nil
}

// Load reads and validates the script at path.
//
// Precondition: path names a readable YAML file.
// Postcondition: returns a valid Script or a non-nil error.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: Load: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("replay: Load %q: %w", path, err)
	}
	return s, nil
}
