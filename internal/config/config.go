// Package config provides Viper-based configuration loading for the armory
// weapon sandbox.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxSlots is the number of quick-slot keys (1..9) the input layer exposes.
const MaxSlots = 9

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a file path, "stdout" or "stderr". The interactive session
	// owns the terminal, so it should log to a file.
	Output string `mapstructure:"output"`
}

// ContentConfig locates the data files loaded at startup.
type ContentConfig struct {
	// WeaponsDir holds one YAML file per weapon profile.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// ScriptsDir holds the Lua hook scripts. Empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// InstructionLimit caps the opcodes a single hook call may execute.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// SessionConfig holds the per-session simulation settings.
type SessionConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// Slots is the number of unlocked quick slots.
	Slots int `mapstructure:"slots"`
	// StartingWeapons lists profile IDs placed in the bar at session start.
	StartingWeapons []string `mapstructure:"starting_weapons"`
	// RecoilDuration is how long the weapon sprite takes to settle after a shot.
	RecoilDuration time.Duration `mapstructure:"recoil_duration"`
	// ArmRecoilDuration is how long the arm takes to settle after a shot.
	ArmRecoilDuration time.Duration `mapstructure:"arm_recoil_duration"`
	// PickupRadius is how close the player must walk to a floor pickup to
	// collect it.
	PickupRadius float64 `mapstructure:"pickup_radius"`
}

// TickInterval returns the simulation step length.
//
// Precondition: TickRate > 0.
func (s SessionConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

// HUDConfig holds terminal HUD settings.
type HUDConfig struct {
	// Width is the number of columns the ammo and slot bar may use.
	Width int `mapstructure:"width"`
}

// AudioConfig holds cue synthesis settings.
type AudioConfig struct {
	// SampleRate is the mixer sample rate in Hz.
	SampleRate int `mapstructure:"sample_rate"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Session SessionConfig `mapstructure:"session"`
	HUD     HUDConfig     `mapstructure:"hud"`
	Audio   AudioConfig   `mapstructure:"audio"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSession(c.Session); err != nil {
		errs = append(errs, err.Error())
	}
	if c.HUD.Width < 20 {
		errs = append(errs, fmt.Sprintf("hud.width must be >= 20, got %d", c.HUD.Width))
	}
	if c.Audio.SampleRate < 8000 {
		errs = append(errs, fmt.Sprintf("audio.sample_rate must be >= 8000, got %d", c.Audio.SampleRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.instruction_limit must be >= 0, got %d", c.InstructionLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateSession(s SessionConfig) error {
	var errs []string
	if s.TickRate < 1 || s.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("session.tick_rate must be 1-1000, got %d", s.TickRate))
	}
	if s.Slots < 1 || s.Slots > MaxSlots {
		errs = append(errs, fmt.Sprintf("session.slots must be 1-%d, got %d", MaxSlots, s.Slots))
	}
	if len(s.StartingWeapons) > s.Slots {
		errs = append(errs, "session.starting_weapons must not exceed session.slots")
	}
	seen := make(map[string]bool, len(s.StartingWeapons))
	for _, id := range s.StartingWeapons {
		if id == "" {
			errs = append(errs, "session.starting_weapons must not contain empty IDs")
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Sprintf("session.starting_weapons lists %q twice", id))
		}
		seen[id] = true
	}
	if s.RecoilDuration <= 0 {
		errs = append(errs, "session.recoil_duration must be positive")
	}
	if s.ArmRecoilDuration <= 0 {
		errs = append(errs, "session.arm_recoil_duration must be positive")
	}
	if s.PickupRadius <= 0 {
		errs = append(errs, fmt.Sprintf("session.pickup_radius must be positive, got %v", s.PickupRadius))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARMORY_ prefix
	v.SetEnvPrefix("ARMORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// Default returns the configuration built from defaults and environment
// overrides alone, for running without a config file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARMORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.instruction_limit", 100_000)

	v.SetDefault("session.tick_rate", 60)
	v.SetDefault("session.slots", 4)
	v.SetDefault("session.starting_weapons", []string{})
	v.SetDefault("session.recoil_duration", "200ms")
	v.SetDefault("session.arm_recoil_duration", "100ms")
	v.SetDefault("session.pickup_radius", 1.0)

	v.SetDefault("hud.width", 60)

	v.SetDefault("audio.sample_rate", 44100)
}
