package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			WeaponsDir:       "content/weapons",
			InstructionLimit: 100_000,
		},
		Session: SessionConfig{
			TickRate:          60,
			Slots:             4,
			StartingWeapons:   []string{"carrion_9mm"},
			RecoilDuration:    200 * time.Millisecond,
			ArmRecoilDuration: 100 * time.Millisecond,
			PickupRadius:      1,
		},
		HUD:   HUDConfig{Width: 60},
		Audio: AudioConfig{SampleRate: 44100},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestTickInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Session.TickRate = 50
	assert.Equal(t, 20*time.Millisecond, cfg.Session.TickInterval())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
content:
  weapons_dir: /srv/weapons
  scripts_dir: /srv/scripts
session:
  tick_rate: 30
  slots: 6
  starting_weapons: [carrion_9mm, esp_cano_curto]
  recoil_duration: 250ms
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, "/srv/scripts", cfg.Content.ScriptsDir)
	assert.Equal(t, 30, cfg.Session.TickRate)
	assert.Equal(t, 6, cfg.Session.Slots)
	assert.Equal(t, []string{"carrion_9mm", "esp_cano_curto"}, cfg.Session.StartingWeapons)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.RecoilDuration)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.ArmRecoilDuration)
	assert.Equal(t, 1.0, cfg.Session.PickupRadius)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "content/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, 4, cfg.Session.Slots)
	assert.Equal(t, 200*time.Millisecond, cfg.Session.RecoilDuration)
}

func TestDefault_EnvOverride(t *testing.T) {
	t.Setenv("ARMORY_SESSION_TICK_RATE", "120")
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Session.TickRate)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateWeaponsDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Content.WeaponsDir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateStartingWeaponsExceedSlots(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Slots = 1
	cfg.Session.StartingWeapons = []string{"a", "b"}
	assert.Error(t, cfg.Validate())
}

func TestValidateStartingWeaponsDuplicate(t *testing.T) {
	cfg := validConfig()
	cfg.Session.StartingWeapons = []string{"a", "a"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRecoilDurations(t *testing.T) {
	cfg := validConfig()
	cfg.Session.RecoilDuration = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Session.ArmRecoilDuration = -time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestValidatePickupRadius(t *testing.T) {
	cfg := validConfig()
	cfg.Session.PickupRadius = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateHUDWidth(t *testing.T) {
	cfg := validConfig()
	cfg.HUD.Width = 10
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidSlotRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slots := rapid.IntRange(1, MaxSlots).Draw(t, "slots")
		cfg := validConfig()
		cfg.Session.Slots = slots
		cfg.Session.StartingWeapons = nil
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid slot count %d rejected: %v", slots, err)
		}
	})
}

func TestPropertyInvalidSlotRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slots := rapid.OneOf(
			rapid.IntRange(-10, 0),
			rapid.IntRange(MaxSlots+1, 100),
		).Draw(t, "slots")
		cfg := validConfig()
		cfg.Session.Slots = slots
		cfg.Session.StartingWeapons = nil
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid slot count %d accepted", slots)
		}
	})
}

func TestPropertyTickIntervalPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.IntRange(1, 1000).Draw(t, "tick_rate")
		s := SessionConfig{TickRate: rate}
		if s.TickInterval() <= 0 {
			t.Fatalf("tick rate %d produced non-positive interval", rate)
		}
	})
}
