package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/audio"
	"github.com/cory-johannsen/armory/internal/config"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/scripting"
)

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default()
	}
	return config.Load(configPath)
}

// session is everything one player needs, wired together.
type session struct {
	id       string
	cfg      config.Config
	logger   *zap.Logger
	profiles []*weapon.Profile
	scripts  *scripting.Manager
	mixer    *audio.Mixer
	player   *player.Player
}

// newSession loads content and builds the player. hud and slots may be nil.
func newSession(cfg config.Config, logger *zap.Logger, hud weapon.HUD, slots inventory.SlotSink) (*session, error) {
	logger, id := observability.WithSession(logger)
	start := time.Now()

	profiles, err := weapon.LoadProfiles(cfg.Content.WeaponsDir)
	if err != nil {
		return nil, fmt.Errorf("loading weapon profiles: %w", err)
	}
	logger.Info("weapon profiles loaded",
		zap.Int("count", len(profiles)),
		zap.String("dir", cfg.Content.WeaponsDir),
	)

	s := &session{id: id, cfg: cfg, logger: logger, profiles: profiles}

	var damage projectile.DamageHook
	if cfg.Content.ScriptsDir != "" {
		s.scripts = scripting.NewManager(logger)
		if err := s.scripts.Load(cfg.Content.ScriptsDir, cfg.Content.InstructionLimit); err != nil {
			return nil, fmt.Errorf("loading scripts: %w", err)
		}
		damage = projectile.HookFunc(func(h projectile.Hit, base float64) float64 {
			return s.scripts.ProjectileHit(scripting.HitInfo{
				ProjectileID: h.ProjectileID,
				WeaponID:     h.WeaponID,
				Type:         string(h.Type),
				Damage:       base,
				TargetID:     h.TargetID,
				Hits:         h.Hits,
			})
		})
	}

	s.mixer = audio.NewMixer(cfg.Audio.SampleRate, nil, logger)

	ports := player.Ports{Audio: s.mixer, HUD: hud, Slots: slots, Damage: damage}
	s.player, err = player.New(profiles, ports, player.Options{
		Slots:             cfg.Session.Slots,
		StartingWeapons:   cfg.Session.StartingWeapons,
		RecoilDuration:    cfg.Session.RecoilDuration,
		ArmRecoilDuration: cfg.Session.ArmRecoilDuration,
		PickupRadius:      cfg.Session.PickupRadius,
	}, logger)
	if err != nil {
		if s.scripts != nil {
			s.scripts.Close()
		}
		return nil, fmt.Errorf("building player: %w", err)
	}

	logger.Info("session ready",
		zap.Int("slots", cfg.Session.Slots),
		zap.Strings("starting_weapons", cfg.Session.StartingWeapons),
		zap.Bool("scripting", s.scripts != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}

// Close releases the scripting VM.
func (s *session) Close() {
	if s.scripts != nil {
		s.scripts.Close()
	}
}
