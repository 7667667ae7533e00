package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/hud"
	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/server"
)

var playLogFile string

// trainingTargets are the dummies placed around the player at start.
var trainingTargets = []projectile.Target{
	{ID: "dummy-east", Position: weapon.Vec2{X: 12}, Radius: 1},
	{ID: "dummy-west", Position: weapon.Vec2{X: -12}, Radius: 1},
	{ID: "dummy-high", Position: weapon.Vec2{X: 8, Y: 5}, Radius: 1},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run an interactive terminal session",
	Long: `play opens a terminal session. Aim with the mouse, hold the left button
to fire, press 1-9 to select a slot and x followed by a digit to discard it.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playLogFile, "log-file", "armory.log", "log destination while the terminal is in use, when logging.output is stdout or stderr")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" || cfg.Logging.Output == "stderr" {
		cfg.Logging.Output = playLogFile
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	term := hud.New(screen, cfg.HUD.Width, logger)
	sess, err := newSession(cfg, logger, term, term)
	if err != nil {
		return err
	}
	defer sess.Close()

	p := sess.player
	seedFloor(p, sess.profiles, cfg.Session.StartingWeapons)

	w, h := screen.Size()
	in := newInputState(viewport{width: w, height: h})
	interval := cfg.Session.TickInterval()
	hits := 0
	var fps fpsMeter
	target := float64(time.Second) / float64(interval)

	loop := server.NewLoop(interval, func(now time.Duration) error {
		pin, drop, quit := in.drain(p.Body().Position)
		if quit {
			return server.ErrQuit
		}
		if drop {
			if pk, ok := dropPickup(p.Controller().ActiveID()); ok {
				p.Drop(pk)
			}
		}
		pin.Targets = trainingTargets
		for _, hit := range p.Tick(now, pin) {
			hits++
			logger.Info("target hit",
				zap.String("target", hit.TargetID),
				zap.String("weapon", hit.WeaponID),
				zap.String("effect", string(hit.Effect)),
				zap.Float64("damage", hit.Damage),
			)
		}
		peak := sess.mixer.Advance(interval)

		screen.Clear()
		v := in.currentView()
		drawWorld(screen, v, p, trainingTargets, pin.Cursor)
		drawHelp(screen, v)
		term.SetStatus(status(p, hits, peak) + fmt.Sprintf("  fps %.0f/%.0f", fps.frame(time.Now()), target))
		term.Draw()
		return nil
	}, logger)

	pump := &server.FuncService{
		StartFn: func() error {
			for {
				ev := screen.PollEvent()
				if ev == nil || !in.handle(ev) {
					return nil
				}
			}
		},
		StopFn: func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) },
	}

	lc := server.NewLifecycle(logger)
	lc.Add("game-loop", loop)
	lc.Add("terminal", pump)
	return lc.Run(cmd.Context())
}

// seedFloor lays a weapon pickup for every profile the player does not
// start with, spaced along the ground to the east.
func seedFloor(p *player.Player, profiles []*weapon.Profile, starting []string) int {
	owned := make(map[string]bool, len(starting))
	for _, id := range starting {
		owned[id] = true
	}
	n := 0
	for _, prof := range profiles {
		if owned[prof.ID] {
			continue
		}
		n++
		p.Floor().Drop(weapon.Vec2{X: floorSpacing * float64(n)},
			inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: prof.ID})
	}
	return n
}

// floorSpacing is the distance between seeded weapon pickups.
const floorSpacing = 3.0

// status is the HUD status line: reload phase, live projectiles, hits and
// the audio level.
func status(p *player.Player, hits int, peak float64) string {
	return fmt.Sprintf("%s  shots %d  hits %d  vol %.2f",
		p.Controller().Phase(), p.World().Len(), hits, peak)
}

const helpLine = "1-9 slot  x# discard  r reload  spc/f fire  a/s/d walk  p drop ammo  q quit"

func drawHelp(s tcell.Screen, v viewport) {
	y := v.height - 1
	if y <= hud.RowStatus {
		return
	}
	x := 0
	for _, r := range helpLine {
		if x >= v.width {
			return
		}
		s.SetContent(x, y, r, nil, styleCursor)
		x++
	}
}
