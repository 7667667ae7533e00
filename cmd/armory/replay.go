package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Run a scripted session headless and print a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, logger, nil, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	rep, err := replay.Run(script, sess.player, cfg.Session.TickInterval(), logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s\n", sess.id)
	if err := rep.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	for _, p := range sess.profiles {
		fmt.Fprintf(out, "cues %s: %s=%d %s=%d\n", p.ID,
			p.FireSound, sess.mixer.Played(p.FireSound),
			p.ReloadSound, sess.mixer.Played(p.ReloadSound))
	}
	return nil
}
