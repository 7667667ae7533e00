// Package main is the armory binary: an interactive terminal weapon sandbox
// and a headless replay runner.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "armory",
	Short: "2D weapon subsystem sandbox",
	Long: `armory runs the weapon subsystem of a 2D action game: firing cadence,
pistol and shotgun reloads, quick-slot inventory and projectiles.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file; empty uses defaults and ARMORY_* environment overrides")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(weaponsCmd)
}
