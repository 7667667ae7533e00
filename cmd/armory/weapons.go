package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "Validate and list the weapon profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		profiles, err := weapon.LoadProfiles(cfg.Content.WeaponsDir)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tKIND\tMAG\tINTERVAL\tRELOAD\tPELLETS\tPROJECTILE")
		for _, p := range profiles {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
				p.ID, p.Name, p.Kind, p.MagazineCapacity, p.FireInterval, p.ReloadDuration,
				p.PelletsPerShot, p.Projectile.Type)
		}
		return tw.Flush()
	},
}
