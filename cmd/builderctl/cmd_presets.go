package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitebuilder/internal/layouts"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List layout presets, built-in and from the presets directory",
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := layouts.NewRegistry(cfg.PresetsDir)
	if err := registry.Load(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range registry.Presets() {
		origin := "user"
		if p.Builtin {
			origin = "builtin"
		}
		fmt.Fprintf(out, "%-16s %-8s %s\n", p.ID, origin, p.Name)
	}
	fmt.Fprintf(out, "\nUser presets: %s\n", cfg.PresetsDir)
	return nil
}
