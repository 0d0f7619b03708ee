// builderctl is the command-line companion of the site builder app.
//
// Usage:
//
//	builderctl mcp                                  serve MCP over stdio
//	builderctl sites                                list sites and pages
//	builderctl render <pageId> [--view=mobile] [--format=markdown]
//	builderctl export <pageId> [-o file.json]        dump a page's element tree
//	builderctl import <siteId> <file.json> [--name]  create a page from a dump
//	builderctl presets                              list layout presets
//	builderctl preview [--addr=:8787]               serve rendered pages
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitebuilder/internal/config"
	"sitebuilder/internal/storage"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "builderctl",
	Short: "Inspect, render and serve site builder pages",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/sitebuilder/config.yaml)")
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openDB loads the config and opens the builder database.
func openDB() (*config.Config, *storage.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, db, nil
}
