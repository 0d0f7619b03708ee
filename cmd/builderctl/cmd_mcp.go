package main

import (
	"github.com/spf13/cobra"

	"sitebuilder/internal/app"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout for AI agents. Edits are saved to the
same database as the app, which picks them up within a few seconds.
Deleting elements waits for approval in the app unless mcp_auto_approve is set.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return app.ServeMCP(cfg)
	},
}
