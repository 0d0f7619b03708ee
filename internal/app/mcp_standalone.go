package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sitebuilder/internal/config"
	"sitebuilder/internal/layouts"
	mcpserver "sitebuilder/internal/mcp"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// ServeMCP runs a standalone MCP server on stdin/stdout with no GUI.
// Destructive tools wait for approval through the mcp_approvals table,
// which a running app picks up and shows to the user.
func ServeMCP(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	registry := layouts.NewRegistry(cfg.PresetsDir)
	if err := registry.Load(); err != nil {
		log.Printf("[MCP] layout presets: %v", err)
	}

	emitter := service.NoopEmitter{}
	pages := storage.NewPageStore(db)
	sites := service.NewSiteService(storage.NewSiteStore(db), pages, emitter)
	editor := service.NewEditorService(pages, storage.NewUndoStore(db, cfg.UndoLimit), registry, emitter, cfg.UndoLimit)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     emitter,
		Sites:       sites,
		Editor:      editor,
		Layouts:     registry,
		ApprovalDB:  db.Conn(), // Enable SQLite-based approval IPC
		AutoApprove: cfg.MCPAutoApprove,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	return mcpSrv.ServeStdio()
}
