package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sitebuilder/internal/config"
	"sitebuilder/internal/layouts"
	mcpserver "sitebuilder/internal/mcp"
	"sitebuilder/internal/preview"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg *config.Config

	db        *storage.DB
	pages     *storage.PageStore
	approvals *storage.ApprovalStore

	sites    *service.SiteService
	editor   *service.EditorService
	settings *service.SettingsService

	layouts       *layouts.Registry
	layoutWatcher *layouts.Watcher
	autosaver     *service.Autosaver
	watcher       *pageWatcher
	mcp           *mcpserver.Server
	httpSrv       *http.Server
}

// New creates a new App. configPath may be empty for the default location.
func New(configPath string) *App {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[app] config: %v, using defaults", err)
		cfg = config.Default()
	}
	return &App{cfg: cfg}
}

// wailsEmitter forwards service events to the frontend. It is kept off
// App so Wails does not bind it. Events always go out on the Wails
// context: MCP requests and cron jobs call in with their own.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(e.ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	db, err := storage.New(a.cfg.DBPath)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.pages = storage.NewPageStore(db)
	a.approvals = storage.NewApprovalStore(db)

	a.layouts = layouts.NewRegistry(a.cfg.PresetsDir)
	if err := a.layouts.Load(); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to load layout presets: %v", err)
	}
	lw, err := layouts.Watch(a.layouts, func() {
		wailsRuntime.EventsEmit(ctx, service.EventLayoutsChanged)
	})
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to watch layout presets: %v", err)
	}
	a.layoutWatcher = lw

	emitter := wailsEmitter{ctx: ctx}
	a.sites = service.NewSiteService(storage.NewSiteStore(db), a.pages, emitter)
	a.editor = service.NewEditorService(a.pages, storage.NewUndoStore(db, a.cfg.UndoLimit), a.layouts, emitter, a.cfg.UndoLimit)
	a.settings = service.NewSettingsService(storage.NewSettingsStore(db), a.cfg.DefaultViewMode)

	ws := a.settings.LoadWindowSize()
	wailsRuntime.WindowSetSize(ctx, ws.Width, ws.Height)

	autosaver, err := service.NewAutosaver(a.editor, a.cfg.AutosaveInterval)
	if err == nil {
		err = autosaver.Start()
	}
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Autosave disabled: %v", err)
	} else {
		a.autosaver = autosaver
	}

	// External edits from the standalone MCP process
	a.watcher = newPageWatcher(ctx, a.pages, a.approvals, a.editor, emitter)
	a.watcher.Start()

	// In-app MCP server over streamable HTTP, next to the page preview
	a.mcp = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     emitter,
		Sites:       a.sites,
		Editor:      a.editor,
		Layouts:     a.layouts,
		AutoApprove: a.cfg.MCPAutoApprove,
	})
	if a.cfg.PreviewAddr != "" {
		router := preview.NewRouter(a.sites, preview.Options{
			MCP: server.NewStreamableHTTPServer(a.mcp.MCPServer()),
		})
		a.httpSrv = &http.Server{Addr: a.cfg.PreviewAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			wailsRuntime.LogInfof(ctx, "[preview] listening on %s", a.cfg.PreviewAddr)
			if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				wailsRuntime.LogErrorf(ctx, "Preview server: %v", err)
			}
		}()
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.settings != nil {
		w, h := wailsRuntime.WindowGetSize(ctx)
		if err := a.settings.SaveWindowSize(w, h); err != nil {
			wailsRuntime.LogErrorf(ctx, "Save window size: %v", err)
		}
	}
	if a.httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		a.httpSrv.Shutdown(shutdownCtx)
		cancel()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.layoutWatcher != nil {
		a.layoutWatcher.Close()
	}
	if a.autosaver != nil {
		a.autosaver.Stop(ctx)
	} else if a.editor != nil {
		if _, err := a.editor.SaveAll(ctx); err != nil {
			wailsRuntime.LogErrorf(ctx, "Save on exit: %v", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
