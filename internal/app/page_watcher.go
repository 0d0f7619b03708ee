package app

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// pageWatcher polls the database for writes made by another process
// (the standalone MCP server) to the active page, its site's page list,
// and the approval table, and forwards them to the frontend.
type pageWatcher struct {
	ctx       context.Context
	pages     *storage.PageStore
	approvals *storage.ApprovalStore
	editor    *service.EditorService
	emitter   service.EventEmitter
	interval  time.Duration

	mu sync.Mutex
	// Active page tracking
	pageID    string
	lastPrint string
	// Page list tracking (sidebar refresh)
	siteID       string
	lastPageList string
	// Approvals already forwarded, so each is shown once
	emittedApprovals map[string]bool

	stopCh chan struct{}
	done   chan struct{}
}

func newPageWatcher(
	ctx context.Context,
	pages *storage.PageStore,
	approvals *storage.ApprovalStore,
	editor *service.EditorService,
	emitter service.EventEmitter,
) *pageWatcher {
	return &pageWatcher{
		ctx:              ctx,
		pages:            pages,
		approvals:        approvals,
		editor:           editor,
		emitter:          emitter,
		interval:         2 * time.Second,
		emittedApprovals: map[string]bool{},
	}
}

// Start begins the polling loop. Should be called once on app startup.
func (w *pageWatcher) Start() {
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	go w.pollLoop()
}

// Stop terminates the polling loop and waits for it.
func (w *pageWatcher) Stop() {
	if w.stopCh == nil {
		return
	}
	close(w.stopCh)
	<-w.done
	w.stopCh = nil
}

func (w *pageWatcher) pollLoop() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *pageWatcher) check() {
	w.checkActivePage()
	w.checkApprovals()
}

func (w *pageWatcher) checkActivePage() {
	pageID := w.editor.ActivePageID()
	if pageID == "" {
		return
	}

	// ── Page document ───────────────────────────────────
	fp, err := w.pages.PageFingerprint(pageID)
	if err != nil {
		return
	}
	w.mu.Lock()
	switched := w.pageID != pageID
	changed := !switched && w.lastPrint != fp
	w.pageID = pageID
	w.lastPrint = fp
	w.mu.Unlock()

	if changed {
		reloaded, err := w.editor.Reload(w.ctx, pageID)
		if err != nil {
			log.Printf("[watcher] reload %s: %v", pageID, err)
		} else if reloaded {
			w.emitter.Emit(w.ctx, service.EventPageChanged, map[string]string{"pageId": pageID})
		}
	}

	// ── Page list of the active site ────────────────────
	state, err := w.editor.State(pageID)
	if err != nil {
		return
	}
	siteID := state.Page.SiteID
	list, err := w.pages.ListPages(siteID)
	if err != nil {
		return
	}
	listPrint := pageListFingerprint(list)

	w.mu.Lock()
	listChanged := w.siteID == siteID && w.lastPageList != listPrint
	w.siteID = siteID
	w.lastPageList = listPrint
	w.mu.Unlock()

	if listChanged {
		w.emitter.Emit(w.ctx, service.EventPagesChanged, service.SitePayload(siteID))
	}
}

// ── Pending MCP approvals (cross-process IPC) ──────────────

func (w *pageWatcher) checkApprovals() {
	pending, err := w.approvals.ListPending()
	if err != nil {
		return
	}

	seen := make(map[string]bool, len(pending))
	for _, p := range pending {
		seen[p.ID] = true
		w.mu.Lock()
		alreadySent := w.emittedApprovals[p.ID]
		w.emittedApprovals[p.ID] = true
		w.mu.Unlock()
		if alreadySent {
			continue
		}
		w.emitter.Emit(w.ctx, "mcp:approval-required", map[string]string{
			"id":          p.ID,
			"tool":        p.Tool,
			"description": p.Description,
			"createdAt":   p.CreatedAt,
			"metadata":    p.Metadata,
		})
	}

	// Forget resolved approvals
	w.mu.Lock()
	for id := range w.emittedApprovals {
		if !seen[id] {
			delete(w.emittedApprovals, id)
		}
	}
	w.mu.Unlock()
}

func pageListFingerprint(pages []domain.Page) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.ID)
		b.WriteByte('|')
		b.WriteString(p.Name)
		b.WriteByte('|')
		b.WriteString(p.Slug)
		b.WriteByte(';')
	}
	return b.String()
}
