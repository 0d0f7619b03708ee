package app

import (
	"context"
	"path/filepath"
	"testing"

	"sitebuilder/internal/layouts"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

type watcherEnv struct {
	db      *storage.DB
	pages   *storage.PageStore
	sites   *service.SiteService
	editor  *service.EditorService
	emitter *service.MockEmitter
	watcher *pageWatcher
	siteID  string
	pageID  string
}

func newWatcherEnv(t *testing.T) *watcherEnv {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	pages := storage.NewPageStore(db)
	sites := service.NewSiteService(storage.NewSiteStore(db), pages, service.NoopEmitter{})
	editor := service.NewEditorService(pages, storage.NewUndoStore(db, 40), layouts.NewRegistry(""), service.NoopEmitter{}, 40)
	emitter := &service.MockEmitter{}

	site, err := sites.CreateSite(ctx, "Bakery", "", "")
	if err != nil {
		t.Fatal(err)
	}
	list, err := sites.ListPages(site.ID)
	if err != nil {
		t.Fatal(err)
	}
	return &watcherEnv{
		db:      db,
		pages:   pages,
		sites:   sites,
		editor:  editor,
		emitter: emitter,
		watcher: newPageWatcher(ctx, pages, storage.NewApprovalStore(db), editor, emitter),
		siteID:  site.ID,
		pageID:  list[0].ID,
	}
}

func TestPageWatcher_NoActivePage(t *testing.T) {
	env := newWatcherEnv(t)
	env.watcher.check()
	if len(env.emitter.Events) != 0 {
		t.Errorf("no page open, got events %v", env.emitter.Events)
	}
}

func TestPageWatcher_ReloadsExternalWrite(t *testing.T) {
	env := newWatcherEnv(t)
	ctx := context.Background()
	if _, err := env.editor.OpenPage(ctx, env.pageID); err != nil {
		t.Fatal(err)
	}

	env.watcher.check()
	if n := env.emitter.Count(service.EventPageChanged); n != 0 {
		t.Fatalf("first poll only records the baseline, got %d events", n)
	}

	if err := env.pages.SavePageElements(env.pageID, "[]"); err != nil {
		t.Fatal(err)
	}
	env.watcher.check()
	if n := env.emitter.Count(service.EventPageChanged); n != 1 {
		t.Fatalf("page change events = %d, want 1", n)
	}
	elems, err := env.editor.Elements(env.pageID)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 0 {
		t.Errorf("session should hold the external tree, got %d elements", len(elems))
	}

	env.watcher.check()
	if n := env.emitter.Count(service.EventPageChanged); n != 1 {
		t.Errorf("unchanged page must not re-emit, got %d", n)
	}
}

func TestPageWatcher_PageList(t *testing.T) {
	env := newWatcherEnv(t)
	ctx := context.Background()
	if _, err := env.editor.OpenPage(ctx, env.pageID); err != nil {
		t.Fatal(err)
	}
	env.watcher.check()

	if _, err := env.sites.CreatePage(ctx, env.siteID, "About"); err != nil {
		t.Fatal(err)
	}
	env.watcher.check()
	if n := env.emitter.Count(service.EventPagesChanged); n != 1 {
		t.Fatalf("pages:changed = %d, want 1", n)
	}
	last := env.emitter.Events[len(env.emitter.Events)-1]
	if got, ok := last.Data.(map[string]string); !ok || got["siteId"] != env.siteID {
		t.Errorf("pages:changed payload = %#v", last.Data)
	}
}

func TestPageWatcher_Approvals(t *testing.T) {
	env := newWatcherEnv(t)
	_, err := env.db.Conn().Exec(
		`INSERT INTO mcp_approvals (id, tool, description) VALUES ('a1', 'delete_element', 'Delete heading')`,
	)
	if err != nil {
		t.Fatal(err)
	}

	env.watcher.check()
	env.watcher.check()
	if n := env.emitter.Count("mcp:approval-required"); n != 1 {
		t.Fatalf("approval should be forwarded once, got %d", n)
	}

	if err := storage.NewApprovalStore(env.db).Resolve("a1", true); err != nil {
		t.Fatal(err)
	}
	env.watcher.check()
	if len(env.watcher.emittedApprovals) != 0 {
		t.Error("resolved approvals should be forgotten")
	}
}

func TestPageWatcher_StartStop(t *testing.T) {
	env := newWatcherEnv(t)
	env.watcher.Start()
	env.watcher.Stop()
	env.watcher.Stop()
}
