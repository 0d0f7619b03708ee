package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"sitebuilder/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "builder.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedPage(t *testing.T, db *DB) (*domain.Site, *domain.Page) {
	t.Helper()
	site := &domain.Site{ID: "site-1", Name: "Portfolio", Subdomain: "folio"}
	if err := NewSiteStore(db).CreateSite(site); err != nil {
		t.Fatalf("create site: %v", err)
	}
	p := &domain.Page{ID: "page-1", SiteID: site.ID, Name: "Home", Slug: "home"}
	if err := NewPageStore(db).CreatePage(p); err != nil {
		t.Fatalf("create page: %v", err)
	}
	return site, p
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builder.db")
	for i := 0; i < 2; i++ {
		db, err := New(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		db.Close()
	}
}

func TestSiteStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	sites := NewSiteStore(db)

	s := &domain.Site{ID: "s1", Name: "Shop", Subdomain: "shop", Description: "storefront"}
	if err := sites.CreateSite(s); err != nil {
		t.Fatal(err)
	}
	got, err := sites.GetSite("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Shop" || got.Description != "storefront" {
		t.Errorf("got %+v", got)
	}

	got.Name = "Big Shop"
	if err := sites.UpdateSite(got); err != nil {
		t.Fatal(err)
	}
	list, err := sites.ListSites()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Big Shop" {
		t.Errorf("list = %+v", list)
	}

	if _, err := sites.GetSite("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := sites.UpdateSite(&domain.Site{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: expected ErrNotFound, got %v", err)
	}
}

func TestPageStore_Elements(t *testing.T) {
	db := openTestDB(t)
	_, p := seedPage(t, db)
	pages := NewPageStore(db)

	got, err := pages.GetPage(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ElementsJSON != "[]" {
		t.Errorf("new page should start empty, got %q", got.ElementsJSON)
	}

	before, err := pages.PageFingerprint(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)

	elems := []domain.Element{{ID: "h1", Type: domain.ElementHeading, Content: "Hi", Style: domain.Style{}}}
	if err := got.SetElements(elems); err != nil {
		t.Fatal(err)
	}
	if err := pages.SavePageElements(p.ID, got.ElementsJSON); err != nil {
		t.Fatal(err)
	}

	after, err := pages.PageFingerprint(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("fingerprint should change after saving elements")
	}

	reloaded, _ := pages.GetPage(p.ID)
	decoded, err := reloaded.Elements()
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0].Content != "Hi" {
		t.Errorf("decoded = %+v", decoded)
	}

	if err := pages.SavePageElements("missing", "[]"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPageStore_ListOrder(t *testing.T) {
	db := openTestDB(t)
	site, _ := seedPage(t, db)
	pages := NewPageStore(db)
	pages.CreatePage(&domain.Page{ID: "page-0", SiteID: site.ID, Name: "Intro", Order: -1})

	list, err := pages.ListPages(site.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "page-0" {
		t.Errorf("pages should sort by order, got %+v", list)
	}
}

func TestDeleteSite_Cascades(t *testing.T) {
	db := openTestDB(t)
	site, p := seedPage(t, db)
	undo := NewUndoStore(db, 40)
	if _, err := undo.PushNode(p.ID, "n1", "", "Open page", nil, time.Time{}); err != nil {
		t.Fatal(err)
	}

	if err := NewPageStore(db).DeletePagesBySite(site.ID); err != nil {
		t.Fatal(err)
	}
	if err := NewSiteStore(db).DeleteSite(site.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPageStore(db).GetPage(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("page should be gone, got %v", err)
	}
	tree, err := undo.LoadTree(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tree != nil {
		t.Errorf("undo history should be gone, got %d nodes", len(tree.Nodes))
	}
}

func TestUndoStore_PushAndGoTo(t *testing.T) {
	db := openTestDB(t)
	_, p := seedPage(t, db)
	undo := NewUndoStore(db, 40)

	base := time.Now()
	undo.PushNode(p.ID, "root", "", "Open page", nil, base)
	undo.PushNode(p.ID, "a", "root", "Add heading", []domain.Element{{ID: "h", Type: domain.ElementHeading}}, base.Add(time.Second))

	tree, err := undo.LoadTree(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tree.RootID != "root" || tree.CurrentID != "a" || len(tree.Nodes) != 2 {
		t.Fatalf("tree = %+v", tree)
	}
	elems, err := tree.Nodes[1].Elements()
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 1 || elems[0].ID != "h" {
		t.Errorf("snapshot = %+v", elems)
	}

	if err := undo.GoTo(p.ID, "root"); err != nil {
		t.Fatal(err)
	}
	tree, _ = undo.LoadTree(p.ID)
	if tree.CurrentID != "root" {
		t.Errorf("current = %q, want root", tree.CurrentID)
	}

	if err := undo.ClearPage(p.ID); err != nil {
		t.Fatal(err)
	}
	if tree, _ := undo.LoadTree(p.ID); tree != nil {
		t.Error("clear should remove all nodes")
	}
}

func TestUndoStore_Prune(t *testing.T) {
	db := openTestDB(t)
	_, p := seedPage(t, db)
	undo := NewUndoStore(db, 5)

	base := time.Now()
	parent := ""
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("n%02d", i)
		if _, err := undo.PushNode(p.ID, id, parent, "edit", nil, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
		parent = id
	}

	tree, err := undo.LoadTree(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(tree.Nodes))
	}
	if tree.CurrentID != "n11" {
		t.Errorf("current = %q", tree.CurrentID)
	}
	if tree.Nodes[0].ID != "n07" || tree.Nodes[0].ParentID != nil {
		t.Errorf("oldest kept node should become the root, got %s parent %v", tree.Nodes[0].ID, tree.Nodes[0].ParentID)
	}
}

func TestSettingsStore(t *testing.T) {
	db := openTestDB(t)
	settings := NewSettingsStore(db)

	v, err := settings.Get("view_mode")
	if err != nil || v != "" {
		t.Fatalf("unset key: %q, %v", v, err)
	}
	settings.Set("view_mode", "tablet")
	settings.Set("view_mode", "mobile")
	if v, _ := settings.Get("view_mode"); v != "mobile" {
		t.Errorf("got %q", v)
	}
}

func TestApprovalStore_Resolve(t *testing.T) {
	db := openTestDB(t)
	approvals := NewApprovalStore(db)

	_, err := db.Conn().Exec(
		`INSERT INTO mcp_approvals (id, tool, description) VALUES ('a1', 'delete_element', 'Delete heading')`,
	)
	if err != nil {
		t.Fatal(err)
	}
	pending, err := approvals.ListPending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Tool != "delete_element" {
		t.Fatalf("pending = %+v", pending)
	}

	if err := approvals.Resolve("a1", true); err != nil {
		t.Fatal(err)
	}
	if pending, _ := approvals.ListPending(); len(pending) != 0 {
		t.Errorf("resolved approval still pending: %+v", pending)
	}
	if err := approvals.Resolve("a1", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("resolving twice should report ErrNotFound, got %v", err)
	}
}
