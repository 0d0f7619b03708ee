package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// setupData points the config at a temp data dir holding one site.
func setupData(t *testing.T) (pageID string) {
	t.Helper()
	home := t.TempDir()
	dataDir := filepath.Join(home, "data")
	t.Setenv("HOME", home)
	t.Setenv("SITEBUILDER_DATA_DIR", dataDir)
	configPath = ""

	db, err := storage.New(filepath.Join(dataDir, "sitebuilder.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	sites := service.NewSiteService(storage.NewSiteStore(db), storage.NewPageStore(db), service.NoopEmitter{})
	site, err := sites.CreateSite(context.Background(), "Bakery", "", "")
	if err != nil {
		t.Fatal(err)
	}
	pages, err := sites.ListPages(site.ID)
	if err != nil {
		t.Fatal(err)
	}
	return pages[0].ID
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSites(t *testing.T) {
	pageID := setupData(t)
	out, err := run(t, "sites")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Bakery (bakery)") || !strings.Contains(out, pageID) {
		t.Errorf("sites output = %q", out)
	}
}

func TestRender(t *testing.T) {
	pageID := setupData(t)

	out, err := run(t, "render", pageID, "--format", "markdown", "--view", "desktop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Welcome to My Website") {
		t.Errorf("markdown = %q", out)
	}

	out, err = run(t, "render", pageID, "--format", "html", "--view", "tablet")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "max-w-2xl") {
		t.Errorf("tablet html should clamp to max-w-2xl: %q", out)
	}

	if _, err := run(t, "render", pageID, "--format", "pdf", "--view", "desktop"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := run(t, "render", "missing", "--format", "html", "--view", "desktop"); err == nil {
		t.Error("unknown page should fail")
	}
}

func TestPresets(t *testing.T) {
	setupData(t)
	presetsDir := filepath.Join(os.Getenv("SITEBUILDER_DATA_DIR"), "layouts")
	if err := os.MkdirAll(presetsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	preset := "id: pricing\nname: Pricing Table\nelements:\n  - type: heading\n    content: Pricing\n"
	if err := os.WriteFile(filepath.Join(presetsDir, "pricing.yaml"), []byte(preset), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "hero") || !strings.Contains(out, "builtin") {
		t.Errorf("built-ins missing: %q", out)
	}
	if !strings.Contains(out, "pricing") || !strings.Contains(out, "Pricing Table") {
		t.Errorf("user preset missing: %q", out)
	}
}

func TestExportImport(t *testing.T) {
	pageID := setupData(t)
	file := filepath.Join(t.TempDir(), "home.json")

	out, err := run(t, "export", pageID, "-o", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Exported 3 element(s)") {
		t.Errorf("export output = %q", out)
	}

	out, err = run(t, "sites")
	if err != nil {
		t.Fatal(err)
	}
	siteID := strings.Fields(out)[0]

	out, err = run(t, "import", siteID, file, "--name", "Copy")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(Copy) at /copy") {
		t.Errorf("import output = %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id":"a","type":"heading"},{"id":"a","type":"paragraph"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "import", siteID, bad, "--name", "Bad"); err == nil {
		t.Error("duplicate ids should be rejected")
	}
}
