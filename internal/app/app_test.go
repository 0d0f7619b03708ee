package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ConfigErrorUsesDefaults(t *testing.T) {
	t.Setenv("HOME", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("undo_limit: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := New(path)
	if a.cfg == nil {
		t.Fatal("New must always carry a config")
	}
	if a.cfg.UndoLimit != 40 || a.cfg.DBPath == "" {
		t.Errorf("cfg = %+v", a.cfg)
	}
}
