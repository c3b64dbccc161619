package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.StartView != ViewDashboard || p.LastEmail != "" {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "libdesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "last_email = \"ana@example.com\"\nstart_view = \"books\"\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.LastEmail != "ana@example.com" || p.StartView != ViewBooks {
		t.Fatalf("Load = %+v", p)
	}
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("last_email = [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.StartView != ViewDashboard || p.LastEmail != "" {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestLoad_UnknownStartView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("start_view = \"settings\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, _ := Load(path)
	if p.StartView != ViewDashboard {
		t.Fatalf("StartView = %q, want %q", p.StartView, ViewDashboard)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(path, Prefs{LastEmail: "bo@example.com", StartView: ViewBorrowings}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.LastEmail != "bo@example.com" || loaded.StartView != ViewBorrowings {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestRemember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{StartView: ViewBooks}); err != nil {
		t.Fatal(err)
	}

	if err := Remember(path, "cy@example.com"); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	p, _ := Load(path)
	if p.LastEmail != "cy@example.com" || p.StartView != ViewBooks {
		t.Fatalf("after Remember = %+v", p)
	}
}
