// Package prefs persists small per-user choices that are not configuration:
// the last email used to sign in and the view the TUI opens on.
// Preferences are stored in ~/.config/libdesk/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Views the TUI can open on.
const (
	ViewDashboard  = "dashboard"
	ViewBooks      = "books"
	ViewBorrowings = "borrowings"
)

// Prefs holds user preferences for libdesk.
type Prefs struct {
	LastEmail string `toml:"last_email"`
	StartView string `toml:"start_view"`
}

const defaultPrefsPath = "~/.config/libdesk/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or unreadable.
func Load(path string) (Prefs, error) {
	prefs := Prefs{StartView: ViewDashboard}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return prefs, nil
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Prefs{StartView: ViewDashboard}, nil
	}

	switch prefs.StartView {
	case ViewDashboard, ViewBooks, ViewBorrowings:
	default:
		prefs.StartView = ViewDashboard
	}
	prefs.LastEmail = strings.TrimSpace(prefs.LastEmail)
	return prefs, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Remember records email as the last one used. Errors are returned but
// callers usually only log them.
func Remember(path, email string) error {
	p, _ := Load(path)
	if p.LastEmail == email {
		return nil
	}
	p.LastEmail = email
	return Save(path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
