package app

import (
	"context"

	"github.com/blackwell-systems/libdesk/internal/prefs"
	"github.com/blackwell-systems/libdesk/internal/unified"
)

// runHub launches the full-screen interface, starting at the login form
// when there is no session and at the preferred view otherwise.
func runHub(ctx context.Context) error {
	p, _ := prefs.Load(cfg.PrefsPath)
	return unified.Run(ctx, svc, unified.Options{
		PrefsPath: cfg.PrefsPath,
		StartView: unified.View(p.StartView),
	})
}
