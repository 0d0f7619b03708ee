package app

import (
	"errors"

	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// ── View mode + window ─────────────────────────────────────

func (a *App) GetViewMode() string {
	return string(a.settings.ViewMode())
}

func (a *App) SetViewMode(mode string) (string, error) {
	v, err := a.settings.SetViewMode(mode)
	return string(v), err
}

func (a *App) GetWindowSize() service.WindowSize {
	return a.settings.LoadWindowSize()
}

func (a *App) SaveWindowSize(width, height int) error {
	return a.settings.SaveWindowSize(width, height)
}

// ── MCP approvals ──────────────────────────────────────────

// ApproveAction lets a pending destructive agent action run. The id may
// belong to the standalone server (mcp_approvals row) or to the in-app one.
func (a *App) ApproveAction(actionID string) error {
	return a.resolveAction(actionID, true)
}

func (a *App) RejectAction(actionID string) error {
	return a.resolveAction(actionID, false)
}

func (a *App) resolveAction(actionID string, approved bool) error {
	err := a.approvals.Resolve(actionID, approved)
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if approved {
		a.mcp.Approve(actionID)
	} else {
		a.mcp.Reject(actionID)
	}
	return nil
}
