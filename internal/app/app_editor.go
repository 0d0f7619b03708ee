package app

// ─────────────────────────────────────────────────────────────
// Editor Handlers: the builder canvas, palette and properties
// ─────────────────────────────────────────────────────────────

import (
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
	"sitebuilder/internal/palette"
	"sitebuilder/internal/properties"
)

// OpenPage starts (or resumes) editing a page and makes it active.
func (a *App) OpenPage(pageID string) (*domain.PageState, error) {
	wailsRuntime.LogInfof(a.ctx, "[OpenPage] loading page: %s", pageID)
	return a.editor.OpenPage(a.ctx, pageID)
}

// ClosePage saves and drops the page's session.
func (a *App) ClosePage(pageID string) error {
	if err := a.editor.Save(a.ctx, pageID); err != nil {
		return err
	}
	a.editor.ClosePage(pageID)
	return nil
}

func (a *App) GetPageState(pageID string) (*domain.PageState, error) {
	return a.editor.State(pageID)
}

// GetCanvasHTML renders the canvas. An empty viewMode uses the saved one.
func (a *App) GetCanvasHTML(pageID, viewMode string) (string, error) {
	if viewMode == "" {
		viewMode = string(a.settings.ViewMode())
	}
	return a.editor.Canvas(pageID, viewMode)
}

func (a *App) GetPalette(pageID, query string) (palette.View, error) {
	return a.editor.Palette(pageID, query)
}

func (a *App) GetPropertiesPanel(pageID string) (properties.Panel, error) {
	return a.editor.Panel(pageID)
}

func (a *App) ListLayouts() []layouts.Preset {
	return a.layouts.Presets()
}

// ── Drag and drop ──────────────────────────────────────────

func (a *App) DropElement(pageID string, result builder.DragResult) (bool, error) {
	return a.editor.Drop(a.ctx, pageID, result)
}

func (a *App) BeginDrag(pageID string, source builder.Location) error {
	return a.editor.BeginDrag(pageID, source)
}

func (a *App) DragOver(pageID string, over *builder.Location) error {
	return a.editor.DragOver(pageID, over)
}

func (a *App) EndDrag(pageID string, dest *builder.Location) (bool, error) {
	return a.editor.EndDrag(a.ctx, pageID, dest)
}

// ── Element edits ──────────────────────────────────────────

func (a *App) SelectElement(pageID, elementID string) (bool, error) {
	return a.editor.Select(a.ctx, pageID, elementID)
}

func (a *App) AddElement(pageID, elementType, parentID string, index int) (string, error) {
	return a.editor.AddElement(a.ctx, pageID, domain.ElementType(elementType), parentID, index)
}

func (a *App) EditContent(pageID, elementID, content string) (bool, error) {
	return a.editor.EditContent(a.ctx, pageID, elementID, content)
}

func (a *App) EditStyle(pageID, elementID, property string, value any) (bool, error) {
	return a.editor.EditStyle(a.ctx, pageID, elementID, property, value)
}

// ApplyField sets a properties-panel field by key.
func (a *App) ApplyField(pageID, elementID, key, value string) (bool, error) {
	return a.editor.ApplyField(a.ctx, pageID, elementID, key, value)
}

func (a *App) DeleteElement(pageID, elementID string) (bool, error) {
	return a.editor.Delete(a.ctx, pageID, elementID)
}

func (a *App) MoveElement(pageID, elementID, parentID string, index int) error {
	return a.editor.Move(a.ctx, pageID, elementID, parentID, index)
}

func (a *App) DuplicateElement(pageID, elementID string) (string, error) {
	return a.editor.Duplicate(a.ctx, pageID, elementID)
}

func (a *App) ApplyLayout(pageID, layoutID string) ([]string, error) {
	return a.editor.ApplyLayout(a.ctx, pageID, layoutID)
}

// ── History + save ─────────────────────────────────────────

func (a *App) Undo(pageID string) (bool, error) {
	return a.editor.Undo(a.ctx, pageID)
}

func (a *App) Redo(pageID string) (bool, error) {
	return a.editor.Redo(a.ctx, pageID)
}

func (a *App) SavePage(pageID string) error {
	return a.editor.Save(a.ctx, pageID)
}
