package app

// ─────────────────────────────────────────────────────────────
// Site + Page Handlers: thin delegates to SiteService
// ─────────────────────────────────────────────────────────────

import (
	"sitebuilder/internal/domain"
)

// ── Sites ──────────────────────────────────────────────────

func (a *App) ListSites() ([]domain.Site, error) {
	return a.sites.ListSites()
}

func (a *App) CreateSite(name, subdomain, description string) (*domain.Site, error) {
	return a.sites.CreateSite(a.ctx, name, subdomain, description)
}

func (a *App) UpdateSite(id, name, subdomain, description string) (*domain.Site, error) {
	return a.sites.UpdateSite(a.ctx, id, name, subdomain, description)
}

// DeleteSite removes the site and its pages. Open sessions of those pages
// are dropped first so autosave cannot write them back.
func (a *App) DeleteSite(id string) error {
	pages, err := a.sites.ListPages(id)
	if err != nil {
		return err
	}
	for _, p := range pages {
		a.editor.ClosePage(p.ID)
	}
	return a.sites.DeleteSite(a.ctx, id)
}

// ── Pages ──────────────────────────────────────────────────

func (a *App) ListPages(siteID string) ([]domain.Page, error) {
	return a.sites.ListPages(siteID)
}

func (a *App) CreatePage(siteID, name string) (*domain.Page, error) {
	return a.sites.CreatePage(a.ctx, siteID, name)
}

func (a *App) RenamePage(id, name string) error {
	return a.sites.RenamePage(a.ctx, id, name)
}

func (a *App) ReorderPages(siteID string, ids []string) error {
	return a.sites.ReorderPages(a.ctx, siteID, ids)
}

func (a *App) DeletePage(id string) error {
	a.editor.ClosePage(id)
	return a.sites.DeletePage(a.ctx, id)
}
