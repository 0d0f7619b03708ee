package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/storage"
	"sitebuilder/internal/tree"
)

// ─────────────────────────────────────────────────────────────
// Site Service: business logic for sites and pages
// ─────────────────────────────────────────────────────────────

// SiteService manages sites and their pages.
type SiteService struct {
	sites   *storage.SiteStore
	pages   *storage.PageStore
	emitter EventEmitter
}

// NewSiteService creates a SiteService.
func NewSiteService(
	sites *storage.SiteStore,
	pages *storage.PageStore,
	emitter EventEmitter,
) *SiteService {
	return &SiteService{sites: sites, pages: pages, emitter: emitter}
}

// ── Sites ──────────────────────────────────────────────────

func (s *SiteService) ListSites() ([]domain.Site, error) {
	return s.sites.ListSites()
}

func (s *SiteService) GetSite(id string) (*domain.Site, error) {
	return s.sites.GetSite(id)
}

// CreateSite creates a site with one starter page.
func (s *SiteService) CreateSite(ctx context.Context, name, subdomain, description string) (*domain.Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create site: name is required")
	}
	if subdomain == "" {
		subdomain = Slugify(name)
	}
	site := &domain.Site{
		ID:          uuid.New().String(),
		Name:        name,
		Subdomain:   subdomain,
		Description: description,
	}
	if err := s.sites.CreateSite(site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}
	if _, err := s.CreatePage(ctx, site.ID, "Home"); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, EventSitesChanged, SitePayload(site.ID))
	return site, nil
}

func (s *SiteService) UpdateSite(ctx context.Context, id, name, subdomain, description string) (*domain.Site, error) {
	site, err := s.sites.GetSite(id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		site.Name = name
	}
	if subdomain != "" {
		site.Subdomain = subdomain
	}
	site.Description = description
	if err := s.sites.UpdateSite(site); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, EventSitesChanged, SitePayload(site.ID))
	return site, nil
}

func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	if err := s.pages.DeletePagesBySite(id); err != nil {
		return err
	}
	if err := s.sites.DeleteSite(id); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	s.emitter.Emit(ctx, EventSitesChanged, SitePayload(id))
	return nil
}

// ── Pages ──────────────────────────────────────────────────

func (s *SiteService) ListPages(siteID string) ([]domain.Page, error) {
	return s.pages.ListPages(siteID)
}

func (s *SiteService) GetPage(id string) (*domain.Page, error) {
	return s.pages.GetPage(id)
}

// CreatePage appends a page to the site. The page starts with the sample
// heading, paragraph and button, and gets a slug unique within the site.
func (s *SiteService) CreatePage(ctx context.Context, siteID, name string) (*domain.Page, error) {
	return s.createPage(ctx, siteID, name, builder.StarterElements(nil))
}

// ImportPage appends a page holding elems, e.g. a tree exported from
// another page. The tree must have unique non-empty ids.
func (s *SiteService) ImportPage(ctx context.Context, siteID, name string, elems []domain.Element) (*domain.Page, error) {
	if err := tree.Validate(elems); err != nil {
		return nil, fmt.Errorf("import page: %w", err)
	}
	return s.createPage(ctx, siteID, name, elems)
}

func (s *SiteService) createPage(ctx context.Context, siteID, name string, elems []domain.Element) (*domain.Page, error) {
	if _, err := s.sites.GetSite(siteID); err != nil {
		return nil, err
	}
	existing, err := s.pages.ListPages(siteID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Page %d", len(existing)+1)
	}

	taken := make(map[string]bool, len(existing))
	order := 0
	for _, p := range existing {
		taken[p.Slug] = true
		if p.Order >= order {
			order = p.Order + 1
		}
	}

	p := &domain.Page{
		ID:     uuid.New().String(),
		SiteID: siteID,
		Name:   name,
		Slug:   uniqueSlug(Slugify(name), taken),
		Order:  order,
	}
	if err := p.SetElements(elems); err != nil {
		return nil, err
	}
	if err := s.pages.CreatePage(p); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	s.emitter.Emit(ctx, EventPagesChanged, SitePayload(siteID))
	return p, nil
}

func (s *SiteService) RenamePage(ctx context.Context, id, name string) error {
	p, err := s.pages.GetPage(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename page: name is required")
	}
	p.Name = name
	if err := s.pages.UpdatePage(p); err != nil {
		return err
	}
	s.emitter.Emit(ctx, EventPagesChanged, SitePayload(p.SiteID))
	return nil
}

// ReorderPages assigns sort order following ids. Pages of the site not
// listed keep their relative order after the listed ones.
func (s *SiteService) ReorderPages(ctx context.Context, siteID string, ids []string) error {
	pages, err := s.pages.ListPages(siteID)
	if err != nil {
		return err
	}
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	next := len(ids)
	for i := range pages {
		p := &pages[i]
		if r, ok := rank[p.ID]; ok {
			p.Order = r
		} else {
			p.Order = next
			next++
		}
		if err := s.pages.UpdatePage(p); err != nil {
			return err
		}
	}
	s.emitter.Emit(ctx, EventPagesChanged, SitePayload(siteID))
	return nil
}

func (s *SiteService) DeletePage(ctx context.Context, id string) error {
	p, err := s.pages.GetPage(id)
	if err != nil {
		return err
	}
	if err := s.pages.DeletePage(id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, EventPagesChanged, SitePayload(p.SiteID))
	return nil
}

// Slugify lowercases name and joins its words with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return "page"
	}
	return b.String()
}

func uniqueSlug(base string, taken map[string]bool) string {
	slug := base
	for i := 2; taken[slug]; i++ {
		slug = base + "-" + strconv.Itoa(i)
	}
	return slug
}
