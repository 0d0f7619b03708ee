package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type Site struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Page stores its element tree as JSON (a []Element document).
type Page struct {
	ID           string    `json:"id"`
	SiteID       string    `json:"siteId"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Order        int       `json:"order"`
	ElementsJSON string    `json:"elementsJson"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Elements decodes the stored tree. An empty column decodes to an empty page.
func (p *Page) Elements() ([]Element, error) {
	if p.ElementsJSON == "" {
		return []Element{}, nil
	}
	var elems []Element
	if err := json.Unmarshal([]byte(p.ElementsJSON), &elems); err != nil {
		return nil, fmt.Errorf("decode page %s elements: %w", p.ID, err)
	}
	if elems == nil {
		elems = []Element{}
	}
	return elems, nil
}

// SetElements encodes elems into ElementsJSON.
func (p *Page) SetElements(elems []Element) error {
	if elems == nil {
		elems = []Element{}
	}
	data, err := json.Marshal(elems)
	if err != nil {
		return fmt.Errorf("encode page %s elements: %w", p.ID, err)
	}
	p.ElementsJSON = string(data)
	return nil
}

type SiteStore interface {
	CreateSite(s *Site) error
	GetSite(id string) (*Site, error)
	ListSites() ([]Site, error)
	UpdateSite(s *Site) error
	DeleteSite(id string) error
}

type PageStore interface {
	CreatePage(p *Page) error
	GetPage(id string) (*Page, error)
	ListPages(siteID string) ([]Page, error)
	UpdatePage(p *Page) error
	SavePageElements(id string, elementsJSON string) error
	DeletePage(id string) error
	DeletePagesBySite(siteID string) error
}
