// Package palette builds the left sidebar: element groups filtered by a
// search query, layout presets and the page list.
package palette

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"sitebuilder/internal/catalog"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
)

const listPrefix = "elements-"

// CategoryView is one element group with its drag-source list id.
type CategoryView struct {
	Category domain.Category `json:"category"`
	ListID   string          `json:"listId"`
	Items    []catalog.Item  `json:"items"`
}

// PageEntry is a row of the pages tab.
type PageEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// View is the full sidebar model sent to the frontend.
type View struct {
	Query      string            `json:"query"`
	Sections   []catalog.Section `json:"sections"`
	Categories []CategoryView    `json:"categories"`
	Layouts    []layouts.Preset  `json:"layouts"`
	Pages      []PageEntry       `json:"pages"`
}

// Suggestion is a fuzzy match over the whole catalog.
type Suggestion struct {
	Item     catalog.Item    `json:"item"`
	Category domain.Category `json:"category"`
	Score    int             `json:"score"`
}

// Filter keeps items whose display name contains query, ignoring case.
// An empty query keeps everything. The input is never modified.
func Filter(items []catalog.Item, query string) []catalog.Item {
	q := strings.ToLower(query)
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// Build assembles the sidebar. A nil presets slice falls back to the
// built-in presets.
func Build(query string, pages []PageEntry, presets []layouts.Preset) View {
	if presets == nil {
		presets = layouts.Presets()
	}
	if pages == nil {
		pages = []PageEntry{}
	}
	v := View{
		Query:    query,
		Sections: catalog.AllSections(),
		Layouts:  presets,
		Pages:    pages,
	}
	for _, g := range catalog.AllCategories() {
		v.Categories = append(v.Categories, CategoryView{
			Category: g.Category,
			ListID:   ListID(g.Category),
			Items:    Filter(g.Items, query),
		})
	}
	return v
}

// ItemAt resolves a drag from the list of category at index, as the list
// looked under query.
func ItemAt(c domain.Category, query string, index int) (catalog.Item, bool) {
	items := Filter(catalog.Items(c), query)
	if index < 0 || index >= len(items) {
		return catalog.Item{}, false
	}
	return items[index], true
}

// ListID returns the drag-source list id for a category.
func ListID(c domain.Category) string {
	return listPrefix + string(c)
}

// ParseListID extracts the category from a drag-source list id.
func ParseListID(listID string) (domain.Category, bool) {
	rest, ok := strings.CutPrefix(listID, listPrefix)
	if !ok {
		return "", false
	}
	c := domain.Category(rest)
	if catalog.Items(c) == nil {
		return "", false
	}
	return c, true
}

// Suggest ranks every catalog item against query by fuzzy match, best
// first. A limit <= 0 returns all matches.
func Suggest(query string, limit int) []Suggestion {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	var (
		names []string
		items []Suggestion
	)
	for _, g := range catalog.AllCategories() {
		for _, it := range g.Items {
			names = append(names, it.Name)
			items = append(items, Suggestion{Item: it, Category: g.Category})
		}
	}

	matches := fuzzy.Find(query, names)
	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		s := items[m.Index]
		s.Score = m.Score
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
