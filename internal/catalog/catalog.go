// Package catalog is the fixed registry of element types offered by the
// palette, with the content and style every new element starts from.
package catalog

import "sitebuilder/internal/domain"

// Item is one draggable palette entry.
type Item struct {
	ID   domain.ElementType `json:"id"`
	Name string             `json:"name"`
	Icon string             `json:"icon"`
}

// CategoryGroup is a palette group in display order.
type CategoryGroup struct {
	Category domain.Category `json:"category"`
	Items    []Item          `json:"items"`
}

// Section is one of the palette tabs.
type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Icons are lucide icon names; the frontend maps them to components.
var categories = []CategoryGroup{
	{
		Category: domain.CategoryText,
		Items: []Item{
			{ID: domain.ElementHeading, Name: "Heading", Icon: "heading-1"},
			{ID: domain.ElementSubheading, Name: "Subheading", Icon: "heading-2"},
			{ID: domain.ElementParagraph, Name: "Paragraph", Icon: "type"},
			{ID: domain.ElementLink, Name: "Link", Icon: "link"},
		},
	},
	{
		Category: domain.CategoryStructure,
		Items: []Item{
			{ID: domain.ElementContainer, Name: "Container", Icon: "box"},
			{ID: domain.ElementColumns, Name: "Columns", Icon: "columns"},
			{ID: domain.ElementDivider, Name: "Divider", Icon: "minus"},
			{ID: domain.ElementSpacer, Name: "Spacer", Icon: "move-horizontal"},
			{ID: domain.ElementTabs, Name: "Tabs", Icon: "square-stack"},
			{ID: domain.ElementAccordion, Name: "Accordion", Icon: "chevron-down"},
			{ID: domain.ElementCard, Name: "Card", Icon: "square"},
		},
	},
	{
		Category: domain.CategoryMedia,
		Items: []Item{
			{ID: domain.ElementImage, Name: "Image", Icon: "image"},
			{ID: domain.ElementVideo, Name: "Video", Icon: "file-video"},
			{ID: domain.ElementAudio, Name: "Audio", Icon: "music"},
			{ID: domain.ElementIcon, Name: "Icon", Icon: "palette"},
			{ID: domain.ElementCarousel, Name: "Carousel", Icon: "layout-grid"},
			{ID: domain.ElementMap, Name: "Map", Icon: "map-pin"},
		},
	},
	{
		Category: domain.CategoryInteractive,
		Items: []Item{
			{ID: domain.ElementButton, Name: "Button", Icon: "square"},
			{ID: domain.ElementTextField, Name: "Text Field", Icon: "shapes"},
			{ID: domain.ElementCheckbox, Name: "Checkbox", Icon: "check"},
			{ID: domain.ElementRadio, Name: "Radio", Icon: "radio"},
			{ID: domain.ElementDropdown, Name: "Dropdown", Icon: "chevron-down"},
			{ID: domain.ElementSlider, Name: "Slider", Icon: "minus"},
			{ID: domain.ElementSearch, Name: "Search", Icon: "search"},
			{ID: domain.ElementProgress, Name: "Progress", Icon: "minus"},
			{ID: domain.ElementSocial, Name: "Social", Icon: "message-square"},
		},
	},
}

var sections = []Section{
	{ID: "elements", Name: "Elements", Icon: "type"},
	{ID: "layouts", Name: "Layouts", Icon: "layout-grid"},
	{ID: "pages", Name: "Pages", Icon: "square-stack"},
}

var defaultContent = map[domain.ElementType]string{
	domain.ElementHeading:    "New Heading",
	domain.ElementSubheading: "New Subheading",
	domain.ElementParagraph:  "New paragraph text. Click to edit this text.",
	domain.ElementButton:     "New Button",
	domain.ElementLink:       "New Link",
	domain.ElementTextField:  "Text Field",
	domain.ElementCheckbox:   "Checkbox Option",
	domain.ElementRadio:      "Radio Option",
	domain.ElementDropdown:   "Dropdown Menu",
	domain.ElementSearch:     "Search",
	domain.ElementProgress:   "50",
}

var defaultStyle = map[domain.ElementType]domain.Style{
	domain.ElementHeading:    {"fontSize": "32px", "fontWeight": "bold", "marginBottom": "16px"},
	domain.ElementSubheading: {"fontSize": "24px", "fontWeight": "bold", "marginBottom": "12px"},
	domain.ElementParagraph:  {"fontSize": "16px", "lineHeight": "1.5", "marginBottom": "16px"},
	domain.ElementButton:     {"backgroundColor": "#3b82f6", "color": "white", "padding": "10px 20px", "borderRadius": "4px"},
	domain.ElementLink:       {"color": "#3b82f6", "textDecoration": "underline"},
	domain.ElementDivider:    {"borderTop": "1px solid #e5e7eb", "margin": "20px 0"},
	domain.ElementSpacer:     {"height": "40px"},
	domain.ElementImage:      {"width": "100%", "height": "200px"},
	domain.ElementVideo:      {"width": "100%", "height": "315px"},
	domain.ElementAudio:      {"width": "100%"},
	domain.ElementCard:       {"padding": "16px", "border": "1px solid #e5e7eb", "borderRadius": "8px", "backgroundColor": "#ffffff"},
	domain.ElementContainer:  {"padding": "20px", "border": "1px dashed #e5e7eb", "borderRadius": "4px"},
	domain.ElementProgress:   {"value": 50},
}

var index = buildIndex()

type entry struct {
	item     Item
	category domain.Category
}

func buildIndex() map[domain.ElementType]entry {
	idx := make(map[domain.ElementType]entry)
	for _, g := range categories {
		for _, it := range g.Items {
			idx[it.ID] = entry{item: it, category: g.Category}
		}
	}
	return idx
}

// DefaultContent returns the initial content for t, or "" for types
// without text content and for unknown types.
func DefaultContent(t domain.ElementType) string {
	return defaultContent[t]
}

// DefaultStyle returns a fresh copy of the initial style for t. Unknown
// types get an empty map.
func DefaultStyle(t domain.ElementType) domain.Style {
	s, ok := defaultStyle[t]
	if !ok {
		return domain.Style{}
	}
	return s.Clone()
}

// AllCategories returns the palette groups in display order.
func AllCategories() []CategoryGroup {
	out := make([]CategoryGroup, len(categories))
	for i, g := range categories {
		items := make([]Item, len(g.Items))
		copy(items, g.Items)
		out[i] = CategoryGroup{Category: g.Category, Items: items}
	}
	return out
}

// Items returns the items of one category, or nil if it does not exist.
func Items(c domain.Category) []Item {
	for _, g := range categories {
		if g.Category == c {
			items := make([]Item, len(g.Items))
			copy(items, g.Items)
			return items
		}
	}
	return nil
}

// AllSections returns the palette tabs: elements, layouts, pages.
func AllSections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Lookup finds the palette item and category for t.
func Lookup(t domain.ElementType) (Item, domain.Category, bool) {
	e, ok := index[t]
	return e.item, e.category, ok
}

// Known reports whether t is in the catalog.
func Known(t domain.ElementType) bool {
	_, ok := index[t]
	return ok
}

// Types lists every element type in palette order.
func Types() []domain.ElementType {
	var out []domain.ElementType
	for _, g := range categories {
		for _, it := range g.Items {
			out = append(out, it.ID)
		}
	}
	return out
}

// NewElement builds a fresh element of type t with catalog defaults.
func NewElement(t domain.ElementType, id string) domain.Element {
	return domain.Element{
		ID:      id,
		Type:    t,
		Content: DefaultContent(t),
		Style:   DefaultStyle(t),
	}
}
