// Package layouts generates pre-built element subtrees for the palette's
// layout tab.
package layouts

import (
	"sitebuilder/internal/catalog"
	"sitebuilder/internal/domain"
)

// IDFunc returns a fresh element id for the given type.
type IDFunc func(domain.ElementType) string

// Preset is a layout entry shown in the palette.
type Preset struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Builtin     bool   `json:"builtin" yaml:"-"`
}

// Template is an element tree without ids. Instantiating it assigns ids.
type Template struct {
	Type     domain.ElementType `json:"type" yaml:"type"`
	Content  string             `json:"content,omitempty" yaml:"content,omitempty"`
	Style    domain.Style       `json:"style,omitempty" yaml:"style,omitempty"`
	Children []Template         `json:"children,omitempty" yaml:"children,omitempty"`
}

var builtinPresets = []Preset{
	{ID: "hero", Name: "Hero Layout", Description: "Large image/video header with CTA and tagline", Icon: "box"},
	{ID: "grid", Name: "Grid Layout", Description: "Evenly spaced blocks great for products or blog posts", Icon: "layout-grid"},
	{ID: "zigzag", Name: "Zig-Zag Layout", Description: "Alternating image and text, good for storytelling sections", Icon: "columns"},
	{ID: "single-column", Name: "Single Column", Description: "Great for mobile-first or minimalist designs", Icon: "minus"},
	{ID: "multi-column", Name: "Multi-Column", Description: "Useful for comparing features or showing multiple products", Icon: "columns"},
	{ID: "sidebar", Name: "Sidebar Layout", Description: "Navigation or filters on the left/right, content on the other side", Icon: "panel-left"},
	{ID: "card-based", Name: "Card-Based Layout", Description: "Modular design blocks (like Pinterest or modern eCommerce)", Icon: "square-stack"},
	{ID: "full-page", Name: "Full-Page Scroll", Description: "Each scroll lands the user on a new full-screen section", Icon: "chevron-down"},
}

// Only these presets have content; the rest are listed but generate nothing.
var builtinTemplates = map[string][]Template{
	"hero":   {heroTemplate()},
	"grid":   {gridTemplate()},
	"zigzag": {zigzagTemplate()},
}

// Presets returns the built-in layout presets in palette order.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	for i, p := range builtinPresets {
		p.Builtin = true
		out[i] = p
	}
	return out
}

// IsBuiltin reports whether id names a built-in preset.
func IsBuiltin(id string) bool {
	for _, p := range builtinPresets {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Generate instantiates the built-in preset layoutID. Unknown ids and
// presets without a template yield an empty slice.
func Generate(layoutID string, newID IDFunc) []domain.Element {
	return Instantiate(builtinTemplates[layoutID], newID)
}

// Instantiate turns templates into elements with fresh ids. Templates of
// unknown types are dropped along with their children.
func Instantiate(templates []Template, newID IDFunc) []domain.Element {
	out := make([]domain.Element, 0, len(templates))
	for _, t := range templates {
		if !catalog.Known(t.Type) {
			continue
		}
		e := domain.Element{
			ID:      newID(t.Type),
			Type:    t.Type,
			Content: t.Content,
			Style:   t.Style.Clone(),
		}
		if len(t.Children) > 0 {
			e.Children = Instantiate(t.Children, newID)
		}
		out = append(out, e)
	}
	return out
}

// ── built-in templates ──────────────────────────────────────

func heroTemplate() Template {
	return Template{
		Type:  domain.ElementContainer,
		Style: domain.Style{"padding": "40px 20px", "backgroundColor": "#f8fafc", "textAlign": "center"},
		Children: []Template{
			{
				Type:    domain.ElementHeading,
				Content: "Welcome to Our Website",
				Style:   domain.Style{"fontSize": "48px", "fontWeight": "bold", "marginBottom": "16px"},
			},
			{
				Type:    domain.ElementParagraph,
				Content: "A stunning hero section with a call to action button.",
				Style:   domain.Style{"fontSize": "18px", "marginBottom": "24px"},
			},
			{
				Type:    domain.ElementButton,
				Content: "Get Started",
				Style: domain.Style{
					"backgroundColor": "#3b82f6",
					"color":           "white",
					"padding":         "12px 24px",
					"borderRadius":    "4px",
					"fontSize":        "16px",
				},
			},
		},
	}
}

func gridTemplate() Template {
	card := func(n string) Template {
		return Template{
			Type:  domain.ElementCard,
			Style: domain.Style{"padding": "20px", "border": "1px solid #e5e7eb", "borderRadius": "8px"},
			Children: []Template{
				{
					Type:    domain.ElementSubheading,
					Content: "Service " + n,
					Style:   domain.Style{"fontSize": "20px", "fontWeight": "bold", "marginBottom": "12px"},
				},
				{
					Type:    domain.ElementParagraph,
					Content: "Description of service " + n + " goes here.",
					Style:   domain.Style{"fontSize": "16px"},
				},
			},
		}
	}
	return Template{
		Type:  domain.ElementContainer,
		Style: domain.Style{"padding": "40px 20px"},
		Children: []Template{
			{
				Type:    domain.ElementHeading,
				Content: "Our Services",
				Style:   domain.Style{"fontSize": "32px", "fontWeight": "bold", "marginBottom": "24px", "textAlign": "center"},
			},
			{
				Type:     domain.ElementColumns,
				Style:    domain.Style{"display": "grid", "gridTemplateColumns": "repeat(3, 1fr)", "gap": "20px"},
				Children: []Template{card("1"), card("2"), card("3")},
			},
		},
	}
}

func zigzagTemplate() Template {
	image := Template{
		Type:  domain.ElementImage,
		Style: domain.Style{"width": "100%", "height": "300px", "backgroundColor": "#e5e7eb", "borderRadius": "8px"},
	}
	text := func(title, body string) Template {
		return Template{
			Type:  domain.ElementContainer,
			Style: domain.Style{"padding": "0"},
			Children: []Template{
				{
					Type:    domain.ElementSubheading,
					Content: title,
					Style:   domain.Style{"fontSize": "24px", "fontWeight": "bold", "marginBottom": "16px"},
				},
				{
					Type:    domain.ElementParagraph,
					Content: body,
					Style:   domain.Style{"fontSize": "16px", "marginBottom": "16px"},
				},
				{
					Type:    domain.ElementButton,
					Content: "Learn More",
					Style:   domain.Style{"backgroundColor": "#3b82f6", "color": "white", "padding": "8px 16px", "borderRadius": "4px"},
				},
			},
		}
	}
	return Template{
		Type:  domain.ElementContainer,
		Style: domain.Style{"padding": "40px 20px"},
		Children: []Template{
			{
				Type: domain.ElementColumns,
				Style: domain.Style{
					"display":             "grid",
					"gridTemplateColumns": "1fr 1fr",
					"gap":                 "40px",
					"alignItems":          "center",
					"marginBottom":        "60px",
				},
				Children: []Template{
					image,
					text("Feature One", "Description of feature one goes here. This is a zig-zag layout with alternating image and text sections."),
				},
			},
			{
				Type:  domain.ElementColumns,
				Style: domain.Style{"display": "grid", "gridTemplateColumns": "1fr 1fr", "gap": "40px", "alignItems": "center"},
				Children: []Template{
					text("Feature Two", "Description of feature two goes here. Notice how the image is now on the right side for visual interest."),
					image,
				},
			},
		},
	}
}
