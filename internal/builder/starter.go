package builder

import (
	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
)

// StarterElements is the content a freshly created page opens with.
func StarterElements(newID layouts.IDFunc) []domain.Element {
	if newID == nil {
		newID = NewID
	}
	return []domain.Element{
		{
			ID:      newID(domain.ElementHeading),
			Type:    domain.ElementHeading,
			Content: "Welcome to My Website",
			Style:   domain.Style{"fontSize": "32px", "textAlign": "center"},
		},
		{
			ID:      newID(domain.ElementParagraph),
			Type:    domain.ElementParagraph,
			Content: "This is a sample text block. Edit this text to add your own content.",
			Style:   domain.Style{"fontSize": "16px"},
		},
		{
			ID:      newID(domain.ElementButton),
			Type:    domain.ElementButton,
			Content: "Click Me",
			Style:   domain.Style{"backgroundColor": "#3b82f6", "color": "white", "padding": "10px 20px", "borderRadius": "4px"},
		},
	}
}
