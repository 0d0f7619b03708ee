package domain

// ElementType is the closed tag that decides an element's defaults and rendering.
type ElementType string

const (
	// Text
	ElementHeading    ElementType = "heading"
	ElementSubheading ElementType = "subheading"
	ElementParagraph  ElementType = "paragraph"
	ElementLink       ElementType = "link"

	// Structure
	ElementContainer ElementType = "container"
	ElementColumns   ElementType = "columns"
	ElementDivider   ElementType = "divider"
	ElementSpacer    ElementType = "spacer"
	ElementTabs      ElementType = "tabs"
	ElementAccordion ElementType = "accordion"
	ElementCard      ElementType = "card"

	// Media
	ElementImage    ElementType = "image"
	ElementVideo    ElementType = "video"
	ElementAudio    ElementType = "audio"
	ElementIcon     ElementType = "icon"
	ElementCarousel ElementType = "carousel"
	ElementMap      ElementType = "map"

	// Interactive
	ElementButton    ElementType = "button"
	ElementTextField ElementType = "textfield"
	ElementCheckbox  ElementType = "checkbox"
	ElementRadio     ElementType = "radio"
	ElementDropdown  ElementType = "dropdown"
	ElementSlider    ElementType = "slider"
	ElementSearch    ElementType = "search"
	ElementProgress  ElementType = "progress"
	ElementSocial    ElementType = "social"
)

// Category groups element types in the palette.
type Category string

const (
	CategoryText        Category = "text"
	CategoryStructure   Category = "structure"
	CategoryMedia       Category = "media"
	CategoryInteractive Category = "interactive"
)

// Element is one node of a page tree. Children are owned inline, so
// dropping a node drops its whole subtree.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Content  string      `json:"content"`
	Style    Style       `json:"style"`
	Children []Element   `json:"children,omitempty"`
}

// IsStructural reports whether the element type can hold children.
func (t ElementType) IsStructural() bool {
	switch t {
	case ElementContainer, ElementColumns, ElementCard:
		return true
	}
	return false
}

// IsStructural reports whether e can hold children.
func (e Element) IsStructural() bool {
	return e.Type.IsStructural()
}

// Clone returns a deep copy of e, style maps and children included.
func (e Element) Clone() Element {
	out := Element{
		ID:      e.ID,
		Type:    e.Type,
		Content: e.Content,
		Style:   e.Style.Clone(),
	}
	if e.Children != nil {
		out.Children = CloneElements(e.Children)
	}
	return out
}

// CloneElements deep-copies a slice of elements. A nil input stays nil.
func CloneElements(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}
