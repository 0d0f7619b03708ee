package render

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
)

// ViewMode selects the preview width of the canvas.
type ViewMode string

const (
	ViewMobile  ViewMode = "mobile"
	ViewTablet  ViewMode = "tablet"
	ViewDesktop ViewMode = "desktop"
)

// ParseViewMode maps unknown values to desktop.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewMobile, ViewTablet:
		return ViewMode(s)
	}
	return ViewDesktop
}

// MaxWidth returns the canvas width clamp class and its CSS value.
func (v ViewMode) MaxWidth() (class, width string) {
	switch v {
	case ViewMobile:
		return "max-w-sm", "24rem"
	case ViewTablet:
		return "max-w-2xl", "42rem"
	}
	return "max-w-5xl", "64rem"
}

// Canvas is everything needed to draw the editing surface.
type Canvas struct {
	Elements   []domain.Element
	SelectedID string
	ViewMode   ViewMode
}

const (
	selectedClass = "p-2 my-2 rounded-md relative outline outline-2 outline-blue-500"
	hoverClass    = "p-2 my-2 rounded-md relative hover:outline hover:outline-1 hover:outline-gray-300"
	emptyMessage  = "Drag elements here or select a layout template"
)

// CanvasNode builds the canvas tree. Each top-level element sits in a
// draggable wrapper carrying its id and index.
func CanvasNode(c Canvas) *html.Node {
	class, width := ParseViewMode(string(c.ViewMode)).MaxWidth()
	frame := div("mx-auto bg-white shadow-sm my-4 transition-all duration-300 " + class)
	setAttr(frame, "style", "max-width: "+width)
	setAttr(frame, "data-view-mode", string(ParseViewMode(string(c.ViewMode))))

	drop := div("min-h-[calc(100vh-8rem)] p-4")
	setAttr(drop, "data-droppable-id", builder.CanvasListID)
	frame.AppendChild(drop)

	for i, e := range c.Elements {
		wrapClass := hoverClass
		if c.SelectedID != "" && c.SelectedID == e.ID {
			wrapClass = selectedClass
		}
		wrap := div(wrapClass)
		setAttr(wrap, "data-element-id", e.ID)
		setAttr(wrap, "data-index", strconv.Itoa(i))
		setAttr(wrap, "draggable", "true")
		if n := renderSelected(e, c.SelectedID); n != nil {
			wrap.AppendChild(n)
		}
		drop.AppendChild(wrap)
	}

	if len(c.Elements) == 0 {
		msg := withClass(elem(atom.P), "text-gray-500")
		msg.AppendChild(textNode(emptyMessage))
		drop.AppendChild(div("flex flex-col items-center justify-center h-64 border-2 border-dashed border-gray-300 rounded-md", msg))
	}
	return frame
}

// RenderCanvas renders the canvas to sanitized HTML for the webview.
func RenderCanvas(c Canvas) (string, error) {
	raw, err := HTML(CanvasNode(c))
	if err != nil {
		return "", err
	}
	return Sanitize(raw), nil
}

// RenderElements renders a forest without canvas chrome.
func RenderElements(elems []domain.Element) (string, error) {
	var buf bytes.Buffer
	for _, e := range elems {
		n := Render(e)
		if n == nil {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render %s: %w", e.ID, err)
		}
	}
	return buf.String(), nil
}

// HTML serializes a single node.
func HTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
