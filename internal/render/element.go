// Package render turns element trees into HTML for the editor canvas.
package render

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/properties"
)

// Render builds the HTML node for one element and its children. Unknown
// types render nothing and return nil.
func Render(e domain.Element) *html.Node {
	return renderSelected(e, "")
}

// renderSelected is Render with the selected element's wrapper outlined
// wherever it sits in the tree.
func renderSelected(e domain.Element, selectedID string) *html.Node {
	switch e.Type {
	case domain.ElementHeading:
		return text(atom.H1, e.Style, e.Content)
	case domain.ElementSubheading:
		return text(atom.H2, e.Style, e.Content)
	case domain.ElementParagraph:
		return text(atom.P, e.Style, e.Content)
	case domain.ElementButton:
		n := text(atom.Button, e.Style, e.Content)
		setAttr(n, "class", "cursor-pointer")
		return n
	case domain.ElementLink:
		n := text(atom.A, e.Style, e.Content)
		setAttr(n, "href", "#")
		return n

	case domain.ElementImage:
		return box("bg-gray-200 flex items-center justify-center",
			withDefaults(e.Style, domain.Style{"height": "200px"}),
			icon("image", "h-10 w-10 text-gray-400"))
	case domain.ElementVideo:
		return box("bg-gray-200 flex items-center justify-center",
			withDefaults(e.Style, domain.Style{"height": "315px"}),
			icon("file-video", "h-10 w-10 text-gray-400"),
			icon("play", "h-10 w-10 text-gray-400 absolute"))
	case domain.ElementAudio:
		bar := div("flex-1 h-2 bg-gray-200 rounded", div("h-full w-1/3 bg-blue-500 rounded"))
		return box("bg-gray-100 p-4 rounded flex items-center", e.Style,
			icon("music", "h-6 w-6 text-gray-400 mr-2"), bar,
			icon("play", "h-6 w-6 text-gray-400 ml-2"))
	case domain.ElementMap:
		return box("bg-gray-200 rounded relative overflow-hidden",
			withDefaults(e.Style, domain.Style{"height": "300px"}),
			div("absolute inset-0 opacity-20"),
			div("absolute top-1/2 left-1/2 transform -translate-x-1/2 -translate-y-1/2",
				icon("map-pin", "h-8 w-8 text-red-500")))
	case domain.ElementIcon:
		return box("flex justify-center", e.Style, icon("palette", "h-8 w-8 text-gray-500"))
	case domain.ElementCarousel:
		return renderCarousel(e)

	case domain.ElementDivider:
		return styled(elem(atom.Hr), e.Style)
	case domain.ElementSpacer:
		return styled(elem(atom.Div), withDefaults(e.Style, domain.Style{"height": "50px"}))
	case domain.ElementContainer:
		return renderContainer(e, selectedID)
	case domain.ElementColumns:
		return renderColumns(e, selectedID)
	case domain.ElementCard:
		return renderCard(e, selectedID)
	case domain.ElementTabs:
		return renderTabs(e)
	case domain.ElementAccordion:
		return renderAccordion(e)

	case domain.ElementTextField:
		n := styled(elem(atom.Input), e.Style)
		setAttr(n, "type", "text")
		setAttr(n, "placeholder", "Text input")
		return n
	case domain.ElementCheckbox:
		return box("flex items-center space-x-2", e.Style,
			input("checkbox", "checkbox-"+e.ID, ""),
			label("checkbox-"+e.ID, e.Content))
	case domain.ElementRadio:
		return renderRadio(e)
	case domain.ElementDropdown:
		return renderDropdown(e)
	case domain.ElementSlider:
		n := styled(elem(atom.Input), e.Style)
		setAttr(n, "type", "range")
		setAttr(n, "min", "0")
		setAttr(n, "max", "100")
		setAttr(n, "step", "1")
		setAttr(n, "value", "50")
		return n
	case domain.ElementSearch:
		in := input("search", "", "Search...")
		setAttr(in, "class", "pl-8")
		return box("relative", e.Style, icon("search", "absolute left-2 top-2.5 h-4 w-4 text-gray-400"), in)
	case domain.ElementProgress:
		n := styled(elem(atom.Progress), e.Style)
		setAttr(n, "max", "100")
		setAttr(n, "value", strconv.Itoa(ProgressValue(e.Content)))
		return n
	case domain.ElementSocial:
		return box("flex space-x-2", e.Style,
			socialBadge("bg-blue-500", "f"),
			socialBadge("bg-blue-400", "t"),
			socialBadge("bg-pink-500", "i"),
			socialBadge("bg-red-500", "y"))
	}
	return nil
}

// ProgressValue reads the leading integer of progress content ("75%" is
// 75), falling back to 50 when there is none or it is zero. The result is
// clamped to 0..100.
func ProgressValue(content string) int {
	v, err := properties.LeadingInt(content)
	if err != nil || v == 0 {
		return 50
	}
	return min(max(v, 0), 100)
}

// ── structural ──────────────────────────────────────────────

func renderContainer(e domain.Element, selectedID string) *html.Node {
	n := dropList(box("border border-dashed border-gray-300 p-4 rounded", e.Style), e.ID)
	if len(e.Children) == 0 {
		n.AppendChild(div("text-gray-400 text-center", textNode("Container (Drag elements here)")))
		return n
	}
	appendChildren(n, e.Children, "my-2", selectedID)
	return n
}

func renderColumns(e domain.Element, selectedID string) *html.Node {
	n := dropList(box("grid grid-cols-2 gap-4", e.Style), e.ID)
	if len(e.Children) == 0 {
		for _, label := range []string{"Column 1", "Column 2"} {
			n.AppendChild(div("border border-dashed border-gray-200 p-4 rounded text-gray-400 text-center", textNode(label)))
		}
		return n
	}
	appendChildren(n, e.Children, "border border-dashed border-gray-200 p-2 rounded", selectedID)
	return n
}

func renderCard(e domain.Element, selectedID string) *html.Node {
	n := dropList(box("border rounded-lg p-4 bg-white", e.Style), e.ID)
	if len(e.Children) == 0 {
		title := withClass(elem(atom.H3), "text-lg font-medium mb-2")
		title.AppendChild(textNode("Card Title"))
		body := withClass(elem(atom.P), "text-gray-500")
		body.AppendChild(textNode("Card content goes here"))
		n.AppendChild(title)
		n.AppendChild(body)
		return n
	}
	appendChildren(n, e.Children, "my-2", selectedID)
	return n
}

// dropList marks a structural body as the drop target for its children.
func dropList(n *html.Node, id string) *html.Node {
	setAttr(n, "data-droppable-id", builder.ContainerListID(id))
	return n
}

func appendChildren(parent *html.Node, children []domain.Element, wrapClass, selectedID string) {
	for _, c := range children {
		child := renderSelected(c, selectedID)
		if child == nil {
			continue
		}
		class := wrapClass
		if selectedID != "" && c.ID == selectedID {
			class += " " + selectedClass
		}
		wrap := div(class, child)
		setAttr(wrap, "data-element-id", c.ID)
		parent.AppendChild(wrap)
	}
}

func renderTabs(e domain.Element) *html.Node {
	bar := div("flex border-b",
		div("px-4 py-2 border-b-2 border-blue-500 font-medium", textNode("Tab 1")),
		div("px-4 py-2 text-gray-500", textNode("Tab 2")),
		div("px-4 py-2 text-gray-500", textNode("Tab 3")))
	return box("", e.Style, bar, div("p-4 border border-t-0 rounded-b", textNode("Tab content goes here")))
}

func renderAccordion(e domain.Element) *html.Node {
	n := box("", e.Style)
	for _, i := range []string{"1", "2"} {
		summary := elem(atom.Summary)
		summary.AppendChild(textNode("Accordion Item " + i))
		item := withClass(elem(atom.Details), "border-b")
		item.AppendChild(summary)
		item.AppendChild(div("pb-4", textNode("Content for accordion item "+i)))
		n.AppendChild(item)
	}
	return n
}

// ── media ───────────────────────────────────────────────────

func renderCarousel(e domain.Element) *html.Node {
	dots := div("absolute bottom-4 left-0 right-0 flex justify-center space-x-2",
		div("w-2 h-2 rounded-full bg-blue-500"),
		div("w-2 h-2 rounded-full bg-gray-300"),
		div("w-2 h-2 rounded-full bg-gray-300"))
	arrow := func(side, iconClass string) *html.Node {
		b := withClass(elem(atom.Button), "absolute "+side+" top-1/2 transform -translate-y-1/2 w-8 h-8 rounded-full bg-white/80 flex items-center justify-center")
		b.AppendChild(icon("chevron-right", iconClass))
		return b
	}
	return box("relative rounded overflow-hidden",
		withDefaults(e.Style, domain.Style{"height": "300px"}),
		div("absolute inset-0 bg-gray-200 flex items-center justify-center", icon("image", "h-10 w-10 text-gray-400")),
		dots,
		arrow("left-2", "h-4 w-4 rotate-180"),
		arrow("right-2", "h-4 w-4"))
}

// ── interactive ─────────────────────────────────────────────

func renderRadio(e domain.Element) *html.Node {
	n := box("", e.Style)
	for _, i := range []string{"1", "2"} {
		id := "radio-" + i + "-" + e.ID
		in := input("radio", id, "")
		setAttr(in, "name", "radio-"+e.ID)
		setAttr(in, "value", "option-"+i)
		if i == "1" {
			setAttr(in, "checked", "")
		}
		n.AppendChild(div("flex items-center space-x-2", in, label(id, "Option "+i)))
	}
	return n
}

func renderDropdown(e domain.Element) *html.Node {
	n := styled(elem(atom.Select), e.Style)
	placeholder := elem(atom.Option)
	setAttr(placeholder, "value", "")
	placeholder.AppendChild(textNode("Select an option"))
	n.AppendChild(placeholder)
	for _, i := range []string{"1", "2", "3"} {
		opt := elem(atom.Option)
		setAttr(opt, "value", "option"+i)
		opt.AppendChild(textNode("Option " + i))
		n.AppendChild(opt)
	}
	return n
}

func socialBadge(bg, letter string) *html.Node {
	return div("w-8 h-8 rounded-full "+bg+" flex items-center justify-center text-white", textNode(letter))
}

// ── node helpers ────────────────────────────────────────────

func elem(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func text(a atom.Atom, style domain.Style, content string) *html.Node {
	n := styled(elem(a), style)
	if content != "" {
		n.AppendChild(textNode(content))
	}
	return n
}

func div(class string, children ...*html.Node) *html.Node {
	n := withClass(elem(atom.Div), class)
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func box(class string, style domain.Style, children ...*html.Node) *html.Node {
	return styled(div(class, children...), style)
}

func icon(name, class string) *html.Node {
	n := withClass(elem(atom.I), class)
	setAttr(n, "data-icon", name)
	return n
}

func input(typ, id, placeholder string) *html.Node {
	n := elem(atom.Input)
	setAttr(n, "type", typ)
	if id != "" {
		setAttr(n, "id", id)
	}
	if placeholder != "" {
		setAttr(n, "placeholder", placeholder)
	}
	return n
}

func label(forID, content string) *html.Node {
	n := elem(atom.Label)
	setAttr(n, "for", forID)
	n.AppendChild(textNode(content))
	return n
}

func withClass(n *html.Node, class string) *html.Node {
	if class != "" {
		setAttr(n, "class", class)
	}
	return n
}

func styled(n *html.Node, style domain.Style) *html.Node {
	if css := CSS(style); css != "" {
		setAttr(n, "style", css)
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func withDefaults(style, defaults domain.Style) domain.Style {
	out := defaults.Clone()
	for k, v := range style {
		out[k] = v
	}
	return out
}

// ── css ─────────────────────────────────────────────────────

// CSS renders a style map as an inline declaration list with properties in
// sorted order, e.g. {fontSize: "32px"} -> "font-size: 32px".
func CSS(style domain.Style) string {
	if len(style) == 0 {
		return ""
	}
	parts := make([]string, 0, len(style))
	for _, k := range style.Keys() {
		v := style.String(k)
		if v == "" {
			continue
		}
		parts = append(parts, KebabCase(k)+": "+v)
	}
	return strings.Join(parts, "; ")
}

// KebabCase converts a camelCase property name to its CSS form.
func KebabCase(prop string) string {
	var b strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
