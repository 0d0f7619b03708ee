package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Properties the editor can emit. Anything else in a style attribute is
// dropped by the sanitizer.
var cssProperties = []string{
	"align-items", "background", "background-color", "border", "border-bottom",
	"border-left", "border-radius", "border-right", "border-top", "box-shadow",
	"color", "display", "font-family", "font-size", "font-style", "font-weight",
	"gap", "grid-template-columns", "height", "justify-content", "letter-spacing",
	"line-height", "margin", "margin-bottom", "margin-left", "margin-right",
	"margin-top", "max-width", "min-height", "opacity", "padding", "padding-bottom",
	"padding-left", "padding-right", "padding-top", "text-align", "text-decoration",
	"text-transform", "width",
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func canvasPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements(
			"div", "p", "h1", "h2", "h3", "a", "button", "hr", "i", "label",
			"input", "select", "option", "progress", "details", "summary",
		)
		p.AllowAttrs("class").Globally()
		p.AllowAttrs("id").Globally()
		p.AllowDataAttributes()
		p.AllowAttrs("draggable").OnElements("div")
		p.AllowAttrs("href").OnElements("a")
		p.AllowRelativeURLs(true)
		p.AllowAttrs("type", "placeholder", "name", "value", "checked", "min", "max", "step").OnElements("input")
		p.AllowAttrs("value").OnElements("option")
		p.AllowAttrs("value", "max").OnElements("progress")
		p.AllowAttrs("for").OnElements("label")
		p.AllowStyles(cssProperties...).MatchingHandler(safeCSSValue).Globally()
		policy = p
	})
	return policy
}

func safeCSSValue(v string) bool {
	lower := strings.ToLower(v)
	for _, bad := range []string{"url(", "expression(", "javascript:", "<", ">"} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return true
}

// Sanitize strips anything the canvas renderer would never produce.
func Sanitize(raw string) string {
	return canvasPolicy().Sanitize(raw)
}
