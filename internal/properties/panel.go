// Package properties describes the right-hand properties panel for the
// selected element and applies edits made through it.
package properties

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/tree"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrReadOnly     = errors.New("field is read-only")
	ErrInvalidValue = errors.New("invalid field value")
)

// FieldKind selects the input widget.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSlider   FieldKind = "slider"
	KindSelect   FieldKind = "select"
	KindChoice   FieldKind = "choice"
	KindToggle   FieldKind = "toggle"
	KindColor    FieldKind = "color"
	KindReadOnly FieldKind = "readonly"
	KindAction   FieldKind = "action"
)

// Target says where an edit lands.
type Target string

const (
	TargetContent Target = "content"
	TargetStyle   Target = "style"
	TargetNone    Target = "none"
	TargetRemove  Target = "remove"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one control in the panel.
type Field struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Target      Target    `json:"target"`
	Property    string    `json:"property,omitempty"`
	Value       string    `json:"value"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Min         int       `json:"min,omitempty"`
	Max         int       `json:"max,omitempty"`
	Step        int       `json:"step,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Rows        int       `json:"rows,omitempty"`
	Active      bool      `json:"active,omitempty"`
}

type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Panel is the view model for the properties sidebar.
type Panel struct {
	Empty       bool               `json:"empty"`
	Title       string             `json:"title"`
	Message     string             `json:"message,omitempty"`
	ElementID   string             `json:"elementId,omitempty"`
	ElementType domain.ElementType `json:"elementType,omitempty"`
	Sections    []Section          `json:"sections,omitempty"`
}

// Describe builds the panel for the selected element. nil means nothing is
// selected.
func Describe(selected *domain.Element) Panel {
	if selected == nil {
		return Panel{
			Empty:   true,
			Title:   "No Element Selected",
			Message: "Select an element to edit its properties",
		}
	}
	e := *selected
	return Panel{
		Title:       "Element Properties",
		ElementID:   e.ID,
		ElementType: e.Type,
		Sections: []Section{
			{ID: "content", Title: "Content", Fields: contentFields(e)},
			{ID: "style", Title: "Style", Fields: styleFields(e)},
			{ID: "advanced", Title: "Advanced", Fields: advancedFields(e)},
		},
	}
}

// Fields returns every field for e in panel order.
func Fields(e domain.Element) []Field {
	var out []Field
	out = append(out, contentFields(e)...)
	out = append(out, styleFields(e)...)
	return append(out, advancedFields(e)...)
}

// Lookup finds the field with key among the fields offered for e.
func Lookup(e domain.Element, key string) (Field, bool) {
	for _, f := range Fields(e) {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Apply routes a panel edit to the tree. A missing node leaves elems
// unchanged without error.
func Apply(elems []domain.Element, id, key, value string) ([]domain.Element, error) {
	e, ok := tree.Get(elems, id)
	if !ok {
		return elems, nil
	}
	f, ok := Lookup(e, key)
	if !ok {
		return elems, fmt.Errorf("%s on %s: %w", key, e.Type, ErrUnknownField)
	}

	v, err := f.normalize(value)
	if err != nil {
		return elems, fmt.Errorf("%s: %w", key, err)
	}
	switch f.Target {
	case TargetContent:
		return tree.UpdateContent(elems, id, v), nil
	case TargetStyle:
		return tree.UpdateStyle(elems, id, f.Property, v), nil
	case TargetRemove:
		return tree.Remove(elems, id), nil
	}
	return elems, fmt.Errorf("%s: %w", key, ErrReadOnly)
}

func (f Field) normalize(value string) (string, error) {
	switch f.Kind {
	case KindSlider:
		n, err := LeadingInt(value)
		if err != nil {
			return "", fmt.Errorf("%q: %w", value, ErrInvalidValue)
		}
		n = max(f.Min, min(f.Max, n))
		return strconv.Itoa(n) + f.Unit, nil
	case KindSelect, KindChoice:
		for _, o := range f.Options {
			if o.Value == value {
				return value, nil
			}
		}
		return "", fmt.Errorf("%q: %w", value, ErrInvalidValue)
	case KindToggle:
		if value == "" {
			return f.Options[0].Value, nil
		}
		return value, nil
	}
	return value, nil
}

// LeadingInt parses the leading integer of s: "24", "24px" and "24.6" are
// all 24.
func LeadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '-' && end == 0 || s[end] >= '0' && s[end] <= '9') {
		end++
	}
	return strconv.Atoi(s[:end])
}

// intOr mirrors parseInt(v) || fallback.
func intOr(v string, fallback int) int {
	n, err := LeadingInt(v)
	if err != nil || n == 0 {
		return fallback
	}
	return n
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
