package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Style maps CSS-like property names (camelCase, e.g. "fontSize") to string
// or numeric values.
type Style map[string]any

// Clone returns a shallow copy; values are scalars so this is a full copy.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of s with prop set to value. Other properties are kept.
func (s Style) With(prop string, value any) Style {
	out := s.Clone()
	out[prop] = value
	return out
}

// String returns the property as a string, formatting numbers without
// a trailing ".0".
func (s Style) String(prop string) string {
	v, ok := s[prop]
	if !ok || v == nil {
		return ""
	}
	return FormatStyleValue(v)
}

// Keys returns the property names in sorted order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrStyleValue is returned for style values that are not a string or a
// number.
var ErrStyleValue = errors.New("style value must be a string or a number")

// CheckStyleValue accepts the value kinds an edit may store: strings and
// JSON numbers (float64), plus int for values set from Go.
func CheckStyleValue(prop string, v any) error {
	switch v.(type) {
	case string, float64, int:
		return nil
	}
	return fmt.Errorf("%s: %w (got %T)", prop, ErrStyleValue, v)
}

// FormatStyleValue renders a style value as text.
func FormatStyleValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
