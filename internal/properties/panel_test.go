package properties

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sitebuilder/internal/catalog"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/tree"
)

func keys(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

func TestDescribe_NothingSelected(t *testing.T) {
	p := Describe(nil)
	if !p.Empty || p.Title != "No Element Selected" {
		t.Errorf("unexpected empty panel: %+v", p)
	}
	if len(p.Sections) != 0 {
		t.Error("empty panel should have no sections")
	}
}

func TestDescribe_Sections(t *testing.T) {
	e := catalog.NewElement(domain.ElementHeading, "heading-1")
	p := Describe(&e)
	if p.Empty || p.ElementID != "heading-1" {
		t.Fatalf("unexpected panel: %+v", p)
	}
	var ids []string
	for _, s := range p.Sections {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]string{"content", "style", "advanced"}, ids); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	adv := p.Sections[2].Fields
	if adv[0].Value != "heading-1" || adv[1].Label != "Remove Element" {
		t.Errorf("advanced section = %+v", adv)
	}
}

func TestStyleFields_PerType(t *testing.T) {
	tests := []struct {
		typ  domain.ElementType
		want []string
	}{
		{domain.ElementHeading, []string{"fontSize", "textAlign", "fontWeight", "fontStyle", "textDecoration", "color", "margin"}},
		{domain.ElementButton, []string{"backgroundColor", "color", "borderRadius", "paddingLeft", "paddingTop", "margin"}},
		{domain.ElementImage, []string{"width", "height", "margin"}},
		{domain.ElementSpacer, []string{"height", "margin"}},
		{domain.ElementContainer, []string{"backgroundColor", "border", "borderRadius", "padding", "margin"}},
		{domain.ElementDivider, []string{"borderTop", "margin"}},
		{domain.ElementColumns, []string{"gridTemplateColumns", "gap", "margin"}},
		{domain.ElementCheckbox, []string{"margin"}},
	}
	for _, tt := range tests {
		got := keys(styleFields(catalog.NewElement(tt.typ, "x")))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s style fields mismatch (-want +got):\n%s", tt.typ, diff)
		}
	}
}

func TestContentFields(t *testing.T) {
	tests := []struct {
		typ  domain.ElementType
		kind FieldKind
	}{
		{domain.ElementHeading, KindText},
		{domain.ElementLink, KindText},
		{domain.ElementParagraph, KindTextarea},
		{domain.ElementProgress, KindSlider},
	}
	for _, tt := range tests {
		fs := contentFields(catalog.NewElement(tt.typ, "x"))
		if len(fs) != 1 || fs[0].Kind != tt.kind {
			t.Errorf("%s content fields = %+v", tt.typ, fs)
		}
	}
	if fs := contentFields(catalog.NewElement(domain.ElementImage, "x")); len(fs) != 0 {
		t.Errorf("image has no content editor, got %+v", fs)
	}
}

func TestFieldValues_Fallbacks(t *testing.T) {
	e := domain.Element{ID: "x", Type: domain.ElementParagraph, Style: domain.Style{}}
	f, _ := Lookup(e, "fontSize")
	if f.Value != "16" {
		t.Errorf("fontSize fallback = %q, want 16", f.Value)
	}
	f, _ = Lookup(e, "color")
	if f.Value != "#000000" {
		t.Errorf("color fallback = %q", f.Value)
	}
	bold := domain.Element{ID: "x", Type: domain.ElementHeading, Style: domain.Style{"fontWeight": "bold"}}
	f, _ = Lookup(bold, "fontWeight")
	if !f.Active {
		t.Error("bold toggle should be active")
	}
}

func sample() []domain.Element {
	return []domain.Element{
		catalog.NewElement(domain.ElementHeading, "h"),
		{ID: "c", Type: domain.ElementContainer, Style: domain.Style{}, Children: []domain.Element{
			catalog.NewElement(domain.ElementButton, "b"),
			catalog.NewElement(domain.ElementProgress, "p"),
		}},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		id, key, value string
		prop           string
		want           any
	}{
		{"h", "fontSize", "48", "fontSize", "48px"},
		{"h", "fontSize", "100px", "fontSize", "72px"},
		{"h", "textAlign", "center", "textAlign", "center"},
		{"h", "fontWeight", "", "fontWeight", "bold"},
		{"b", "borderRadius", "12", "borderRadius", "12px"},
		{"b", "paddingLeft", "16px", "paddingLeft", "16px"},
		{"c", "padding", "40px", "padding", "40px"},
		{"b", "margin", "5px", "margin", "5px"},
	}
	for _, tt := range tests {
		out, err := Apply(sample(), tt.id, tt.key, tt.value)
		if err != nil {
			t.Errorf("Apply(%s, %s, %q): %v", tt.id, tt.key, tt.value, err)
			continue
		}
		e, _ := tree.Get(out, tt.id)
		if e.Style[tt.prop] != tt.want {
			t.Errorf("Apply(%s, %s, %q): style[%s] = %v, want %v", tt.id, tt.key, tt.value, tt.prop, e.Style[tt.prop], tt.want)
		}
	}
}

func TestApply_Content(t *testing.T) {
	out, err := Apply(sample(), "h", "content", "Hello")
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := tree.Get(out, "h"); e.Content != "Hello" {
		t.Errorf("content = %q", e.Content)
	}
	out, err = Apply(sample(), "p", "content", "75")
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := tree.Get(out, "p"); e.Content != "75" {
		t.Errorf("progress content = %q", e.Content)
	}
}

func TestApply_Remove(t *testing.T) {
	out, err := Apply(sample(), "b", "remove", "")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Contains(out, "b") {
		t.Error("remove action should delete the element")
	}
}

func TestApply_Errors(t *testing.T) {
	if _, err := Apply(sample(), "h", "gap", "8px"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("gap on heading: got %v, want ErrUnknownField", err)
	}
	if _, err := Apply(sample(), "c", "padding", "13px"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("padding 13px: got %v, want ErrInvalidValue", err)
	}
	if _, err := Apply(sample(), "h", "fontSize", "big"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("fontSize big: got %v, want ErrInvalidValue", err)
	}
	if _, err := Apply(sample(), "h", "elementId", "new"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("elementId: got %v, want ErrReadOnly", err)
	}
}

func TestApply_MissingNode(t *testing.T) {
	in := sample()
	out, err := Apply(in, "ghost", "fontSize", "20")
	if err != nil {
		t.Fatalf("missing node should not error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("tree changed:\n%s", diff)
	}
}
