package tree

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sitebuilder/internal/domain"
)

func el(id string, typ domain.ElementType, children ...domain.Element) domain.Element {
	return domain.Element{ID: id, Type: typ, Style: domain.Style{}, Children: children}
}

func sample() []domain.Element {
	return []domain.Element{
		el("h1", domain.ElementHeading),
		el("c1", domain.ElementContainer,
			el("p1", domain.ElementParagraph),
			el("cols", domain.ElementColumns,
				el("card1", domain.ElementCard, el("sub1", domain.ElementSubheading)),
				el("card2", domain.ElementCard),
			),
		),
		el("b1", domain.ElementButton),
	}
}

func topIDs(elems []domain.Element) []string {
	ids := make([]string, len(elems))
	for i, e := range elems {
		ids[i] = e.ID
	}
	return ids
}

func TestInsertAt_Clamps(t *testing.T) {
	tests := []struct {
		index int
		want  []string
	}{
		{-5, []string{"new", "h1", "c1", "b1"}},
		{0, []string{"new", "h1", "c1", "b1"}},
		{1, []string{"h1", "new", "c1", "b1"}},
		{3, []string{"h1", "c1", "b1", "new"}},
		{99, []string{"h1", "c1", "b1", "new"}},
	}
	for _, tt := range tests {
		got := topIDs(InsertAt(sample(), tt.index, el("new", domain.ElementLink)))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("InsertAt(%d) mismatch (-want +got):\n%s", tt.index, diff)
		}
	}
}

func TestInsertAt_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := IDs(in)
	_ = InsertAt(in, 1, el("new", domain.ElementLink))
	if diff := cmp.Diff(before, IDs(in)); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestReorder_IsPermutation(t *testing.T) {
	in := []domain.Element{el("a", domain.ElementHeading), el("b", domain.ElementHeading), el("c", domain.ElementHeading), el("d", domain.ElementHeading)}
	for from := 0; from < len(in); from++ {
		for to := 0; to < len(in); to++ {
			got := topIDs(Reorder(in, from, to))

			sortedGot := append([]string(nil), got...)
			sort.Strings(sortedGot)
			if diff := cmp.Diff([]string{"a", "b", "c", "d"}, sortedGot); diff != "" {
				t.Fatalf("Reorder(%d,%d) not a permutation: %v", from, to, got)
			}
			moved := in[from].ID
			if got[to] != moved {
				t.Errorf("Reorder(%d,%d): %s at %d, got %v", from, to, moved, to, got)
			}

			var restGot, restWant []string
			for _, id := range got {
				if id != moved {
					restGot = append(restGot, id)
				}
			}
			for _, e := range in {
				if e.ID != moved {
					restWant = append(restWant, e.ID)
				}
			}
			if diff := cmp.Diff(restWant, restGot); diff != "" {
				t.Errorf("Reorder(%d,%d) changed relative order (-want +got):\n%s", from, to, diff)
			}
		}
	}
}

func TestReorder_OutOfRangeIsNoop(t *testing.T) {
	in := sample()
	for _, c := range [][2]int{{-1, 0}, {0, 3}, {5, 1}, {1, 1}} {
		if diff := cmp.Diff(topIDs(in), topIDs(Reorder(in, c[0], c[1]))); diff != "" {
			t.Errorf("Reorder(%d,%d) should be a no-op:\n%s", c[0], c[1], diff)
		}
	}
}

func TestUpdateContent_Nested(t *testing.T) {
	in := sample()
	out := UpdateContent(in, "sub1", "Service 1")

	got, ok := Get(out, "sub1")
	if !ok || got.Content != "Service 1" {
		t.Fatalf("nested content not updated: %+v", got)
	}
	orig, _ := Get(in, "sub1")
	if orig.Content != "" {
		t.Error("input tree was mutated")
	}
}

func TestUpdateContent_MissingIDIsNoop(t *testing.T) {
	in := sample()
	out := UpdateContent(in, "does-not-exist", "x")
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("tree changed (-want +got):\n%s", diff)
	}
}

func TestUpdateStyle_PreservesSiblings(t *testing.T) {
	in := []domain.Element{{ID: "n", Type: domain.ElementHeading, Style: domain.Style{"a": 1, "b": 2}}}
	out := UpdateStyle(in, "n", "a", 9)
	if diff := cmp.Diff(domain.Style{"a": 9, "b": 2}, out[0].Style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}
	if in[0].Style["a"] != 1 {
		t.Error("input style was mutated")
	}
}

func TestUpdateStyle_NilStyle(t *testing.T) {
	in := []domain.Element{{ID: "n", Type: domain.ElementDivider}}
	out := UpdateStyle(in, "n", "margin", "10px")
	if out[0].Style["margin"] != "10px" {
		t.Errorf("expected margin set, got %v", out[0].Style)
	}
}

func TestUpdateStyle_Nested(t *testing.T) {
	out := UpdateStyle(sample(), "card2", "padding", "20px")
	got, _ := Get(out, "card2")
	if got.Style["padding"] != "20px" {
		t.Errorf("nested style not updated: %v", got.Style)
	}
}

func TestRemove_TopLevel(t *testing.T) {
	out := Remove(sample(), "h1")
	if diff := cmp.Diff([]string{"c1", "b1"}, topIDs(out)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove_CascadesSubtree(t *testing.T) {
	out := Remove(sample(), "cols")
	for _, id := range []string{"cols", "card1", "card2", "sub1"} {
		if Contains(out, id) {
			t.Errorf("expected %s to be removed with its ancestor", id)
		}
	}
	if !Contains(out, "p1") {
		t.Error("sibling p1 should survive")
	}
}

func TestRemove_MissingIDIsNoop(t *testing.T) {
	in := sample()
	if diff := cmp.Diff(in, Remove(in, "ghost")); diff != "" {
		t.Errorf("tree changed (-want +got):\n%s", diff)
	}
}

func TestInsertChild(t *testing.T) {
	out := InsertChild(sample(), "card2", 0, el("new", domain.ElementParagraph))
	card, _ := Get(out, "card2")
	if len(card.Children) != 1 || card.Children[0].ID != "new" {
		t.Fatalf("expected new child in card2, got %+v", card.Children)
	}

	// non-structural parent
	out = InsertChild(sample(), "h1", 0, el("new", domain.ElementParagraph))
	if Contains(out, "new") {
		t.Error("insert into a heading should be ignored")
	}
}

func TestMove(t *testing.T) {
	out, err := Move(sample(), "b1", "card2", 0)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	card, _ := Get(out, "card2")
	if len(card.Children) != 1 || card.Children[0].ID != "b1" {
		t.Fatalf("b1 not moved into card2: %+v", card.Children)
	}
	if diff := cmp.Diff([]string{"h1", "c1"}, topIDs(out)); diff != "" {
		t.Errorf("top level mismatch (-want +got):\n%s", diff)
	}

	out, err = Move(sample(), "sub1", "", 0)
	if err != nil {
		t.Fatalf("Move to top: %v", err)
	}
	if out[0].ID != "sub1" {
		t.Errorf("expected sub1 at top, got %v", topIDs(out))
	}
}

func TestMove_IntoOwnSubtreeRejected(t *testing.T) {
	in := sample()
	if _, err := Move(in, "c1", "card1", 0); err == nil {
		t.Error("expected error moving a container into its descendant")
	}
	if _, err := Move(in, "c1", "c1", 0); err == nil {
		t.Error("expected error moving a container into itself")
	}
	if _, err := Move(in, "c1", "h1", 0); err == nil {
		t.Error("expected error moving into a non-structural parent")
	}
}

func TestDuplicate(t *testing.T) {
	n := 0
	newID := func(typ domain.ElementType) string {
		n++
		return fmt.Sprintf("%s-copy%d", typ, n)
	}
	out, id, ok := Duplicate(sample(), "card1", newID)
	if !ok {
		t.Fatal("expected duplicate to succeed")
	}
	cols, _ := Get(out, "cols")
	if len(cols.Children) != 3 || cols.Children[1].ID != id {
		t.Fatalf("copy not inserted after original: %v", topIDs(cols.Children))
	}
	if err := Validate(out); err != nil {
		t.Errorf("duplicate produced invalid tree: %v", err)
	}
	if cols.Children[1].Children[0].ID == "sub1" {
		t.Error("descendants must get fresh ids")
	}
}

func TestFindAndWalk(t *testing.T) {
	path, ok := Find(sample(), "sub1")
	if !ok {
		t.Fatal("sub1 not found")
	}
	if diff := cmp.Diff(Path{1, 1, 0, 0}, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	want := []string{"h1", "c1", "p1", "cols", "card1", "sub1", "card2", "b1"}
	if diff := cmp.Diff(want, IDs(sample())); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
	if Count(sample()) != 8 {
		t.Errorf("expected 8 nodes, got %d", Count(sample()))
	}
}

func TestIsDescendant(t *testing.T) {
	elems := sample()
	if !IsDescendant(elems, "c1", "sub1") {
		t.Error("sub1 should be inside c1")
	}
	if IsDescendant(elems, "c1", "c1") {
		t.Error("a node is not its own descendant")
	}
	if IsDescendant(elems, "h1", "sub1") {
		t.Error("sub1 is not inside h1")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample()); err != nil {
		t.Fatalf("sample should be valid: %v", err)
	}
	dup := append(sample(), el("h1", domain.ElementHeading))
	if err := Validate(dup); err == nil {
		t.Error("expected duplicate id error")
	}
	bad := []domain.Element{el("x", domain.ElementHeading, el("y", domain.ElementLink))}
	if err := Validate(bad); err == nil {
		t.Error("expected error for children on a heading")
	}
}
