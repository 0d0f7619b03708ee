// Package builder holds the editing session of one page: its element tree,
// the selection, drag handling and undo history.
package builder

import (
	"fmt"
	"reflect"
	"sort"

	"sitebuilder/internal/catalog"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
	"sitebuilder/internal/palette"
	"sitebuilder/internal/properties"
	"sitebuilder/internal/tree"
)

// LayoutSource generates preset subtrees. *layouts.Registry satisfies it.
type LayoutSource interface {
	Generate(layoutID string, newID layouts.IDFunc) []domain.Element
}

type builtinLayouts struct{}

func (builtinLayouts) Generate(id string, newID layouts.IDFunc) []domain.Element {
	return layouts.Generate(id, newID)
}

// Option configures a Session.
type Option func(*Session)

// WithIDFunc replaces the element id generator.
func WithIDFunc(f layouts.IDFunc) Option {
	return func(s *Session) { s.newID = f }
}

// WithLayouts sets where ApplyLayout gets presets from.
func WithLayouts(src LayoutSource) Option {
	return func(s *Session) { s.layouts = src }
}

// WithHistoryLimit caps the undo tree size.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// State is a read-only snapshot for rendering.
type State struct {
	Elements   []domain.Element `json:"elements"`
	SelectedID string           `json:"selectedId"`
	CanUndo    bool             `json:"canUndo"`
	CanRedo    bool             `json:"canRedo"`
	Version    int              `json:"version"`
	Drag       DragState        `json:"drag"`
}

// Session is the document being edited. It is not safe for concurrent
// use; callers serialize access.
type Session struct {
	elements     []domain.Element
	selectedID   string
	query        string
	drag         DragState
	version      int
	history      *History
	historyLimit int
	newID        layouts.IDFunc
	layouts      LayoutSource
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		elements:     []domain.Element{},
		newID:        NewID,
		layouts:      builtinLayouts{},
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = NewHistory(s.historyLimit, s.elements)
	return s
}

// Load replaces the document and starts a fresh history.
func (s *Session) Load(elems []domain.Element) {
	if elems == nil {
		elems = []domain.Element{}
	}
	s.elements = domain.CloneElements(elems)
	s.selectedID = ""
	s.drag = DragState{}
	s.version++
	s.history = NewHistory(s.historyLimit, s.elements)
}

// Resume loads elems together with a persisted undo tree positioned at
// currentID. When the current snapshot differs from elems, elems are pushed
// on top so undo still leads back to the stored history.
func (s *Session) Resume(elems []domain.Element, nodes []HistoryNode, currentID string) {
	s.Load(elems)
	if len(nodes) == 0 {
		return
	}
	s.history.Restore(nodes, currentID)
	if !reflect.DeepEqual(s.history.Current().Elements, s.elements) {
		s.history.Push("Open page", s.elements)
	}
}

// History exposes the undo tree for persistence.
func (s *Session) History() *History { return s.history }

// Elements returns a deep copy of the document.
func (s *Session) Elements() []domain.Element {
	return domain.CloneElements(s.elements)
}

// Version increases with every change to the document or selection.
func (s *Session) Version() int { return s.version }

func (s *Session) State() State {
	return State{
		Elements:   s.Elements(),
		SelectedID: s.SelectedID(),
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
		Version:    s.version,
		Drag:       s.Drag(),
	}
}

// SetPaletteQuery records the sidebar search so palette drag indexes
// resolve against the filtered list the user saw.
func (s *Session) SetPaletteQuery(q string) { s.query = q }

func (s *Session) PaletteQuery() string { return s.query }

// ── selection ───────────────────────────────────────────────

// Select marks id as selected. Unknown ids are ignored.
func (s *Session) Select(id string) bool {
	if !tree.Contains(s.elements, id) {
		return false
	}
	if s.selectedID != id {
		s.selectedID = id
		s.version++
	}
	return true
}

func (s *Session) ClearSelection() {
	if s.selectedID != "" {
		s.selectedID = ""
		s.version++
	}
}

// SelectedID returns the selected id, or "" if it no longer exists.
func (s *Session) SelectedID() string {
	if s.selectedID == "" || !tree.Contains(s.elements, s.selectedID) {
		return ""
	}
	return s.selectedID
}

// Selected resolves the selection against the current tree.
func (s *Session) Selected() (domain.Element, bool) {
	if s.selectedID == "" {
		return domain.Element{}, false
	}
	return tree.Get(s.elements, s.selectedID)
}

// Panel describes the properties panel for the selection.
func (s *Session) Panel() properties.Panel {
	e, ok := s.Selected()
	if !ok {
		return properties.Describe(nil)
	}
	return properties.Describe(&e)
}

// ── drops ───────────────────────────────────────────────────

// Drop applies a finished drag. Palette to canvas or container inserts a
// new element and selects it; canvas to canvas reorders; moves between
// lists reparent. Anything else is ignored and returns false.
func (s *Session) Drop(r DragResult) bool {
	if r.Destination == nil {
		return false
	}
	dest := *r.Destination
	parentID, ok := s.resolveList(dest.ListID)
	if !ok {
		return false
	}

	if cat, ok := palette.ParseListID(r.Source.ListID); ok {
		item, ok := palette.ItemAt(cat, s.query, r.Source.Index)
		if !ok {
			return false
		}
		node := catalog.NewElement(item.ID, s.newID(item.ID))
		var next []domain.Element
		if parentID == "" {
			next = tree.InsertAt(s.elements, dest.Index, node)
		} else {
			next = tree.InsertChild(s.elements, parentID, dest.Index, node)
		}
		if !s.commit("Add "+item.Name, next) {
			return false
		}
		s.selectedID = node.ID
		return true
	}

	srcParent, ok := s.resolveList(r.Source.ListID)
	if !ok {
		return false
	}
	if r.Source.ListID == CanvasListID && dest.ListID == CanvasListID {
		return s.commit("Reorder elements", tree.Reorder(s.elements, r.Source.Index, dest.Index))
	}
	siblings := s.childrenOf(srcParent)
	if r.Source.Index < 0 || r.Source.Index >= len(siblings) {
		return false
	}
	next, err := tree.Move(s.elements, siblings[r.Source.Index].ID, parentID, dest.Index)
	if err != nil {
		return false
	}
	return s.commit("Move element", next)
}

// resolveList maps a drop list id to a parent id ("" for the canvas).
func (s *Session) resolveList(listID string) (string, bool) {
	if listID == CanvasListID {
		return "", true
	}
	id, ok := ParseContainerListID(listID)
	if !ok {
		return "", false
	}
	e, ok := tree.Get(s.elements, id)
	if !ok || !e.IsStructural() {
		return "", false
	}
	return id, true
}

func (s *Session) childrenOf(parentID string) []domain.Element {
	if parentID == "" {
		return s.elements
	}
	path, ok := tree.Find(s.elements, parentID)
	if !ok {
		return nil
	}
	node := s.elements[path[0]]
	for _, i := range path[1:] {
		node = node.Children[i]
	}
	return node.Children
}

// ── edits ───────────────────────────────────────────────────

// AddElement inserts a new element of type t under parentID ("" for the
// top level) at index and returns its id.
func (s *Session) AddElement(t domain.ElementType, parentID string, index int) (string, error) {
	if !catalog.Known(t) {
		return "", fmt.Errorf("unknown element type %q", t)
	}
	node := catalog.NewElement(t, s.newID(t))
	var next []domain.Element
	if parentID == "" {
		next = tree.InsertAt(s.elements, index, node)
	} else {
		parent, ok := tree.Get(s.elements, parentID)
		if !ok {
			return "", fmt.Errorf("parent %s not found", parentID)
		}
		if !parent.IsStructural() {
			return "", fmt.Errorf("%s elements cannot hold children", parent.Type)
		}
		next = tree.InsertChild(s.elements, parentID, index, node)
	}
	s.commit("Add "+string(t), next)
	return node.ID, nil
}

func (s *Session) EditContent(id, content string) bool {
	return s.commit("Edit content", tree.UpdateContent(s.elements, id, content))
}

func (s *Session) EditStyle(id, prop string, value any) (bool, error) {
	return s.EditStyles(id, map[string]any{prop: value})
}

// EditStyles merges patch into the element's style as a single undo step.
// Nothing is applied if any value is not a string or a number.
func (s *Session) EditStyles(id string, patch map[string]any) (bool, error) {
	props := make([]string, 0, len(patch))
	for p, v := range patch {
		if err := domain.CheckStyleValue(p, v); err != nil {
			return false, err
		}
		props = append(props, p)
	}
	sort.Strings(props)
	next := s.elements
	for _, p := range props {
		next = tree.UpdateStyle(next, id, p, patch[p])
	}
	label := "Edit style"
	if len(props) == 1 {
		label = "Edit " + props[0]
	}
	return s.commit(label, next), nil
}

// ApplyField applies a properties panel edit.
func (s *Session) ApplyField(id, key, value string) (bool, error) {
	next, err := properties.Apply(s.elements, id, key, value)
	if err != nil {
		return false, err
	}
	changed := s.commit("Edit "+key, next)
	if changed && s.selectedID != "" && !tree.Contains(s.elements, s.selectedID) {
		s.selectedID = ""
	}
	return changed, nil
}

// Delete removes id and its subtree. The selection is cleared when it
// pointed at the removed node or anything inside it.
func (s *Session) Delete(id string) bool {
	clearSel := s.selectedID != "" &&
		(s.selectedID == id || tree.IsDescendant(s.elements, id, s.selectedID))
	if !s.commit("Delete element", tree.Remove(s.elements, id)) {
		return false
	}
	if clearSel {
		s.selectedID = ""
	}
	return true
}

// Move reparents id under parentID ("" for the top level) at index.
func (s *Session) Move(id, parentID string, index int) error {
	next, err := tree.Move(s.elements, id, parentID, index)
	if err != nil {
		return err
	}
	s.commit("Move element", next)
	return nil
}

// Duplicate copies id's subtree right after it and returns the new id.
func (s *Session) Duplicate(id string) (string, bool) {
	next, newID, ok := tree.Duplicate(s.elements, id, s.newID)
	if !ok {
		return "", false
	}
	s.commit("Duplicate element", next)
	return newID, true
}

// ApplyLayout appends the preset's elements. The selection is unchanged.
// Returns the ids of the new top-level elements.
func (s *Session) ApplyLayout(layoutID string) []string {
	gen := s.layouts.Generate(layoutID, s.newID)
	if len(gen) == 0 {
		return nil
	}
	next := make([]domain.Element, 0, len(s.elements)+len(gen))
	next = append(next, s.elements...)
	next = append(next, gen...)
	s.commit("Apply "+layoutID+" layout", next)

	ids := make([]string, len(gen))
	for i, e := range gen {
		ids[i] = e.ID
	}
	return ids
}

// ── history ─────────────────────────────────────────────────

func (s *Session) Undo() bool {
	elems, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(elems)
	return true
}

func (s *Session) Redo() bool {
	elems, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(elems)
	return true
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) restore(elems []domain.Element) {
	if elems == nil {
		elems = []domain.Element{}
	}
	s.elements = elems
	if s.selectedID != "" && !tree.Contains(s.elements, s.selectedID) {
		s.selectedID = ""
	}
	s.version++
}

// commit installs next and records a snapshot if it differs from the
// current document.
func (s *Session) commit(label string, next []domain.Element) bool {
	if reflect.DeepEqual(s.elements, next) {
		return false
	}
	s.elements = next
	s.version++
	s.history.Push(label, next)
	return true
}
