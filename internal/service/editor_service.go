package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
	"sitebuilder/internal/palette"
	"sitebuilder/internal/properties"
	"sitebuilder/internal/render"
	"sitebuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: open builder sessions per page
// ─────────────────────────────────────────────────────────────

// ErrPageNotOpen is returned for edits on a page that has no session.
var ErrPageNotOpen = errors.New("page is not open")

// LayoutProvider lists and generates layout presets. *layouts.Registry
// satisfies it.
type LayoutProvider interface {
	builder.LayoutSource
	Presets() []layouts.Preset
}

// EditorService owns one builder.Session per open page. Sessions are not
// goroutine-safe, so every call goes through mu: Wails bindings, the MCP
// server and autosave all call in from their own goroutines.
type EditorService struct {
	mu           sync.Mutex
	pages        *storage.PageStore
	undo         *storage.UndoStore
	layouts      LayoutProvider
	emitter      EventEmitter
	historyLimit int
	open         map[string]*openPage
	active       string
}

type openPage struct {
	page      domain.Page
	session   *builder.Session
	persisted map[string]bool
	nodeID    string
	savedNode string
}

// NewEditorService creates an EditorService. historyLimit caps the undo
// tree of each page.
func NewEditorService(
	pages *storage.PageStore,
	undo *storage.UndoStore,
	presets LayoutProvider,
	emitter EventEmitter,
	historyLimit int,
) *EditorService {
	if historyLimit <= 0 {
		historyLimit = builder.DefaultHistoryLimit
	}
	return &EditorService{
		pages:        pages,
		undo:         undo,
		layouts:      presets,
		emitter:      emitter,
		historyLimit: historyLimit,
		open:         make(map[string]*openPage),
	}
}

// ── Sessions ───────────────────────────────────────────────

// OpenPage loads a page into a session and makes it active. A page that is
// already open keeps its session.
func (s *EditorService) OpenPage(ctx context.Context, pageID string) (*domain.PageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if op, ok := s.open[pageID]; ok {
		s.active = pageID
		return s.stateOf(op), nil
	}
	op, err := s.load(pageID)
	if err != nil {
		return nil, err
	}
	s.open[pageID] = op
	s.active = pageID
	log.Printf("[editor] opened page %s (%d history nodes)", pageID, op.session.History().Len())
	return s.stateOf(op), nil
}

func (s *EditorService) load(pageID string) (*openPage, error) {
	page, err := s.pages.GetPage(pageID)
	if err != nil {
		return nil, err
	}
	elems, err := page.Elements()
	if err != nil {
		return nil, err
	}

	session := builder.New(
		builder.WithLayouts(s.layouts),
		builder.WithHistoryLimit(s.historyLimit),
	)
	op := &openPage{page: *page, session: session, persisted: make(map[string]bool)}

	tree, err := s.undo.LoadTree(pageID)
	if err != nil {
		log.Printf("[editor] load undo tree for %s: %v", pageID, err)
	}
	if tree != nil {
		nodes := make([]builder.HistoryNode, 0, len(tree.Nodes))
		for _, n := range tree.Nodes {
			snap, err := n.Elements()
			if err != nil {
				log.Printf("[editor] skip undo node %s: %v", n.ID, err)
				continue
			}
			parent := ""
			if n.ParentID != nil {
				parent = *n.ParentID
			}
			nodes = append(nodes, builder.HistoryNode{
				ID:        n.ID,
				ParentID:  parent,
				Label:     n.Label,
				Elements:  snap,
				CreatedAt: n.CreatedAt,
			})
			op.persisted[n.ID] = true
		}
		session.Resume(elems, nodes, tree.CurrentID)
		op.nodeID = tree.CurrentID
	} else {
		session.Load(elems)
	}

	s.syncHistory(op)
	op.savedNode = op.nodeID
	return op, nil
}

// ClosePage drops the session. Unsaved edits are lost.
func (s *EditorService) ClosePage(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, pageID)
	if s.active == pageID {
		s.active = ""
	}
}

// ActivePageID returns the page last opened.
func (s *EditorService) ActivePageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// OpenPageIDs lists the open pages, sorted.
func (s *EditorService) OpenPageIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.open))
	for id := range s.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsDirty reports whether the page has edits not yet saved.
func (s *EditorService) IsDirty(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.open[pageID]
	return ok && op.nodeID != op.savedNode
}

// Reload rereads a clean page from storage after an external write.
// Dirty pages, and pages whose stored tree is what this session last
// saved, are left alone and false is returned.
func (s *EditorService) Reload(ctx context.Context, pageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.open[pageID]
	if !ok {
		return false, nil
	}
	if op.nodeID != op.savedNode {
		return false, nil
	}
	stored, err := s.pages.GetPage(pageID)
	if err != nil {
		return false, err
	}
	if stored.ElementsJSON == op.page.ElementsJSON {
		return false, nil
	}
	fresh, err := s.load(pageID)
	if err != nil {
		return false, err
	}
	s.open[pageID] = fresh
	s.emitter.Emit(ctx, EventBuilderChanged, pageID)
	return true, nil
}

// ── Reads ──────────────────────────────────────────────────

func (s *EditorService) State(pageID string) (*domain.PageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.session(pageID)
	if err != nil {
		return nil, err
	}
	return s.stateOf(op), nil
}

// Elements returns a copy of the page's current tree.
func (s *EditorService) Elements(pageID string) ([]domain.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.session(pageID)
	if err != nil {
		return nil, err
	}
	return op.session.Elements(), nil
}

// Canvas renders the page as sanitized HTML for the given view mode.
func (s *EditorService) Canvas(pageID, viewMode string) (string, error) {
	s.mu.Lock()
	op, err := s.session(pageID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	c := render.Canvas{
		Elements:   op.session.Elements(),
		SelectedID: op.session.SelectedID(),
		ViewMode:   render.ParseViewMode(viewMode),
	}
	s.mu.Unlock()
	return render.RenderCanvas(c)
}

// Palette builds the sidebar for the page. The query is remembered so
// palette drops index into the same filtered list.
func (s *EditorService) Palette(pageID, query string) (palette.View, error) {
	s.mu.Lock()
	op, err := s.session(pageID)
	if err != nil {
		s.mu.Unlock()
		return palette.View{}, err
	}
	op.session.SetPaletteQuery(query)
	siteID := op.page.SiteID
	s.mu.Unlock()

	pages, err := s.pages.ListPages(siteID)
	if err != nil {
		return palette.View{}, fmt.Errorf("list pages: %w", err)
	}
	entries := make([]palette.PageEntry, len(pages))
	for i, p := range pages {
		entries[i] = palette.PageEntry{ID: p.ID, Name: p.Name, Active: p.ID == pageID}
	}
	return palette.Build(query, entries, s.layouts.Presets()), nil
}

// Panel describes the properties panel for the page's selection.
func (s *EditorService) Panel(pageID string) (properties.Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.session(pageID)
	if err != nil {
		return properties.Panel{}, err
	}
	return op.session.Panel(), nil
}

// ── Edits ──────────────────────────────────────────────────

// Drop applies a finished drag reported by the frontend.
func (s *EditorService) Drop(ctx context.Context, pageID string, r builder.DragResult) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.Drop(r) })
}

func (s *EditorService) BeginDrag(pageID string, source builder.Location) error {
	_, err := s.mutate(context.Background(), pageID, func(b *builder.Session) bool {
		b.BeginDrag(source)
		return false
	})
	return err
}

func (s *EditorService) DragOver(pageID string, over *builder.Location) error {
	_, err := s.mutate(context.Background(), pageID, func(b *builder.Session) bool {
		b.DragOver(over)
		return false
	})
	return err
}

// EndDrag finishes the in-flight drag at dest. A nil dest cancels.
func (s *EditorService) EndDrag(ctx context.Context, pageID string, dest *builder.Location) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.EndDrag(dest) })
}

func (s *EditorService) Select(ctx context.Context, pageID, elementID string) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool {
		if elementID == "" {
			before := b.SelectedID()
			b.ClearSelection()
			return before != ""
		}
		before := b.SelectedID()
		return b.Select(elementID) && before != elementID
	})
}

// AddElement inserts a new element and returns its id.
func (s *EditorService) AddElement(ctx context.Context, pageID string, t domain.ElementType, parentID string, index int) (string, error) {
	var id string
	var addErr error
	_, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		id, addErr = b.AddElement(t, parentID, index)
		return addErr == nil
	})
	if err != nil {
		return "", err
	}
	return id, addErr
}

func (s *EditorService) EditContent(ctx context.Context, pageID, elementID, content string) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.EditContent(elementID, content) })
}

func (s *EditorService) EditStyle(ctx context.Context, pageID, elementID, prop string, value any) (bool, error) {
	return s.EditStyles(ctx, pageID, elementID, map[string]any{prop: value})
}

// EditStyles merges several style properties as one undo step.
func (s *EditorService) EditStyles(ctx context.Context, pageID, elementID string, patch map[string]any) (bool, error) {
	var styleErr error
	changed, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		var ok bool
		ok, styleErr = b.EditStyles(elementID, patch)
		return ok
	})
	if err != nil {
		return false, err
	}
	return changed, styleErr
}

// ApplyField applies a properties panel edit to an element.
func (s *EditorService) ApplyField(ctx context.Context, pageID, elementID, key, value string) (bool, error) {
	var applyErr error
	changed, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		var ok bool
		ok, applyErr = b.ApplyField(elementID, key, value)
		return ok
	})
	if err != nil {
		return false, err
	}
	return changed, applyErr
}

func (s *EditorService) Delete(ctx context.Context, pageID, elementID string) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.Delete(elementID) })
}

func (s *EditorService) Move(ctx context.Context, pageID, elementID, parentID string, index int) error {
	var moveErr error
	_, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		before := b.Version()
		moveErr = b.Move(elementID, parentID, index)
		return b.Version() != before
	})
	if err != nil {
		return err
	}
	return moveErr
}

// Duplicate copies an element's subtree next to it and returns the copy's id.
func (s *EditorService) Duplicate(ctx context.Context, pageID, elementID string) (string, error) {
	var newID string
	_, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		var ok bool
		newID, ok = b.Duplicate(elementID)
		return ok
	})
	if err != nil {
		return "", err
	}
	if newID == "" {
		return "", fmt.Errorf("duplicate: element %s not found", elementID)
	}
	return newID, nil
}

// ApplyLayout appends a preset and returns the ids of its top-level nodes.
func (s *EditorService) ApplyLayout(ctx context.Context, pageID, layoutID string) ([]string, error) {
	var ids []string
	_, err := s.mutate(ctx, pageID, func(b *builder.Session) bool {
		ids = b.ApplyLayout(layoutID)
		return len(ids) > 0
	})
	return ids, err
}

func (s *EditorService) Undo(ctx context.Context, pageID string) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.Undo() })
}

func (s *EditorService) Redo(ctx context.Context, pageID string) (bool, error) {
	return s.mutate(ctx, pageID, func(b *builder.Session) bool { return b.Redo() })
}

// ── Saving ─────────────────────────────────────────────────

// Save writes the page's tree to storage.
func (s *EditorService) Save(ctx context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.session(pageID)
	if err != nil {
		return err
	}
	return s.save(op)
}

// SaveAll writes every dirty page and returns how many were saved.
func (s *EditorService) SaveAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	saved := 0
	for _, op := range s.open {
		if op.nodeID == op.savedNode {
			continue
		}
		if err := s.save(op); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

func (s *EditorService) save(op *openPage) error {
	if err := op.page.SetElements(op.session.Elements()); err != nil {
		return err
	}
	if err := s.pages.SavePageElements(op.page.ID, op.page.ElementsJSON); err != nil {
		return fmt.Errorf("save page %s: %w", op.page.ID, err)
	}
	op.savedNode = op.nodeID
	return nil
}

// ── internals ──────────────────────────────────────────────

func (s *EditorService) session(pageID string) (*openPage, error) {
	op, ok := s.open[pageID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", pageID, ErrPageNotOpen)
	}
	return op, nil
}

// mutate runs fn against the page's session, persists any history
// movement and notifies the frontend when fn reports a change.
func (s *EditorService) mutate(ctx context.Context, pageID string, fn func(*builder.Session) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.session(pageID)
	if err != nil {
		return false, err
	}
	changed := fn(op.session)
	s.syncHistory(op)
	if changed {
		s.emitter.Emit(ctx, EventBuilderChanged, pageID)
	}
	return changed, nil
}

// syncHistory mirrors the session's current undo node into storage: new
// nodes are inserted, moves along existing ones update the pointer.
func (s *EditorService) syncHistory(op *openPage) {
	cur := op.session.History().Current()
	if cur.ID == "" || cur.ID == op.nodeID && op.persisted[cur.ID] {
		return
	}
	pageID := op.page.ID
	if !op.persisted[cur.ID] {
		if _, err := s.undo.PushNode(pageID, cur.ID, cur.ParentID, cur.Label, cur.Elements, cur.CreatedAt); err != nil {
			log.Printf("[editor] persist undo node for %s: %v", pageID, err)
		} else {
			op.persisted[cur.ID] = true
		}
	} else if err := s.undo.GoTo(pageID, cur.ID); err != nil {
		log.Printf("[editor] move undo pointer for %s: %v", pageID, err)
	}
	op.nodeID = cur.ID
}

func (s *EditorService) stateOf(op *openPage) *domain.PageState {
	st := op.session.State()
	return &domain.PageState{
		Page:       op.page,
		Elements:   st.Elements,
		SelectedID: st.SelectedID,
		CanUndo:    st.CanUndo,
		CanRedo:    st.CanRedo,
		Dirty:      op.nodeID != op.savedNode,
	}
}
