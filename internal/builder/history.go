package builder

import (
	"time"

	"sitebuilder/internal/domain"
)

// DefaultHistoryLimit caps the number of snapshots kept per page.
const DefaultHistoryLimit = 40

// HistoryNode is one snapshot in the undo tree.
type HistoryNode struct {
	ID        string           `json:"id"`
	ParentID  string           `json:"parentId"`
	Label     string           `json:"label"`
	Elements  []domain.Element `json:"elements"`
	CreatedAt time.Time        `json:"createdAt"`
}

// History is a branching undo tree of element snapshots. Undo walks to the
// parent; redo walks to the child most recently left or created. Editing
// after an undo starts a new branch and keeps the old one reachable.
type History struct {
	limit   int
	newID   func() string
	now     func() time.Time
	nodes   map[string]*HistoryNode
	order   []string
	current string
	redoTo  map[string]string
}

// NewHistory starts a tree whose root holds initial.
func NewHistory(limit int, initial []domain.Element) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{
		limit:  limit,
		newID:  newNodeID,
		now:    time.Now,
		nodes:  make(map[string]*HistoryNode),
		redoTo: make(map[string]string),
	}
	h.Push("Open page", initial)
	return h
}

// Push records elems as a child of the current node and moves to it.
func (h *History) Push(label string, elems []domain.Element) HistoryNode {
	n := &HistoryNode{
		ID:        h.newID(),
		ParentID:  h.current,
		Label:     label,
		Elements:  domain.CloneElements(elems),
		CreatedAt: h.now(),
	}
	h.nodes[n.ID] = n
	h.order = append(h.order, n.ID)
	if n.ParentID != "" {
		h.redoTo[n.ParentID] = n.ID
	}
	h.current = n.ID
	h.prune()
	return *n
}

// Undo moves to the parent snapshot.
func (h *History) Undo() ([]domain.Element, bool) {
	cur, ok := h.nodes[h.current]
	if !ok || cur.ParentID == "" {
		return nil, false
	}
	parent, ok := h.nodes[cur.ParentID]
	if !ok {
		return nil, false
	}
	h.redoTo[parent.ID] = cur.ID
	h.current = parent.ID
	return domain.CloneElements(parent.Elements), true
}

// Redo moves to the child snapshot last left by Undo or created by Push.
func (h *History) Redo() ([]domain.Element, bool) {
	next, ok := h.nodes[h.redoTo[h.current]]
	if !ok {
		return nil, false
	}
	h.current = next.ID
	return domain.CloneElements(next.Elements), true
}

func (h *History) CanUndo() bool {
	cur, ok := h.nodes[h.current]
	if !ok || cur.ParentID == "" {
		return false
	}
	_, ok = h.nodes[cur.ParentID]
	return ok
}

func (h *History) CanRedo() bool {
	_, ok := h.nodes[h.redoTo[h.current]]
	return ok
}

// Current returns the node the editor is at.
func (h *History) Current() HistoryNode {
	if n, ok := h.nodes[h.current]; ok {
		return *n
	}
	return HistoryNode{}
}

// Nodes lists the kept snapshots oldest first.
func (h *History) Nodes() []HistoryNode {
	out := make([]HistoryNode, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, *h.nodes[id])
	}
	return out
}

// Len returns the number of kept snapshots.
func (h *History) Len() int { return len(h.order) }

// Restore replaces the tree with nodes loaded from storage, positioned at
// currentID. Unknown currentID falls back to the newest node.
func (h *History) Restore(nodes []HistoryNode, currentID string) {
	h.nodes = make(map[string]*HistoryNode, len(nodes))
	h.order = h.order[:0]
	h.redoTo = make(map[string]string)
	for i := range nodes {
		n := nodes[i]
		h.nodes[n.ID] = &n
		h.order = append(h.order, n.ID)
		if n.ParentID != "" {
			h.redoTo[n.ParentID] = n.ID
		}
	}
	if _, ok := h.nodes[currentID]; !ok && len(h.order) > 0 {
		currentID = h.order[len(h.order)-1]
	}
	h.current = currentID
	h.prune()
}

// prune drops the oldest snapshots beyond the limit, never the current
// one. Children of a dropped node are reattached to its parent.
func (h *History) prune() {
	for len(h.order) > h.limit {
		victim := -1
		for i, id := range h.order {
			if id != h.current {
				victim = i
				break
			}
		}
		if victim < 0 {
			return
		}
		id := h.order[victim]
		dead := h.nodes[id]
		for _, n := range h.nodes {
			if n.ParentID == id {
				n.ParentID = dead.ParentID
			}
		}
		if dead.ParentID != "" && h.redoTo[dead.ParentID] == id {
			if next, ok := h.redoTo[id]; ok {
				h.redoTo[dead.ParentID] = next
			} else {
				delete(h.redoTo, dead.ParentID)
			}
		}
		delete(h.redoTo, id)
		delete(h.nodes, id)
		h.order = append(h.order[:victim], h.order[victim+1:]...)
	}
}
