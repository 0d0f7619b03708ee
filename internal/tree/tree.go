// Package tree holds the pure operations on a page's element forest.
//
// Every function treats its input as immutable and returns a new top-level
// slice. Nodes off the edited path are shared with the input; nodes on the
// path are copied, so callers never observe a half-updated tree.
package tree

import (
	"fmt"

	"sitebuilder/internal/domain"
)

// Path addresses a node by child indexes starting at the top-level slice.
type Path []int

// InsertAt inserts node as a top-level sibling at index, clamped to [0, len].
func InsertAt(elems []domain.Element, index int, node domain.Element) []domain.Element {
	return insert(elems, index, node)
}

// Reorder moves the top-level node at from to position to. Equal or
// out-of-range indexes leave the slice unchanged.
func Reorder(elems []domain.Element, from, to int) []domain.Element {
	if from == to || from < 0 || from >= len(elems) || to < 0 || to >= len(elems) {
		return elems
	}
	out := make([]domain.Element, 0, len(elems))
	out = append(out, elems[:from]...)
	out = append(out, elems[from+1:]...)
	moved := elems[from]
	return insert(out, to, moved)
}

// UpdateContent replaces the content of the node with id, wherever it sits.
func UpdateContent(elems []domain.Element, id, content string) []domain.Element {
	path, ok := Find(elems, id)
	if !ok {
		return elems
	}
	return replaceAt(elems, path, func(e domain.Element) domain.Element {
		e.Content = content
		return e
	})
}

// UpdateStyle merges {prop: value} into the style of the node with id.
func UpdateStyle(elems []domain.Element, id, prop string, value any) []domain.Element {
	path, ok := Find(elems, id)
	if !ok {
		return elems
	}
	return replaceAt(elems, path, func(e domain.Element) domain.Element {
		e.Style = e.Style.With(prop, value)
		return e
	})
}

// Remove deletes the node with id and its whole subtree.
func Remove(elems []domain.Element, id string) []domain.Element {
	path, ok := Find(elems, id)
	if !ok {
		return elems
	}
	return removeAt(elems, path)
}

// InsertChild inserts node into the children of parentID at index
// (clamped). A missing or non-structural parent leaves the tree unchanged.
func InsertChild(elems []domain.Element, parentID string, index int, node domain.Element) []domain.Element {
	path, ok := Find(elems, parentID)
	if !ok {
		return elems
	}
	if !nodeAt(elems, path).IsStructural() {
		return elems
	}
	return replaceAt(elems, path, func(e domain.Element) domain.Element {
		e.Children = insert(e.Children, index, node)
		return e
	})
}

// Move detaches the node with id and reinserts it under parentID at index.
// An empty parentID targets the top level. Moving a node into its own
// subtree is rejected.
func Move(elems []domain.Element, id, parentID string, index int) ([]domain.Element, error) {
	path, ok := Find(elems, id)
	if !ok {
		return elems, fmt.Errorf("move: element %s not found", id)
	}
	node := nodeAt(elems, path)
	if parentID != "" {
		if parentID == id {
			return elems, fmt.Errorf("move: element %s cannot contain itself", id)
		}
		if _, inside := Find(node.Children, parentID); inside {
			return elems, fmt.Errorf("move: %s is inside %s", parentID, id)
		}
	}

	detached := removeAt(elems, path)
	if parentID == "" {
		return InsertAt(detached, index, node), nil
	}
	parentPath, ok := Find(detached, parentID)
	if !ok {
		return elems, fmt.Errorf("move: parent %s not found", parentID)
	}
	if !nodeAt(detached, parentPath).IsStructural() {
		return elems, fmt.Errorf("move: parent %s cannot hold children", parentID)
	}
	return replaceAt(detached, parentPath, func(e domain.Element) domain.Element {
		e.Children = insert(e.Children, index, node)
		return e
	}), nil
}

// Duplicate clones the subtree rooted at id, assigning fresh ids from
// newID, and inserts the copy right after the original.
func Duplicate(elems []domain.Element, id string, newID func(domain.ElementType) string) ([]domain.Element, string, bool) {
	path, ok := Find(elems, id)
	if !ok {
		return elems, "", false
	}
	clone := Reidentify(nodeAt(elems, path), newID)

	last := len(path) - 1
	if last == 0 {
		return insert(elems, path[0]+1, clone), clone.ID, true
	}
	out := replaceAt(elems, path[:last], func(parent domain.Element) domain.Element {
		parent.Children = insert(parent.Children, path[last]+1, clone)
		return parent
	})
	return out, clone.ID, true
}

// Reidentify deep-copies e, giving it and every descendant a fresh id.
func Reidentify(e domain.Element, newID func(domain.ElementType) string) domain.Element {
	out := e.Clone()
	out.ID = newID(out.Type)
	for i := range out.Children {
		out.Children[i] = Reidentify(out.Children[i], newID)
	}
	return out
}

// ── lookups ────────────────────────────────────────────────

// Find returns the path to the node with id, searching depth-first.
func Find(elems []domain.Element, id string) (Path, bool) {
	for i, e := range elems {
		if e.ID == id {
			return Path{i}, true
		}
		if sub, ok := Find(e.Children, id); ok {
			return append(Path{i}, sub...), true
		}
	}
	return nil, false
}

// Get returns a deep copy of the node with id.
func Get(elems []domain.Element, id string) (domain.Element, bool) {
	path, ok := Find(elems, id)
	if !ok {
		return domain.Element{}, false
	}
	return nodeAt(elems, path).Clone(), true
}

// Contains reports whether a node with id exists anywhere in the tree.
func Contains(elems []domain.Element, id string) bool {
	_, ok := Find(elems, id)
	return ok
}

// IsDescendant reports whether id sits strictly inside the subtree of ancestorID.
func IsDescendant(elems []domain.Element, ancestorID, id string) bool {
	path, ok := Find(elems, ancestorID)
	if !ok {
		return false
	}
	_, inside := Find(nodeAt(elems, path).Children, id)
	return inside
}

// Walk visits every node depth-first, parents before children. Returning
// false from fn stops the walk.
func Walk(elems []domain.Element, fn func(e domain.Element, depth int) bool) {
	walk(elems, 0, fn)
}

func walk(elems []domain.Element, depth int, fn func(domain.Element, int) bool) bool {
	for _, e := range elems {
		if !fn(e, depth) {
			return false
		}
		if !walk(e.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// IDs lists every id in depth-first order.
func IDs(elems []domain.Element) []string {
	var ids []string
	Walk(elems, func(e domain.Element, _ int) bool {
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

// Count returns the number of nodes in the tree.
func Count(elems []domain.Element) int {
	n := 0
	Walk(elems, func(domain.Element, int) bool {
		n++
		return true
	})
	return n
}

// Validate reports duplicate ids, empty ids and children on types that
// cannot hold them.
func Validate(elems []domain.Element) error {
	seen := make(map[string]bool)
	var err error
	Walk(elems, func(e domain.Element, _ int) bool {
		switch {
		case e.ID == "":
			err = fmt.Errorf("element of type %s has no id", e.Type)
		case seen[e.ID]:
			err = fmt.Errorf("duplicate element id %s", e.ID)
		case len(e.Children) > 0 && !e.IsStructural():
			err = fmt.Errorf("element %s of type %s cannot hold children", e.ID, e.Type)
		}
		seen[e.ID] = true
		return err == nil
	})
	return err
}

// ── copy-on-write helpers ─────────────────────────────────

func insert(elems []domain.Element, index int, node domain.Element) []domain.Element {
	if index < 0 {
		index = 0
	}
	if index > len(elems) {
		index = len(elems)
	}
	out := make([]domain.Element, 0, len(elems)+1)
	out = append(out, elems[:index]...)
	out = append(out, node)
	out = append(out, elems[index:]...)
	return out
}

func nodeAt(elems []domain.Element, path Path) domain.Element {
	node := elems[path[0]]
	for _, i := range path[1:] {
		node = node.Children[i]
	}
	return node
}

// replaceAt copies every slice along path and applies fn to the target.
func replaceAt(elems []domain.Element, path Path, fn func(domain.Element) domain.Element) []domain.Element {
	out := make([]domain.Element, len(elems))
	copy(out, elems)
	if len(path) == 1 {
		out[path[0]] = fn(out[path[0]])
		return out
	}
	parent := out[path[0]]
	parent.Children = replaceAt(parent.Children, path[1:], fn)
	out[path[0]] = parent
	return out
}

func removeAt(elems []domain.Element, path Path) []domain.Element {
	if len(path) == 1 {
		i := path[0]
		out := make([]domain.Element, 0, len(elems)-1)
		out = append(out, elems[:i]...)
		return append(out, elems[i+1:]...)
	}
	out := make([]domain.Element, len(elems))
	copy(out, elems)
	parent := out[path[0]]
	parent.Children = removeAt(parent.Children, path[1:])
	out[path[0]] = parent
	return out
}
