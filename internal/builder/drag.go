package builder

import "strings"

// CanvasListID is the drop list of the page's top level.
const CanvasListID = "canvas"

const containerListPrefix = "container-"

// Location is a position inside a drag list.
type Location struct {
	ListID string `json:"listId"`
	Index  int    `json:"index"`
}

// DragResult is what the frontend reports when a drag ends. A nil
// Destination means the item was released outside any list.
type DragResult struct {
	DraggableID string    `json:"draggableId"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// DragState is the in-flight drag between BeginDrag and EndDrag.
type DragState struct {
	Active bool      `json:"active"`
	Source Location  `json:"source"`
	Over   *Location `json:"over,omitempty"`
}

// ContainerListID returns the drop list id for the children of a
// structural element.
func ContainerListID(elementID string) string {
	return containerListPrefix + elementID
}

// ParseContainerListID extracts the element id from a container list id.
func ParseContainerListID(listID string) (string, bool) {
	id, ok := strings.CutPrefix(listID, containerListPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// BeginDrag starts tracking a drag from source. A drag already in flight
// is replaced.
func (s *Session) BeginDrag(source Location) {
	s.drag = DragState{Active: true, Source: source}
}

// DragOver records the list currently under the pointer; nil clears it.
func (s *Session) DragOver(over *Location) {
	if !s.drag.Active {
		return
	}
	if over == nil {
		s.drag.Over = nil
		return
	}
	loc := *over
	s.drag.Over = &loc
}

// EndDrag finishes the drag at dest and applies it. Ending without a
// destination cancels at no cost.
func (s *Session) EndDrag(dest *Location) bool {
	if !s.drag.Active {
		return false
	}
	src := s.drag.Source
	s.drag = DragState{}
	return s.Drop(DragResult{Source: src, Destination: dest})
}

// CancelDrag drops the in-flight drag without changes.
func (s *Session) CancelDrag() {
	s.drag = DragState{}
}

// Drag returns the current drag state.
func (s *Session) Drag() DragState {
	d := s.drag
	if d.Over != nil {
		over := *d.Over
		d.Over = &over
	}
	return d
}
