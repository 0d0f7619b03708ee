package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"sitebuilder/internal/domain"
)

// UndoNode is one persisted snapshot of a page's element tree.
type UndoNode struct {
	ID           string    `json:"id"`
	PageID       string    `json:"pageId"`
	ParentID     *string   `json:"parentId"`
	Label        string    `json:"label"`
	SnapshotJSON string    `json:"snapshotJson"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Elements decodes the snapshot.
func (n UndoNode) Elements() ([]domain.Element, error) {
	var elems []domain.Element
	if err := json.Unmarshal([]byte(n.SnapshotJSON), &elems); err != nil {
		return nil, fmt.Errorf("decode undo node %s: %w", n.ID, err)
	}
	if elems == nil {
		elems = []domain.Element{}
	}
	return elems, nil
}

// UndoTree is the full history of a page.
type UndoTree struct {
	Nodes     []UndoNode `json:"nodes"`
	CurrentID string     `json:"currentId"`
	RootID    string     `json:"rootId"`
}

// UndoStore manages undo history in SQLite.
type UndoStore struct {
	db       *DB
	maxNodes int
}

// NewUndoStore keeps at most maxNodes snapshots per page.
func NewUndoStore(db *DB, maxNodes int) *UndoStore {
	if maxNodes <= 0 {
		maxNodes = 40
	}
	return &UndoStore{db: db, maxNodes: maxNodes}
}

// LoadTree returns the undo tree for a page, or nil if it has none.
func (s *UndoStore) LoadTree(pageID string) (*UndoTree, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, page_id, parent_id, label, snapshot_json, created_at
		 FROM undo_nodes WHERE page_id = ? ORDER BY created_at ASC, rowid ASC`, pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("load undo nodes: %w", err)
	}
	defer rows.Close()

	var nodes []UndoNode
	var rootID string
	for rows.Next() {
		var n UndoNode
		if err := rows.Scan(&n.ID, &n.PageID, &n.ParentID, &n.Label, &n.SnapshotJSON, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan undo node: %w", err)
		}
		if n.ParentID == nil && rootID == "" {
			rootID = n.ID
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	var currentID string
	err = s.db.Conn().QueryRow(
		`SELECT current_node_id FROM undo_state WHERE page_id = ?`, pageID,
	).Scan(&currentID)
	if err != nil {
		currentID = nodes[len(nodes)-1].ID
	}

	return &UndoTree{Nodes: nodes, CurrentID: currentID, RootID: rootID}, nil
}

// PushNode stores a snapshot under parentID and makes it current.
func (s *UndoStore) PushNode(pageID, nodeID, parentID, label string, elems []domain.Element, createdAt time.Time) (*UndoNode, error) {
	if elems == nil {
		elems = []domain.Element{}
	}
	snapshot, err := json.Marshal(elems)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var pID *string
	if parentID != "" {
		pID = &parentID
	}

	_, err = s.db.Conn().Exec(
		`INSERT INTO undo_nodes (id, page_id, parent_id, label, snapshot_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nodeID, pageID, pID, label, string(snapshot), createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert undo node: %w", err)
	}
	if err := s.GoTo(pageID, nodeID); err != nil {
		return nil, fmt.Errorf("update undo state: %w", err)
	}

	s.pruneIfNeeded(pageID)

	return &UndoNode{
		ID:           nodeID,
		PageID:       pageID,
		ParentID:     pID,
		Label:        label,
		SnapshotJSON: string(snapshot),
		CreatedAt:    createdAt,
	}, nil
}

// GoTo updates the current position pointer.
func (s *UndoStore) GoTo(pageID, nodeID string) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO undo_state (page_id, current_node_id) VALUES (?, ?)
		 ON CONFLICT(page_id) DO UPDATE SET current_node_id = excluded.current_node_id`,
		pageID, nodeID,
	)
	return err
}

// ClearPage removes all undo data for a page.
func (s *UndoStore) ClearPage(pageID string) error {
	_, _ = s.db.Conn().Exec(`DELETE FROM undo_state WHERE page_id = ?`, pageID)
	_, err := s.db.Conn().Exec(`DELETE FROM undo_nodes WHERE page_id = ?`, pageID)
	return err
}

// pruneIfNeeded removes the oldest nodes beyond maxNodes, never the current
// one. Children of a removed node move up to its parent.
func (s *UndoStore) pruneIfNeeded(pageID string) {
	var count int
	s.db.Conn().QueryRow(`SELECT COUNT(*) FROM undo_nodes WHERE page_id = ?`, pageID).Scan(&count)
	if count <= s.maxNodes {
		return
	}
	toDelete := count - s.maxNodes

	// read current before opening the rows cursor
	var currentID string
	s.db.Conn().QueryRow(`SELECT current_node_id FROM undo_state WHERE page_id = ?`, pageID).Scan(&currentID)

	rows, err := s.db.Conn().Query(
		`SELECT id FROM undo_nodes WHERE page_id = ? AND id != ?
		 ORDER BY created_at ASC, rowid ASC LIMIT ?`, pageID, currentID, toDelete,
	)
	if err != nil {
		return
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err == nil {
			ids = append(ids, id)
		}
	}
	rows.Close()

	for _, id := range ids {
		var parentID sql.NullString
		s.db.Conn().QueryRow(`SELECT parent_id FROM undo_nodes WHERE id = ?`, id).Scan(&parentID)
		s.db.Conn().Exec(`UPDATE undo_nodes SET parent_id = ? WHERE parent_id = ?`, parentID, id)
		s.db.Conn().Exec(`DELETE FROM undo_nodes WHERE id = ?`, id)
	}
}
