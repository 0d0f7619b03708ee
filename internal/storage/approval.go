package storage

import "fmt"

// PendingApproval is a destructive MCP action written by the standalone
// server and resolved by the app.
type PendingApproval struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	Metadata    string `json:"metadata"`
	CreatedAt   string `json:"createdAt"`
}

// ApprovalStore reads and resolves rows of mcp_approvals.
type ApprovalStore struct {
	db *DB
}

func NewApprovalStore(db *DB) *ApprovalStore {
	return &ApprovalStore{db: db}
}

func (s *ApprovalStore) ListPending() ([]PendingApproval, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, tool, description, metadata, created_at FROM mcp_approvals
		 WHERE status = 'pending' ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	var out []PendingApproval
	for rows.Next() {
		var a PendingApproval
		if err := rows.Scan(&a.ID, &a.Tool, &a.Description, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Resolve marks a pending action approved or rejected. The waiting MCP
// process deletes the row once it has read the result.
func (s *ApprovalStore) Resolve(id string, approved bool) error {
	status := "rejected"
	if approved {
		status = "approved"
	}
	res, err := s.db.conn.Exec(
		`UPDATE mcp_approvals SET status = ? WHERE id = ? AND status = 'pending'`, status, id,
	)
	if err != nil {
		return fmt.Errorf("resolve approval: %w", err)
	}
	return requireRow(res, "approval", id)
}
