package domain

// PageState represents the complete editor state of a page.
// Returned to the frontend to render the canvas and panels.
type PageState struct {
	Page       Page      `json:"page"`
	Elements   []Element `json:"elements"`
	SelectedID string    `json:"selectedId"`
	CanUndo    bool      `json:"canUndo"`
	CanRedo    bool      `json:"canRedo"`
	Dirty      bool      `json:"dirty"`
}
