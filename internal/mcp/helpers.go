package mcpserver

import (
	"encoding/json"
	"fmt"
	"sort"

	"sitebuilder/internal/domain"
)

// parseStyles decodes the styles argument of update_style, a JSON object
// of camelCase CSS properties with string or number values. Empty input
// yields an empty map.
func parseStyles(raw string) (map[string]any, error) {
	styles := map[string]any{}
	if raw == "" {
		return styles, nil
	}
	if err := json.Unmarshal([]byte(raw), &styles); err != nil {
		return nil, fmt.Errorf("invalid styles JSON: %w", err)
	}
	if styles == nil {
		styles = map[string]any{}
	}
	for _, p := range sortedKeys(styles) {
		if err := domain.CheckStyleValue(p, styles[p]); err != nil {
			return nil, fmt.Errorf("invalid styles: %w", err)
		}
	}
	return styles, nil
}

// sortedKeys returns the property names of a style patch in a stable order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// approver is the part of ApprovalQueue the destructive tools block on.
type approver interface {
	Request(tool, description string, metadata ...string) (bool, error)
}

// requireApproval fails unless the user explicitly approved the action.
func requireApproval(a approver, tool, description, metadata string) error {
	approved, err := a.Request(tool, description, metadata)
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("action not approved: %s", tool)
	}
	return nil
}

// approvalMetadata is the JSON the frontend uses to highlight the
// elements a pending action touches.
func approvalMetadata(pageID string, elementIDs ...string) string {
	data, err := json.Marshal(map[string]any{"pageId": pageID, "elementIds": elementIDs})
	if err != nil {
		return "{}"
	}
	return string(data)
}
