package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/tree"
)

func (s *Server) registerElementTools() {
	// ── add_element ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Add a new element with its default content and style. Use list_element_types for valid types."),
		mcp.WithString("type", mcp.Description("Element type, e.g. heading, paragraph, image, container"), mcp.Required()),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("parentId", mcp.Description("Container, columns or card to add into (optional, top level if omitted)")),
		mcp.WithNumber("index", mcp.Description("Position among siblings (optional, appends if omitted)")),
		mcp.WithString("content", mcp.Description("Content to set instead of the default (optional)")),
	), s.handleAddElement)

	// ── update_content ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_content",
		mcp.WithDescription("Replace the content of an element"),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleUpdateContent)

	// ── update_style ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_style",
		mcp.WithDescription("Set style properties of an element. Pass property+value for one, or styles as a JSON object for several. Property names are camelCase CSS (fontSize, backgroundColor)."),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("property", mcp.Description("Style property (optional if styles is given)")),
		mcp.WithString("value", mcp.Description("Style value, e.g. 24px or #ff0000")),
		mcp.WithString("styles", mcp.Description(`JSON object of properties, e.g. {"fontSize":"24px","color":"#333"}`)),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleUpdateStyle)

	// ── delete_element (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("delete_element",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete an element and everything inside it. Requires user approval."),
		mcp.WithString("elementId", mcp.Description("Element ID to delete"), mcp.Required()),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteElement)

	// ── move_element ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_element",
		mcp.WithDescription("Move an element to a new position, optionally into another container"),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("index", mcp.Description("Target position among the new siblings"), mcp.Required()),
		mcp.WithString("parentId", mcp.Description("Target container (optional, top level if omitted)")),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleMoveElement)

	// ── duplicate_element ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_element",
		mcp.WithDescription("Copy an element and its children right after it"),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleDuplicateElement)

	// ── apply_layout ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_layout",
		mcp.WithDescription("Append a layout preset (see list_layouts) to the end of the page"),
		mcp.WithString("layoutId", mcp.Description("Layout preset ID, e.g. hero, grid, zigzag"), mcp.Required()),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleApplyLayout)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ := domain.ElementType(req.GetString("type", ""))
	if typ == "" {
		return nil, fmt.Errorf("type is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	id, err := s.editor.AddElement(ctx, pageID, typ, req.GetString("parentId", ""), req.GetInt("index", 1<<30))
	if err != nil {
		return nil, fmt.Errorf("add element: %w", err)
	}
	if content, ok := req.GetArguments()["content"].(string); ok {
		if _, err := s.editor.EditContent(ctx, pageID, id, content); err != nil {
			return nil, err
		}
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return s.elementResult(pageID, id)
}

func (s *Server) handleUpdateContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elementID := req.GetString("elementId", "")
	if elementID == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	content, ok := req.GetArguments()["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.requireElement(pageID, elementID); err != nil {
		return nil, err
	}
	changed, err := s.editor.EditContent(ctx, pageID, elementID, content)
	if err != nil {
		return nil, err
	}
	if !changed {
		return textResult("Content unchanged"), nil
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return s.elementResult(pageID, elementID)
}

func (s *Server) handleUpdateStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elementID := req.GetString("elementId", "")
	if elementID == "" {
		return nil, fmt.Errorf("elementId is required")
	}

	styles, err := parseStyles(req.GetString("styles", ""))
	if err != nil {
		return nil, err
	}
	if prop := req.GetString("property", ""); prop != "" {
		styles[prop] = req.GetString("value", "")
	}
	if len(styles) == 0 {
		return nil, fmt.Errorf("property or styles is required")
	}

	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.requireElement(pageID, elementID); err != nil {
		return nil, err
	}

	changed, err := s.editor.EditStyles(ctx, pageID, elementID, styles)
	if err != nil {
		return nil, err
	}
	if !changed {
		return textResult("Style unchanged"), nil
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return s.elementResult(pageID, elementID)
}

func (s *Server) handleDeleteElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elementID := req.GetString("elementId", "")
	if elementID == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	elems, err := s.editor.Elements(pageID)
	if err != nil {
		return nil, err
	}
	e, ok := tree.Get(elems, elementID)
	if !ok {
		return nil, fmt.Errorf("element %s not found on page %s", elementID, pageID)
	}

	desc := fmt.Sprintf("Delete %s element %s", e.Type, elementID)
	if n := tree.Count(e.Children); n > 0 {
		desc += fmt.Sprintf(" and %d nested element(s)", n)
	}
	if err := requireApproval(s.approval, "delete_element", desc, approvalMetadata(pageID, elementID)); err != nil {
		return nil, err
	}

	if _, err := s.editor.Delete(ctx, pageID, elementID); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Deleted %s", elementID)), nil
}

func (s *Server) handleMoveElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elementID := req.GetString("elementId", "")
	if elementID == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.editor.Move(ctx, pageID, elementID, req.GetString("parentId", ""), req.GetInt("index", 0)); err != nil {
		return nil, fmt.Errorf("move element: %w", err)
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return s.elementResult(pageID, elementID)
}

func (s *Server) handleDuplicateElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elementID := req.GetString("elementId", "")
	if elementID == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	copyID, err := s.editor.Duplicate(ctx, pageID, elementID)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return s.elementResult(pageID, copyID)
}

func (s *Server) handleApplyLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	layoutID := req.GetString("layoutId", "")
	if layoutID == "" {
		return nil, fmt.Errorf("layoutId is required")
	}
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	ids, err := s.editor.ApplyLayout(ctx, pageID, layoutID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return textResult(fmt.Sprintf("Layout %q has no elements; page unchanged", layoutID)), nil
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{"pageId": pageID, "elementIds": ids})
}

// requireElement turns a silent no-op on an unknown id into a tool error.
func (s *Server) requireElement(pageID, elementID string) error {
	elems, err := s.editor.Elements(pageID)
	if err != nil {
		return err
	}
	if !tree.Contains(elems, elementID) {
		return fmt.Errorf("element %s not found on page %s", elementID, pageID)
	}
	return nil
}

func (s *Server) elementResult(pageID, elementID string) (*mcp.CallToolResult, error) {
	elems, err := s.editor.Elements(pageID)
	if err != nil {
		return nil, err
	}
	e, ok := tree.Get(elems, elementID)
	if !ok {
		return nil, fmt.Errorf("element %s not found on page %s", elementID, pageID)
	}
	return jsonResult(e)
}
