package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/render"
)

func (s *Server) registerPageTools() {
	// ── get_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Get a page with its full element tree and undo availability"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleGetPage)

	// ── render_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("render_page",
		mcp.WithDescription("Render a page as HTML (as shown on the canvas) or as Markdown"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("format",
			mcp.Description("html or markdown (default html)"),
			mcp.Enum("html", "markdown"),
		),
		mcp.WithString("viewMode",
			mcp.Description("Canvas width for html: desktop, tablet or mobile (default desktop)"),
			mcp.Enum("desktop", "tablet", "mobile"),
		),
	), s.handleRenderPage)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last edit on a page"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone edit on a page"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleRedo)
}

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	state, err := s.editor.State(pageID)
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{
		"id":       state.Page.ID,
		"siteId":   state.Page.SiteID,
		"name":     state.Page.Name,
		"slug":     state.Page.Slug,
		"elements": state.Elements,
		"canUndo":  state.CanUndo,
		"canRedo":  state.CanRedo,
	})
}

func (s *Server) handleRenderPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.GetString("format", "html") == "markdown" {
		elems, err := s.editor.Elements(pageID)
		if err != nil {
			return nil, err
		}
		md, err := render.Markdown(elems)
		if err != nil {
			return nil, fmt.Errorf("render markdown: %w", err)
		}
		return textResult(md), nil
	}
	html, err := s.editor.Canvas(pageID, req.GetString("viewMode", ""))
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return textResult(html), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, req, true)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, req, false)
}

func (s *Server) step(ctx context.Context, req mcp.CallToolRequest, undo bool) (*mcp.CallToolResult, error) {
	pageID, err := s.openPage(ctx, req)
	if err != nil {
		return nil, err
	}
	name, fn := "redo", s.editor.Redo
	if undo {
		name, fn = "undo", s.editor.Undo
	}
	moved, err := fn(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return textResult(fmt.Sprintf("Nothing to %s", name)), nil
	}
	if err := s.commit(ctx, pageID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("%s applied on page %s", name, pageID)), nil
}
