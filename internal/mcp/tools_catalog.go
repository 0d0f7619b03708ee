package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/catalog"
	"sitebuilder/internal/palette"
)

func (s *Server) registerCatalogTools() {
	// ── list_element_types ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_element_types",
		mcp.WithDescription("List the element types that can be added to a page, grouped by palette category"),
		mcp.WithString("query", mcp.Description("Substring filter on the display name (optional)")),
	), s.handleListElementTypes)

	// ── find_element_type ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("find_element_type",
		mcp.WithDescription("Fuzzy-search element types by name, best match first"),
		mcp.WithString("query", mcp.Description("What to look for, e.g. 'img' or 'head'"), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 5)")),
	), s.handleFindElementType)

	// ── list_layouts ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_layouts",
		mcp.WithDescription("List layout presets that apply_layout can append to a page"),
	), s.handleListLayouts)
}

func (s *Server) handleListElementTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	type group struct {
		Category string         `json:"category"`
		Items    []catalog.Item `json:"items"`
	}
	var out []group
	for _, g := range catalog.AllCategories() {
		items := palette.Filter(g.Items, query)
		if len(items) == 0 {
			continue
		}
		out = append(out, group{Category: string(g.Category), Items: items})
	}
	return jsonResult(out)
}

func (s *Server) handleFindElementType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	matches := palette.Suggest(query, req.GetInt("limit", 5))
	if len(matches) == 0 {
		return textResult(fmt.Sprintf("No element type matches %q", query)), nil
	}
	return jsonResult(matches)
}

func (s *Server) handleListLayouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.layouts.Presets())
}
