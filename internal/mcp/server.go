package mcpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sitebuilder/internal/service"
)

// Server is the MCP server for the site builder. It exposes tools,
// resources and prompts so AI agents can edit pages.
type Server struct {
	mcp        *server.MCPServer
	emitter    EventEmitter
	approval   *ApprovalQueue
	sites      *service.SiteService
	editor     *service.EditorService
	layouts    service.LayoutProvider
	standalone bool

	mu           sync.Mutex
	activePageID string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter EventEmitter
	Sites   *service.SiteService
	Editor  *service.EditorService
	Layouts service.LayoutProvider
	// ApprovalDB switches destructive-tool approval to the mcp_approvals
	// table and makes every tool reread pages before editing. Set it when
	// running outside the app.
	ApprovalDB  *sql.DB
	AutoApprove bool
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	if deps.ApprovalDB != nil {
		approval.SetDB(deps.ApprovalDB)
	}
	approval.SetAutoApprove(deps.AutoApprove)

	s := &Server{
		emitter:    deps.Emitter,
		approval:   approval,
		sites:      deps.Sites,
		editor:     deps.Editor,
		layouts:    deps.Layouts,
		standalone: deps.ApprovalDB != nil,
	}

	s.mcp = server.NewMCPServer(
		"sitebuilder-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerNavigationTools()
	s.registerCatalogTools()
	s.registerElementTools()
	s.registerPageTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// MCPServer exposes the underlying server, e.g. for an HTTP transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// emitPageChanged notifies the frontend that an agent edited a page.
func (s *Server) emitPageChanged(ctx context.Context, pageID string) {
	s.emitter.Emit(ctx, service.EventPageChanged, map[string]string{"pageId": pageID})
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func (s *Server) setActivePage(pageID string) {
	s.mu.Lock()
	s.activePageID = pageID
	s.mu.Unlock()
}

// resolvePageID returns the pageID from tool args or falls back to activePageID.
func (s *Server) resolvePageID(args map[string]any) (string, error) {
	if pid, ok := args["pageId"].(string); ok && pid != "" {
		return pid, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activePageID != "" {
		return s.activePageID, nil
	}
	return "", fmt.Errorf("no pageId provided and no active page set (use set_active_page first)")
}

// openPage resolves and opens the target page. A standalone server first
// picks up edits the app saved since the last call.
func (s *Server) openPage(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	pageID, err := s.resolvePageID(req.GetArguments())
	if err != nil {
		return "", err
	}
	if _, err := s.editor.OpenPage(ctx, pageID); err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	if s.standalone {
		if _, err := s.editor.Reload(ctx, pageID); err != nil {
			return "", fmt.Errorf("reload page: %w", err)
		}
	}
	return pageID, nil
}

// commit saves an agent edit so the app and other readers see it.
func (s *Server) commit(ctx context.Context, pageID string) error {
	if err := s.editor.Save(ctx, pageID); err != nil {
		return fmt.Errorf("save page: %w", err)
	}
	s.emitPageChanged(ctx, pageID)
	return nil
}
