package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/layouts"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

type testEnv struct {
	srv     *Server
	emitter *service.MockEmitter
	pageID  string
}

func newTestEnv(t *testing.T, autoApprove bool) *testEnv {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "builder.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	emitter := &service.MockEmitter{}
	pages := storage.NewPageStore(db)
	registry := layouts.NewRegistry("")
	sites := service.NewSiteService(storage.NewSiteStore(db), pages, emitter)
	editor := service.NewEditorService(pages, storage.NewUndoStore(db, 40), registry, emitter, 40)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv := New(ctx, Deps{
		Emitter:     emitter,
		Sites:       sites,
		Editor:      editor,
		Layouts:     registry,
		AutoApprove: autoApprove,
	})

	site, err := sites.CreateSite(ctx, "Bakery", "", "")
	if err != nil {
		t.Fatal(err)
	}
	list, _ := sites.ListPages(site.ID)
	return &testEnv{srv: srv, emitter: emitter, pageID: list[0].ID}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return tc.Text
}

func (e *testEnv) elements(t *testing.T) []domain.Element {
	t.Helper()
	page, err := e.srv.sites.GetPage(e.pageID)
	if err != nil {
		t.Fatal(err)
	}
	elems, err := page.Elements()
	if err != nil {
		t.Fatal(err)
	}
	return elems
}

func TestResolvePageID(t *testing.T) {
	env := newTestEnv(t, true)
	if _, err := env.srv.resolvePageID(map[string]any{}); err == nil {
		t.Error("expected error without pageId or active page")
	}
	ctx := context.Background()
	if _, err := env.srv.handleSetActivePage(ctx, callReq(map[string]any{"pageId": "missing"})); err == nil {
		t.Error("unknown page should not become active")
	}
	if _, err := env.srv.handleSetActivePage(ctx, callReq(map[string]any{"pageId": env.pageID})); err != nil {
		t.Fatal(err)
	}
	got, err := env.srv.resolvePageID(map[string]any{})
	if err != nil || got != env.pageID {
		t.Errorf("active page = %q, %v", got, err)
	}
}

func TestAddElement_SavesAndNotifies(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	res, err := env.srv.handleAddElement(ctx, callReq(map[string]any{
		"pageId":  env.pageID,
		"type":    "heading",
		"content": "Fresh Bread Daily",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var added domain.Element
	if err := json.Unmarshal([]byte(resultText(t, res)), &added); err != nil {
		t.Fatal(err)
	}
	if added.Type != domain.ElementHeading || added.Content != "Fresh Bread Daily" {
		t.Errorf("added = %+v", added)
	}

	elems := env.elements(t)
	if len(elems) != 4 || elems[3].ID != added.ID {
		t.Errorf("element should be appended and saved, got %d elements", len(elems))
	}
	if env.emitter.Count(service.EventPageChanged) == 0 {
		t.Error("agent edits should emit a page change")
	}

	if _, err := env.srv.handleAddElement(ctx, callReq(map[string]any{"pageId": env.pageID, "type": "marquee"})); err == nil {
		t.Error("unknown type should be a tool error")
	}
}

func TestUpdateStyle_Multiple(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	target := env.elements(t)[0].ID

	_, err := env.srv.handleUpdateStyle(ctx, callReq(map[string]any{
		"pageId":    env.pageID,
		"elementId": target,
		"styles":    `{"color":"#333","fontSize":"40px"}`,
		"property":  "textAlign",
		"value":     "left",
	}))
	if err != nil {
		t.Fatal(err)
	}
	style := env.elements(t)[0].Style
	if style["color"] != "#333" || style["fontSize"] != "40px" || style["textAlign"] != "left" {
		t.Errorf("style = %v", style)
	}

	_, err = env.srv.handleUpdateStyle(ctx, callReq(map[string]any{
		"pageId": env.pageID, "elementId": "nope", "property": "color", "value": "red",
	}))
	if err == nil {
		t.Error("unknown element should be a tool error")
	}
}

func TestDeleteElement_AutoApproved(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	target := env.elements(t)[2].ID

	if _, err := env.srv.handleDeleteElement(ctx, callReq(map[string]any{"pageId": env.pageID, "elementId": target})); err != nil {
		t.Fatal(err)
	}
	if len(env.elements(t)) != 2 {
		t.Error("element should be deleted")
	}
}

func TestDeleteElement_Rejected(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	target := env.elements(t)[0].ID

	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if ids := env.srv.approval.Pending(); len(ids) > 0 {
				env.srv.Reject(ids[0])
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	_, err := env.srv.handleDeleteElement(ctx, callReq(map[string]any{"pageId": env.pageID, "elementId": target}))
	if err == nil || !strings.Contains(err.Error(), "rejected") {
		t.Fatalf("expected rejection, got %v", err)
	}
	if len(env.elements(t)) != 3 {
		t.Error("rejected delete must leave the page alone")
	}
	if env.emitter.Count("mcp:approval-required") != 1 {
		t.Error("approval request should reach the frontend")
	}
}

func TestApplyLayoutUndoRedo(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.srv.setActivePage(env.pageID)

	if _, err := env.srv.handleApplyLayout(ctx, callReq(map[string]any{"layoutId": "hero"})); err != nil {
		t.Fatal(err)
	}
	if n := len(env.elements(t)); n != 4 {
		t.Fatalf("after hero: %d top-level elements", n)
	}

	if _, err := env.srv.handleUndo(ctx, callReq(nil)); err != nil {
		t.Fatal(err)
	}
	if n := len(env.elements(t)); n != 3 {
		t.Errorf("after undo: %d", n)
	}
	if _, err := env.srv.handleRedo(ctx, callReq(nil)); err != nil {
		t.Fatal(err)
	}
	if n := len(env.elements(t)); n != 4 {
		t.Errorf("after redo: %d", n)
	}

	res, _ := env.srv.handleRedo(ctx, callReq(nil))
	if !strings.Contains(resultText(t, res), "Nothing to redo") {
		t.Error("redo at the tip should report nothing to do")
	}
}

func TestRenderPage(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	res, err := env.srv.handleRenderPage(ctx, callReq(map[string]any{"pageId": env.pageID, "format": "markdown"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), "Welcome to My Website") {
		t.Errorf("markdown = %q", resultText(t, res))
	}

	res, err = env.srv.handleRenderPage(ctx, callReq(map[string]any{"pageId": env.pageID, "viewMode": "mobile"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), "max-w-sm") {
		t.Error("mobile render should clamp the width")
	}
}

func TestFindElementType(t *testing.T) {
	env := newTestEnv(t, true)
	res, err := env.srv.handleFindElementType(context.Background(), callReq(map[string]any{"query": "img", "limit": 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), `"image"`) {
		t.Errorf("fuzzy search for img should find image: %s", resultText(t, res))
	}
}

func TestResources(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	var req mcp.ReadResourceRequest
	req.Params.URI = "builder://page/" + env.pageID + "/outline"
	contents, err := env.srv.handlePageOutlineResource(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.HasPrefix(text, "# Home") {
		t.Errorf("outline = %q", text)
	}

	req.Params.URI = "builder://sites"
	contents, err = env.srv.handleSitesResource(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contents[0].(mcp.TextResourceContents).Text, "Bakery") {
		t.Error("sites resource should list the site")
	}
}

func TestExtractPageIDFromURI(t *testing.T) {
	tests := map[string]string{
		"builder://page/abc-123/elements": "abc-123",
		"builder://page/abc-123/outline":  "abc-123",
		"builder://page/abc-123":          "",
		"other://page/abc/elements":       "",
	}
	for uri, want := range tests {
		if got := extractPageIDFromURI(uri); got != want {
			t.Errorf("extractPageIDFromURI(%q) = %q, want %q", uri, got, want)
		}
	}
}

func TestParseStyles(t *testing.T) {
	for _, raw := range []string{"", "null"} {
		got, err := parseStyles(raw)
		if err != nil || got == nil || len(got) != 0 {
			t.Errorf("parseStyles(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := parseStyles("{color"); err == nil {
		t.Error("malformed JSON should fail")
	}
	got, _ := parseStyles(`{"padding":"8px","color":"red"}`)
	if keys := sortedKeys(got); strings.Join(keys, ",") != "color,padding" {
		t.Errorf("keys = %v", keys)
	}
	if got, err := parseStyles(`{"fontSize":24,"color":"red"}`); err != nil || got["fontSize"] != 24.0 {
		t.Errorf("numbers should pass: %v, %v", got, err)
	}
	for _, raw := range []string{`{"color":{"r":1}}`, `{"margin":[1,2]}`, `{"color":null}`, `{"bold":true}`} {
		if _, err := parseStyles(raw); !errors.Is(err, domain.ErrStyleValue) {
			t.Errorf("parseStyles(%s) err = %v, want ErrStyleValue", raw, err)
		}
	}
}

func TestUpdateStyle_RejectsNonScalarValues(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	target := env.elements(t)[0].ID
	before := env.elements(t)[0].Style

	_, err := env.srv.handleUpdateStyle(ctx, callReq(map[string]any{
		"pageId":    env.pageID,
		"elementId": target,
		"styles":    `{"color":"#333","padding":{"top":4}}`,
	}))
	if err == nil {
		t.Fatal("object style value should be a tool error")
	}
	if diff := cmp.Diff(before, env.elements(t)[0].Style); diff != "" {
		t.Errorf("rejected patch changed the page (-want +got):\n%s", diff)
	}
}

func TestUpdateStyle_SingleUndoStep(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	target := env.elements(t)[0].ID
	before := env.elements(t)[0].Style

	_, err := env.srv.handleUpdateStyle(ctx, callReq(map[string]any{
		"pageId":    env.pageID,
		"elementId": target,
		"styles":    `{"color":"#333","fontSize":"40px","padding":"8px"}`,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.srv.editor.Undo(ctx, env.pageID); err != nil {
		t.Fatal(err)
	}
	elems, err := env.srv.editor.Elements(env.pageID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, elems[0].Style); diff != "" {
		t.Errorf("one undo should revert the whole patch (-want +got):\n%s", diff)
	}
}

type stubApprover struct {
	approved bool
	err      error
}

func (a stubApprover) Request(string, string, ...string) (bool, error) { return a.approved, a.err }

func TestRequireApproval(t *testing.T) {
	if err := requireApproval(stubApprover{approved: true}, "delete_element", "", ""); err != nil {
		t.Errorf("approved action failed: %v", err)
	}
	if err := requireApproval(stubApprover{}, "delete_element", "", ""); err == nil {
		t.Error("an unapproved answer without an error must still block the action")
	}
	if err := requireApproval(stubApprover{approved: true, err: errors.New("db down")}, "delete_element", "", ""); err == nil {
		t.Error("request errors must block the action")
	}
}
