package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/render"
)

const pageURIPrefix = "builder://page/"

func (s *Server) registerResources() {
	// ── builder://sites ────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"builder://sites",
		"All Sites",
		mcp.WithMIMEType("application/json"),
	), s.handleSitesResource)

	// ── builder://page/{pageId}/elements ───────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"builder://page/{pageId}/elements",
			"Element tree of a page",
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handlePageElementsResource,
	)

	// ── builder://page/{pageId}/outline ────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"builder://page/{pageId}/outline",
			"Page content as Markdown",
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handlePageOutlineResource,
	)
}

func (s *Server) handleSitesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sites, err := s.sites.ListSites()
	if err != nil {
		return nil, err
	}

	type pageSummary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	type siteSummary struct {
		ID        string        `json:"id"`
		Name      string        `json:"name"`
		Subdomain string        `json:"subdomain"`
		Pages     []pageSummary `json:"pages"`
	}

	summaries := make([]siteSummary, 0, len(sites))
	for _, site := range sites {
		pages, err := s.sites.ListPages(site.ID)
		if err != nil {
			return nil, err
		}
		sum := siteSummary{ID: site.ID, Name: site.Name, Subdomain: site.Subdomain, Pages: []pageSummary{}}
		for _, p := range pages {
			sum.Pages = append(sum.Pages, pageSummary{ID: p.ID, Name: p.Name, Slug: p.Slug})
		}
		summaries = append(summaries, sum)
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "builder://sites",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePageElementsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	pageID := extractPageIDFromURI(uri)
	if pageID == "" {
		return nil, fmt.Errorf("could not extract pageId from URI: %s", uri)
	}
	page, err := s.sites.GetPage(pageID)
	if err != nil {
		return nil, err
	}
	elems, err := page.Elements()
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(elems, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePageOutlineResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	pageID := extractPageIDFromURI(uri)
	if pageID == "" {
		return nil, fmt.Errorf("could not extract pageId from URI: %s", uri)
	}
	page, err := s.sites.GetPage(pageID)
	if err != nil {
		return nil, err
	}
	elems, err := page.Elements()
	if err != nil {
		return nil, err
	}
	md, err := render.Markdown(elems)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     "# " + page.Name + "\n\n" + md,
		},
	}, nil
}

// extractPageIDFromURI extracts the page ID from "builder://page/{id}/...".
func extractPageIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, pageURIPrefix)
	if !ok {
		return ""
	}
	id, _, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	return id
}
