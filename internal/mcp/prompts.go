package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("build_landing_page",
		mcp.WithPromptDescription("Guide through building a landing page from layout presets and elements"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the landing page is about"),
			mcp.RequiredArgument(),
		),
	), s.handleLandingPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("restyle_page",
		mcp.WithPromptDescription("Apply a consistent color and typography scheme to every element of a page"),
		mcp.WithArgument("palette",
			mcp.ArgumentDescription("Colors to use, e.g. 'navy #1e3a8a, sand #f5f5dc'"),
			mcp.RequiredArgument(),
		),
	), s.handleRestylePrompt)
}

func (s *Server) handleLandingPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a landing page for: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a landing page about "%s" on the active page. Follow these steps:

1. Use apply_layout with "hero" and set the hero heading and paragraph with update_content
2. Use apply_layout with "grid" and rewrite the three service cards for the topic
3. Use apply_layout with "zigzag" for a features section and replace the placeholder images' content with real URLs if you have them
4. Finish with add_element type "button" for a call to action and style it with update_style

Check the result with render_page format markdown. Keep copy short and specific.`, topic),
				},
			},
		},
	}, nil
}

func (s *Server) handleRestylePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	palette := req.Params.Arguments["palette"]
	return &mcp.GetPromptResult{
		Description: "Restyle the active page",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Restyle the active page using this palette: %s.

1. Read the page with get_page
2. For headings and subheadings set color and fontSize with update_style (pass several properties at once in styles)
3. For buttons set backgroundColor, color and borderRadius
4. For containers and cards set backgroundColor and padding

Do not change any content.`, palette),
				},
			},
		},
	}, nil
}
