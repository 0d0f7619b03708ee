// Package preview serves rendered pages over HTTP so they can be opened
// in a real browser while editing.
package preview

import (
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/render"
	"sitebuilder/internal/storage"
)

// PageSource reads stored pages.
type PageSource interface {
	GetPage(id string) (*domain.Page, error)
	ListPages(siteID string) ([]domain.Page, error)
}

// Options configures the router.
type Options struct {
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// NewRouter builds the preview routes:
//
//	GET /health
//	GET /sites/{siteID}            page index
//	GET /pages/{pageID}?view=      full HTML document
//	GET /pages/{pageID}/markdown   page text as Markdown
func NewRouter(pages PageSource, opts Options) chi.Router {
	h := &handler{pages: pages}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/sites/{siteID}", h.siteIndex)
	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Get("/", h.page)
		r.Get("/markdown", h.markdown)
	})
	if opts.MCP != nil {
		r.Mount("/mcp", opts.MCP)
	}
	return r
}

type handler struct {
	pages PageSource
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	page, elems, ok := h.load(w, chi.URLParam(r, "pageID"))
	if !ok {
		return
	}
	view := render.ParseViewMode(r.URL.Query().Get("view"))
	body, err := render.RenderElements(elems)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	class, width := view.MaxWidth()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, documentTemplate,
		html.EscapeString(page.Name),
		class, width, view,
		render.Sanitize(body),
	)
}

func (h *handler) markdown(w http.ResponseWriter, r *http.Request) {
	page, elems, ok := h.load(w, chi.URLParam(r, "pageID"))
	if !ok {
		return
	}
	md, err := render.Markdown(elems)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprintf(w, "# %s\n\n%s", page.Name, md)
}

func (h *handler) siteIndex(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	pages, err := h.pages.ListPages(siteID)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	if len(pages) == 0 {
		http.NotFound(w, r)
		return
	}
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>Pages</title></head><body><ul>")
	for _, p := range pages {
		fmt.Fprintf(&b, `<li><a href="/pages/%s">%s</a> <code>/%s</code></li>`,
			html.EscapeString(p.ID), html.EscapeString(p.Name), html.EscapeString(p.Slug))
	}
	b.WriteString("</ul></body></html>")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}

func (h *handler) load(w http.ResponseWriter, pageID string) (*domain.Page, []domain.Element, bool) {
	page, err := h.pages.GetPage(pageID)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, err)
		return nil, nil, false
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	elems, err := page.Elements()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	return page, elems, true
}

func httpError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("[preview] %v", err)
	}
	http.Error(w, err.Error(), status)
}

const documentTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100">
<main class="mx-auto bg-white p-4 %s" style="max-width: %s" data-view-mode="%s">
%s
</main>
</body>
</html>
`
