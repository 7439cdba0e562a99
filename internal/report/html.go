package report

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"edakit/internal/errors"
)

// HTMLRenderer renders the markdown document as a standalone HTML page
type HTMLRenderer struct {
	md *MarkdownRenderer
}

// NewHTMLRenderer creates an HTML renderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{md: NewMarkdownRenderer()}
}

func (h *HTMLRenderer) Format() string { return "html" }

// Render converts the markdown form of the report and writes the page
func (h *HTMLRenderer) Render(w io.Writer, r *Report) error {
	// parsers keep state between documents
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: r.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})

	page := markdown.ToHTML([]byte(h.md.Markdown(r)), p, renderer)
	if _, err := w.Write(page); err != nil {
		return errors.RenderError(h.Format(), err)
	}
	return nil
}
