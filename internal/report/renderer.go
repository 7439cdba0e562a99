package report

import (
	"fmt"
	"io"
	"strings"

	"edakit/internal/errors"
)

// Renderer writes a report in one output format
type Renderer interface {
	Format() string
	Render(w io.Writer, r *Report) error
}

// Formats lists the supported output formats
var Formats = []string{"markdown", "html", "json", "xlsx"}

// NewRenderer returns the renderer for a format name
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "xlsx", "excel":
		return NewXLSXRenderer(), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", ")))
	}
}
