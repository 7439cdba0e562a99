package report

import (
	"io"

	"github.com/goccy/go-json"

	"edakit/internal/errors"
)

// JSONRenderer writes the report envelope as indented JSON
type JSONRenderer struct {
	indent string
}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{indent: "  "}
}

func (j *JSONRenderer) Format() string { return "json" }

func (j *JSONRenderer) Render(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.indent)
	if err := enc.Encode(r); err != nil {
		return errors.RenderError(j.Format(), err)
	}
	return nil
}
