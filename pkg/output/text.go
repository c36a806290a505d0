package output

import (
	"fmt"
	"io"

	"github.com/arthur-debert/filemap/pkg/manifest"
)

// Text prints one "destination: source" line per entry with the
// destination right-aligned to a fixed width
type Text struct {
	w     io.Writer
	width int
}

// NewText creates a text renderer; a width below one uses DefaultWidth
func NewText(w io.Writer, width int) *Text {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Text{w: w, width: width}
}

func (t *Text) Render(m *manifest.Manifest) error {
	for _, e := range m.Entries() {
		if _, err := fmt.Fprintf(t.w, "%*s: %s\n", t.width, e.Destination, e.Source); err != nil {
			return renderError(err, FormatText)
		}
	}
	return nil
}
