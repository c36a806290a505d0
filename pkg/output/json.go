package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/filemap/pkg/manifest"
)

// JSON renders the manifest as an array of entry objects
type JSON struct {
	encoder *json.Encoder
}

// NewJSON creates a JSON renderer
func NewJSON(w io.Writer) *JSON {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &JSON{encoder: encoder}
}

func (r *JSON) Render(m *manifest.Manifest) error {
	if err := r.encoder.Encode(m.Entries()); err != nil {
		return renderError(err, FormatJSON)
	}
	return nil
}
