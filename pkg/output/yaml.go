package output

import (
	"io"

	"github.com/arthur-debert/filemap/pkg/manifest"
	"gopkg.in/yaml.v3"
)

// YAML renders the manifest as a sequence of entry mappings
type YAML struct {
	w io.Writer
}

// NewYAML creates a YAML renderer
func NewYAML(w io.Writer) *YAML {
	return &YAML{w: w}
}

func (r *YAML) Render(m *manifest.Manifest) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(m.Entries()); err != nil {
		return renderError(err, FormatYAML)
	}
	if err := enc.Close(); err != nil {
		return renderError(err, FormatYAML)
	}
	return nil
}
