package output

import (
	"io"

	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/pelletier/go-toml/v2"
)

type tomlDocument struct {
	File []manifest.Entry `toml:"file"`
}

// TOML renders the manifest as an array of [[file]] tables
type TOML struct {
	w io.Writer
}

// NewTOML creates a TOML renderer
func NewTOML(w io.Writer) *TOML {
	return &TOML{w: w}
}

func (r *TOML) Render(m *manifest.Manifest) error {
	doc := tomlDocument{File: m.Entries()}
	if err := toml.NewEncoder(r.w).Encode(doc); err != nil {
		return renderError(err, FormatTOML)
	}
	return nil
}
