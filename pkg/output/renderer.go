package output

import (
	"io"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/manifest"
)

// DefaultWidth is the key column width of the text format
const DefaultWidth = 24

// Renderer writes a manifest in one format
type Renderer interface {
	Render(m *manifest.Manifest) error
}

// Options tunes renderer construction
type Options struct {
	// Width is the key column width of the text format
	Width int
}

// New creates the renderer for format. FormatAuto must be resolved by the
// caller first, since detection needs a terminal file rather than a writer.
func New(format Format, w io.Writer, opts Options) (Renderer, error) {
	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", format.String()).
		Msg("Creating renderer")

	switch format {
	case FormatText:
		return NewText(w, opts.Width), nil
	case FormatTerminal:
		return NewTerm(w), nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatYAML:
		return NewYAML(w), nil
	case FormatTOML:
		return NewTOML(w), nil
	case FormatXML:
		return NewXML(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "no renderer for format %s", format).
			WithDetail("format", format.String())
	}
}

func renderError(err error, format Format) error {
	return errors.Wrapf(err, errors.ErrRenderFailed, "failed to render %s output", format)
}
