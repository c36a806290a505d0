package output

import (
	"fmt"
	"io"

	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	headerColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D56F4"}
	dirColor    = lipgloss.AdaptiveColor{Light: "#0366D6", Dark: "#58A6FF"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6A737D", Dark: "#8B949E"}
)

// Term renders the manifest as a table for colour terminals
type Term struct {
	w      io.Writer
	header lipgloss.Style
	dir    lipgloss.Style
	muted  lipgloss.Style
}

// NewTerm creates a table renderer writing to w
func NewTerm(w io.Writer) *Term {
	r := lipgloss.NewRenderer(w)
	return &Term{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(headerColor),
		dir:    r.NewStyle().Foreground(dirColor),
		muted:  r.NewStyle().Italic(true).Foreground(mutedColor),
	}
}

func (t *Term) Render(m *manifest.Manifest) error {
	if m.Len() == 0 {
		if _, err := fmt.Fprintln(t.w, t.muted.Render("(empty manifest)")); err != nil {
			return renderError(err, FormatTerminal)
		}
		return nil
	}

	data := pterm.TableData{{
		t.header.Render("Destination"),
		t.header.Render("Source"),
		t.header.Render("Kind"),
	}}
	for _, e := range m.Entries() {
		dest, kind := e.Destination, "file"
		if e.Dir {
			dest, kind = t.dir.Render(dest), "dir"
		}
		data = append(data, []string{dest, e.Source, kind})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return renderError(err, FormatTerminal)
	}
	if _, err := fmt.Fprintln(t.w, table); err != nil {
		return renderError(err, FormatTerminal)
	}
	return nil
}
