// Package manifest holds the ordered destination to source mapping an
// interpreter run produces. It is the hand-off point to packaging code:
// renderers and the stager consume a Manifest and never reorder it.
package manifest

import (
	"os"
	"strings"

	"github.com/arthur-debert/filemap/pkg/orderedmap"
)

// Entry is one destination/source pair
type Entry struct {
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	Source      string `json:"source" yaml:"source" toml:"source"`
	// Dir is set for directory entries, whose destination ends in a separator
	Dir bool `json:"dir" yaml:"dir" toml:"dir"`
}

// Manifest is an immutable, ordered list of entries
type Manifest struct {
	entries []Entry
}

// FromMap snapshots an ordered destination map
func FromMap(m *orderedmap.Map[string, string]) *Manifest {
	pairs := m.Pairs()
	entries := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, Entry{
			Destination: p.Key,
			Source:      p.Value,
			Dir:         IsDirKey(p.Key),
		})
	}
	return &Manifest{entries: entries}
}

// IsDirKey reports whether a destination key names a directory
func IsDirKey(dest string) bool {
	return strings.HasSuffix(dest, string(os.PathSeparator))
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in order
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Destinations returns the destination keys in order
func (m *Manifest) Destinations() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Destination)
	}
	return out
}
