package testutil

import (
	"path/filepath"

	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/filemap/pkg/orderedmap"
)

// Manifest builds a manifest from alternating destination and source
// arguments. Destinations are slash-separated; a trailing "/" marks a
// directory entry.
func Manifest(pairs ...string) *manifest.Manifest {
	m := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(filepath.FromSlash(pairs[i]), pairs[i+1])
	}
	return manifest.FromMap(m)
}
