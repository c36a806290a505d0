package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/filemap/pkg/filesystem"
	"github.com/arthur-debert/filemap/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// MemTree builds an in-memory tree from absolute entries
func MemTree(t *testing.T, entries ...string) types.FS {
	t.Helper()
	fs, mem := filesystem.NewMemory()
	for _, e := range entries {
		path := filepath.FromSlash(e)
		if strings.HasSuffix(e, "/") {
			require.NoError(t, mem.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, mem.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(mem, path, []byte(e), 0644))
	}
	return fs
}

// DiskTree creates entries, relative to a fresh temporary directory, and
// returns that directory
func DiskTree(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(e), 0644))
	}
	return root
}
