package types

import (
	"io/fs"
)

// FS is the read-only filesystem view the glob matcher and the interpreter
// resolve paths against. Every path passed in is absolute or relative to
// the process directory; implementations never consult a cursor of their own.
type FS interface {
	// Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists a directory sorted by entry name.
	ReadDir(name string) ([]fs.DirEntry, error)
}
