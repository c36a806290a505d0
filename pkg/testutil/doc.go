// Package testutil builds file trees for tests.
//
// Trees are described as a flat list of slash-separated paths; an entry
// ending in "/" is a directory, anything else is a file whose content is
// its own path. MemTree keeps the tree in memory behind types.FS, DiskTree
// writes it under a temporary directory for code that needs the real OS.
// Manifest builds manifest fixtures the same way.
package testutil
