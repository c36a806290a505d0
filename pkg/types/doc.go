// Package types defines the interfaces shared by filemap's matcher,
// interpreter and filesystem back ends.
package types
