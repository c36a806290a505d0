// Package glob resolves filemap glob patterns against a directory tree.
//
// # Pattern Syntax
//
// A pattern is split on the path separator. Every component uses
// shell-style wildcards:
//
//   - `*` matches any run of characters, including a leading dot
//   - `?` matches a single character
//   - `[abc]`, `[a-z]` match one character from a class; `[!a]` or `[^a]` negate it
//   - `**` as a whole component matches the directory it appears in and every
//     directory below it, at any depth
//
// The last component is matched against names inside the directories the
// earlier components resolved to. A component without wildcards is looked up
// directly rather than by listing, so `..` and names containing spaces work.
//
// # Exclusions
//
// Exclusion patterns are compared with both the base name of an entry and its
// path relative to the base directory (where `*` may cross separators). An
// excluded entry is dropped and never descended into.
//
// The matcher only reads metadata. It takes the base directory explicitly and
// never changes the process working directory, so one Matcher can serve
// several interpreters.
package glob
