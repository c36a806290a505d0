// Package fmlang implements the file-mapper language, a line-oriented
// command language that builds an ordered mapping of destination paths to
// source files for packaging.
//
// # Commands
//
// Each line holds one command and at most one argument:
//
//	add [<glob>]         files (not directories) matching glob in the current directory
//	diradd [<glob>]      directories matching glob, not their contents
//	recurse [<glob>]     files matching glob here and in every subdirectory
//	dirrecurse [<glob>]  directories matching glob here and in every subdirectory
//	chdir <dir>          resolve later globs relative to dir (alias: cd)
//	exclude <glob>       drop entries matching glob from now on
//	unexclude <glob>     stop excluding glob, if it was excluded
//	show                 print the current mapping
//
// A missing glob means "*". The contents of the current directory land at
// the root of the mapping: to place files in a subdirectory of the
// destination use "add subdir/file", not "chdir subdir" followed by "add file".
// Directory destinations end in a path separator.
//
// # Lexical Rules
//
//   - "#" starts a comment running to the end of the line, unless quoted
//   - an argument containing whitespace must be wrapped in single or double quotes
//   - everything after the first argument is ignored
//   - blank lines and comment lines do nothing
//
// # Duplicates
//
// With ReplaceDuplicates off, a command that would point an existing
// destination at a different source fails with a Duplicate Files error and
// adds nothing. With it on, the new source wins and the destination moves to
// the end of the mapping. Re-adding an identical pair never changes anything.
//
// # Example
//
//	chdir /etc
//	exclude *i*
//	add *tab        # everything but inittab
//	diradd cron.d
//	add pam.d/p*
//	chdir X11
//	unexclude *i*
//	add X*
package fmlang
