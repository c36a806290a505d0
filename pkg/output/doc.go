// Package output renders a manifest for people and for other programs.
//
// Every renderer walks the manifest in order and never sorts it, so the
// output reflects the order in which destinations were added or last
// repointed. The text renderer is also what the interpreter's show command
// prints.
package output
