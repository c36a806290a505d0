// Package help serves the built-in help topics, such as the script syntax
// reference, through the cobra help command. Topics are markdown files
// embedded in the binary and rendered with glamour when writing to a
// terminal.
package help
