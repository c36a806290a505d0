package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/filemap/cmd/filemap"
	"github.com/arthur-debert/filemap/internal/version"
)

// Usage: filemap-docs [man|markdown] [dir]
//
// With no directory the top level man page is written to stdout.
func main() {
	kind := "man"
	if len(os.Args) > 1 {
		kind = os.Args[1]
	}
	dir := ""
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	rootCmd := filemap.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	header := &doc.GenManHeader{
		Title:   "FILEMAP",
		Section: "1",
		Source:  "filemap " + version.Version,
		Manual:  "filemap manual",
	}

	var err error
	switch {
	case kind == "man" && dir == "":
		err = doc.GenMan(rootCmd, header, os.Stdout)
	case kind == "man":
		err = mkdir(dir)
		if err == nil {
			err = doc.GenManTree(rootCmd, header, dir)
		}
	case kind == "markdown" && dir != "":
		err = mkdir(dir)
		if err == nil {
			err = doc.GenMarkdownTree(rootCmd, dir)
		}
	case kind == "markdown":
		err = doc.GenMarkdown(rootCmd, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", kind)
		fmt.Fprintf(os.Stderr, "Usage: %s [man|markdown] [dir]\n", os.Args[0])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s docs: %v\n", kind, err)
		os.Exit(1)
	}
}

func mkdir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
