package fmlang

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/filemap/pkg/types"
)

// CollectOptions describes a directory to package
type CollectOptions struct {
	// Source is the directory to collect
	Source string
	// Recurse descends into subdirectories
	Recurse bool
	// Empties keeps directories, including empty ones, as entries
	Empties bool
	// Excludes are globs relative to Source that are left out
	Excludes []string
}

// CollectScript writes the script that collects a directory
func CollectScript(opts CollectOptions) (string, error) {
	if opts.Source == "" {
		return "", errors.New(errors.ErrInvalidInput, "collect requires a source directory")
	}

	src, err := quoteArg(opts.Source)
	if err != nil {
		return "", err
	}
	lines := []string{"chdir " + src}

	for _, x := range opts.Excludes {
		q, err := quoteArg(x)
		if err != nil {
			return "", err
		}
		lines = append(lines, "exclude "+q)
	}

	switch {
	case opts.Recurse && opts.Empties:
		lines = append(lines, "recurse", "dirrecurse")
	case opts.Recurse:
		lines = append(lines, "recurse")
	case opts.Empties:
		lines = append(lines, "add", "diradd")
	default:
		lines = append(lines, "add")
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Collect runs the collect script for opts against fsys
func Collect(fsys types.FS, opts CollectOptions) (*manifest.Manifest, error) {
	if opts.Source != "" {
		src, err := filepath.Abs(opts.Source)
		if err != nil {
			return nil, newInvalidDirectoryError(opts.Source, err)
		}
		opts.Source = src
	}
	script, err := CollectScript(opts)
	if err != nil {
		return nil, err
	}
	ip, err := New(Options{FS: fsys, Dir: opts.Source})
	if err != nil {
		return nil, err
	}
	if err := ip.RunScript(script); err != nil {
		return nil, err
	}
	return ip.Manifest(), nil
}

// Destinations runs script and returns only the destination keys
func Destinations(script string, opts Options) ([]string, error) {
	ip, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := ip.RunScript(script); err != nil {
		return nil, err
	}
	return ip.Manifest().Destinations(), nil
}

// quoteArg quotes s so that it survives tokenizing as one argument
func quoteArg(s string) (string, error) {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'", nil
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "cannot quote %q: it contains both quote characters", s).
			WithDetail("value", s)
	}
}
