package glob

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/orderedmap"
	"github.com/arthur-debert/filemap/pkg/types"
	"github.com/rs/zerolog"
)

// Mode selects which kinds of entries a match returns
type Mode int

const (
	// ModeAll returns files and directories
	ModeAll Mode = iota
	// ModeFiles returns only entries that are not directories
	ModeFiles
	// ModeDirs returns only directories
	ModeDirs
)

// String returns the mode name used in logs
func (m Mode) String() string {
	switch m {
	case ModeFiles:
		return "files"
	case ModeDirs:
		return "dirs"
	default:
		return "all"
	}
}

// Options controls a single Match call
type Options struct {
	Mode Mode

	// Recursive prefixes the pattern with the recursive token, so the
	// pattern is applied in the base directory and every directory below it.
	Recursive bool

	// Exclusions are patterns whose matches are dropped and not descended into.
	Exclusions []string
}

// Hit is one matched filesystem entry
type Hit struct {
	// Name is the path relative to the base directory
	Name string
	// Path is the cleaned absolute path
	Path  string
	IsDir bool
}

// Matcher resolves patterns against a types.FS
type Matcher struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewMatcher creates a matcher reading from fs
func NewMatcher(fs types.FS) *Matcher {
	return &Matcher{
		fs:     fs,
		logger: logging.GetLogger("glob.matcher"),
	}
}

// candidate is an entry found while walking one pattern component
type candidate struct {
	name  string
	rel   string
	abs   string
	isDir bool
	// self marks the directory a recursive token was applied in
	self bool
}

// walk holds the state of one Match call
type walk struct {
	m          *Matcher
	pattern    string
	base       string
	fromRoot   bool
	exclusions []*Pattern
	hits       *orderedmap.Map[string, Hit]
}

// Match returns the entries under baseDir that match pattern and are not
// excluded, in discovery order. An empty pattern means "*".
func (m *Matcher) Match(baseDir, pattern string, opts Options) ([]Hit, error) {
	if pattern == "" {
		pattern = "*"
	}
	if opts.Recursive {
		pattern = RecursiveToken + string(filepath.Separator) + pattern
	}

	cleaned := filepath.Clean(pattern)
	fromRoot := filepath.IsAbs(cleaned)
	root := baseDir
	if fromRoot {
		root = filepath.VolumeName(cleaned) + string(filepath.Separator)
		cleaned = strings.TrimPrefix(cleaned[len(filepath.VolumeName(cleaned)):], string(filepath.Separator))
		if cleaned == "" {
			cleaned = "."
		}
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMatchFailed, "cannot resolve %s", baseDir).
			WithDetail("dir", baseDir)
	}
	absRoot := absBase
	if fromRoot {
		absRoot = root
	}

	w := &walk{
		m:        m,
		pattern:  pattern,
		base:     absBase,
		fromRoot: fromRoot,
		hits:     orderedmap.New[string, Hit](),
	}
	for _, x := range opts.Exclusions {
		p, err := Compile(x)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMatchFailed, "invalid exclusion %q", x).
				WithDetail("pattern", x)
		}
		w.exclusions = append(w.exclusions, p)
	}

	components := []string{"*"}
	if cleaned != "." {
		components = strings.Split(cleaned, string(filepath.Separator))
	}

	m.logger.Trace().
		Str("dir", absRoot).
		Strs("components", components).
		Str("mode", opts.Mode.String()).
		Int("exclusions", len(w.exclusions)).
		Msg("Matching pattern")

	if err := w.gather(absRoot, "", components); err != nil {
		return nil, err
	}

	var out []Hit
	w.hits.Range(func(_ string, h Hit) bool {
		switch opts.Mode {
		case ModeFiles:
			if h.IsDir {
				return true
			}
		case ModeDirs:
			if !h.IsDir {
				return true
			}
		}
		out = append(out, h)
		return true
	})

	m.logger.Debug().
		Str("dir", absRoot).
		Str("pattern", pattern).
		Int("hits", len(out)).
		Msg("Pattern matched")
	return out, nil
}

// gather applies components[0] in absDir and recurses with the rest.
func (w *walk) gather(absDir, relDir string, components []string) error {
	comp, rest := components[0], components[1:]

	var (
		cands []candidate
		err   error
	)
	switch {
	case len(rest) == 0:
		cands, err = w.leaf(absDir, relDir, comp)
	case comp == RecursiveToken:
		cands = []candidate{{name: filepath.Base(absDir), rel: relDir, abs: absDir, isDir: true, self: true}}
		err = w.subdirs(absDir, relDir, &cands)
	default:
		cands, err = w.dirs(absDir, relDir, comp)
	}
	if err != nil {
		return err
	}

	for _, c := range cands {
		if !c.self {
			if w.excluded(c) {
				w.m.logger.Trace().Str("entry", c.rel).Msg("Entry excluded")
				continue
			}
			w.hits.Set(c.rel, Hit{Name: c.rel, Path: c.abs, IsDir: c.isDir})
		}
		if c.isDir && len(rest) > 0 {
			if err := w.gather(c.abs, c.rel, rest); err != nil {
				return err
			}
		}
	}
	return nil
}

// leaf returns the entries of absDir, files and directories, matching comp
func (w *walk) leaf(absDir, relDir, comp string) ([]candidate, error) {
	if !HasMeta(comp) {
		c, ok, err := w.lookup(absDir, relDir, comp)
		if err != nil || !ok {
			return nil, err
		}
		return []candidate{c}, nil
	}
	return w.list(absDir, relDir, comp, false)
}

// dirs returns the directories of absDir matching comp
func (w *walk) dirs(absDir, relDir, comp string) ([]candidate, error) {
	if !HasMeta(comp) {
		c, ok, err := w.lookup(absDir, relDir, comp)
		if err != nil || !ok || !c.isDir {
			return nil, err
		}
		return []candidate{c}, nil
	}
	return w.list(absDir, relDir, comp, true)
}

// subdirs appends every directory below absDir in depth-first order.
// Excluded directories are skipped together with their subtrees, and
// symlinked directories are not followed.
func (w *walk) subdirs(absDir, relDir string, out *[]candidate) error {
	entries, err := w.m.fs.ReadDir(absDir)
	if err != nil {
		return w.scanError(err, absDir)
	}
	for _, e := range entries {
		if !e.IsDir() || e.Type()&fs.ModeSymlink != 0 {
			continue
		}
		abs := filepath.Join(absDir, e.Name())
		c := candidate{
			name:  e.Name(),
			rel:   w.relName(relDir, e.Name(), abs),
			abs:   abs,
			isDir: true,
		}
		if w.excluded(c) {
			continue
		}
		*out = append(*out, c)
		if err := w.subdirs(c.abs, c.rel, out); err != nil {
			return err
		}
	}
	return nil
}

// list reads absDir and keeps the entries whose name matches comp
func (w *walk) list(absDir, relDir, comp string, dirsOnly bool) ([]candidate, error) {
	p, err := Compile(comp)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMatchFailed, "invalid glob %q", w.pattern).
			WithDetail("pattern", w.pattern)
	}

	entries, err := w.m.fs.ReadDir(absDir)
	if err != nil {
		return nil, w.scanError(err, absDir)
	}

	var cands []candidate
	for _, e := range entries {
		if !p.Match(e.Name()) {
			continue
		}
		abs := filepath.Join(absDir, e.Name())
		c := candidate{
			name: e.Name(),
			rel:  w.relName(relDir, e.Name(), abs),
			abs:  abs,
		}
		c.isDir, err = w.isDir(c.abs, e)
		if err != nil {
			return nil, err
		}
		if dirsOnly && !c.isDir {
			continue
		}
		cands = append(cands, c)
	}
	return cands, nil
}

// lookup stats a literal component. A missing entry is not an error.
func (w *walk) lookup(absDir, relDir, comp string) (candidate, bool, error) {
	abs := filepath.Join(absDir, comp)
	info, err := w.m.fs.Stat(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return candidate{}, false, nil
		}
		return candidate{}, false, w.scanError(err, abs)
	}
	return candidate{
		name:  filepath.Base(abs),
		rel:   w.relName(relDir, comp, abs),
		abs:   abs,
		isDir: info.IsDir(),
	}, true, nil
}

// isDir follows symlinks; a dangling link counts as a file
func (w *walk) isDir(abs string, e fs.DirEntry) (bool, error) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), nil
	}
	info, err := w.m.fs.Stat(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, w.scanError(err, abs)
	}
	return info.IsDir(), nil
}

// relName names an entry relative to the base directory. Entries reached
// from the root are named with Rel, climbing out of the base with "..".
func (w *walk) relName(relDir, name, abs string) string {
	if !w.fromRoot {
		return filepath.Join(relDir, name)
	}
	rel, err := filepath.Rel(w.base, abs)
	if err != nil {
		return abs
	}
	return rel
}

func (w *walk) excluded(c candidate) bool {
	for _, x := range w.exclusions {
		if x.Match(c.name) || x.Match(c.rel) {
			return true
		}
	}
	return false
}

func (w *walk) scanError(err error, dir string) error {
	return errors.Wrapf(err, errors.ErrMatchFailed, "cannot scan %s", dir).
		WithDetail("dir", dir).
		WithDetail("pattern", w.pattern)
}
