package fmlang

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/filesystem"
	"github.com/arthur-debert/filemap/pkg/glob"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/filemap/pkg/orderedmap"
	"github.com/arthur-debert/filemap/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultShowWidth is the key column width used by the show command
const DefaultShowWidth = 24

// Options configures a new Interpreter
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS

	// Dir is the initial current directory, "." when empty
	Dir string

	// ReplaceDuplicates lets a command repoint an existing destination
	// instead of failing
	ReplaceDuplicates bool

	// Exclusions are active before the first line runs
	Exclusions []string

	// Out receives the output of show, stdout when nil
	Out io.Writer

	// ShowWidth is the key column width of show
	ShowWidth int
}

type commandFunc func(arg string) error

// Interpreter runs file-mapper scripts. Each instance owns its cursor,
// exclusion list and mapping; it is not safe for concurrent use.
type Interpreter struct {
	fs                types.FS
	matcher           *glob.Matcher
	cwd               string
	exclusions        []string
	data              *orderedmap.Map[string, string]
	replaceDuplicates bool
	out               io.Writer
	showWidth         int
	commands          map[string]commandFunc
	logger            zerolog.Logger
}

// New creates an interpreter. A relative opts.Dir is resolved against the
// process working directory. It fails with an Invalid Directory error when
// the result is not an existing directory of opts.FS.
func New(opts Options) (*Interpreter, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ShowWidth <= 0 {
		opts.ShowWidth = DefaultShowWidth
	}

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, newInvalidDirectoryError(opts.Dir, err)
	}

	ip := &Interpreter{
		fs:                opts.FS,
		matcher:           glob.NewMatcher(opts.FS),
		cwd:               dir,
		exclusions:        append([]string(nil), opts.Exclusions...),
		data:              orderedmap.New[string, string](),
		replaceDuplicates: opts.ReplaceDuplicates,
		out:               opts.Out,
		showWidth:         opts.ShowWidth,
		logger:            logging.GetLogger("fmlang.interpreter"),
	}
	ip.commands = map[string]commandFunc{
		"add":        ip.doAdd,
		"diradd":     ip.doDirAdd,
		"recurse":    ip.doRecurse,
		"dirrecurse": ip.doDirRecurse,
		"chdir":      ip.doChdir,
		"cd":         ip.doChdir,
		"exclude":    ip.doExclude,
		"unexclude":  ip.doUnexclude,
		"show":       ip.doShow,
	}

	if err := ip.checkDir(ip.cwd); err != nil {
		return nil, err
	}
	return ip, nil
}

// Exec runs a single line. Blank and comment lines do nothing; an unknown
// command word is a Parse Failure.
func (ip *Interpreter) Exec(line string) error {
	l, err := ParseLine(line)
	if err != nil {
		return err
	}
	if l.Empty() {
		return nil
	}

	fn, ok := ip.commands[l.Command]
	if !ok {
		return newParseError(line, "unknown command %q", l.Command).
			WithDetail("command", l.Command)
	}

	logging.LogCommand(ip.logger, l.Command, l.Arg)
	return fn(l.Arg)
}

// LineHandler receives each failing line of a run. Returning nil continues
// with the next line; a non-nil error stops the run and is returned.
type LineHandler func(lineNo int, line string, err error) error

// Run executes r line by line and stops at the first failing line. The
// returned error names the 1-based line number and keeps the original code.
func (ip *Interpreter) Run(r io.Reader) error {
	return ip.RunWith(r, stopAtLine)
}

// RunWith executes r line by line and hands every failure to onError
func (ip *Interpreter) RunWith(r io.Reader, onError LineHandler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if err := ip.Exec(line); err != nil {
			if err := onError(lineNo, line, err); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read script")
	}
	return nil
}

func stopAtLine(lineNo int, _ string, err error) error {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		coded.WithDetail("lineNumber", lineNo)
	}
	return fmt.Errorf("line %d: %w", lineNo, err)
}

// RunScript executes a whole script held in memory
func (ip *Interpreter) RunScript(script string) error {
	return ip.Run(strings.NewReader(script))
}

// Cwd returns the current directory
func (ip *Interpreter) Cwd() string {
	return ip.cwd
}

// Exclusions returns a copy of the active exclusion patterns
func (ip *Interpreter) Exclusions() []string {
	return append([]string(nil), ip.exclusions...)
}

// ReplaceDuplicates reports the duplicate policy fixed at creation
func (ip *Interpreter) ReplaceDuplicates() bool {
	return ip.replaceDuplicates
}

// Manifest snapshots the current mapping
func (ip *Interpreter) Manifest() *manifest.Manifest {
	return manifest.FromMap(ip.data)
}

// Commands returns the recognised command words, sorted
func (ip *Interpreter) Commands() []string {
	names := make([]string, 0, len(ip.commands))
	for name := range ip.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// collect matches arg under the cursor and turns hits into candidate pairs
func (ip *Interpreter) collect(arg string, mode glob.Mode, recursive bool) ([]orderedmap.Pair[string, string], error) {
	hits, err := ip.matcher.Match(ip.cwd, arg, glob.Options{
		Mode:       mode,
		Recursive:  recursive,
		Exclusions: ip.exclusions,
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]orderedmap.Pair[string, string], 0, len(hits))
	for _, h := range hits {
		key := h.Name
		if mode == glob.ModeDirs {
			key += string(filepath.Separator)
		}
		pairs = append(pairs, orderedmap.Pair[string, string]{Key: key, Value: h.Path})
	}
	return pairs, nil
}

// merge applies candidates all-or-nothing under the duplicate policy
func (ip *Interpreter) merge(pairs []orderedmap.Pair[string, string]) error {
	if !ip.replaceDuplicates {
		var conflicts []Conflict
		for _, p := range pairs {
			if old, ok := ip.data.Get(p.Key); ok && old != p.Value {
				conflicts = append(conflicts, Conflict{Key: p.Key, New: p.Value, Old: old})
			}
		}
		if len(conflicts) > 0 {
			ip.logger.Debug().Int("conflicts", len(conflicts)).Msg("Rejecting command with duplicate destinations")
			return newDuplicateFilesError(conflicts)
		}
	}

	changed := 0
	for _, p := range pairs {
		if ip.data.Set(p.Key, p.Value) {
			changed++
		}
	}
	ip.logger.Debug().
		Int("candidates", len(pairs)).
		Int("changed", changed).
		Int("total", ip.data.Len()).
		Msg("Merged matches")
	return nil
}

// checkDir verifies that dir exists and is a directory
func (ip *Interpreter) checkDir(dir string) error {
	info, err := ip.fs.Stat(dir)
	if err != nil {
		return newInvalidDirectoryError(dir, err)
	}
	if !info.IsDir() {
		return newInvalidDirectoryError(dir, nil)
	}
	return nil
}
