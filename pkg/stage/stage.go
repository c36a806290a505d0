package stage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// DefaultDirMode is used for created directories when Options.DirMode is zero
const DefaultDirMode fs.FileMode = 0755

// StepKind names what a step does
type StepKind string

const (
	StepMkdir StepKind = "mkdir"
	StepCopy  StepKind = "copy"
)

// Step is one planned filesystem change
type Step struct {
	Kind   StepKind
	Source string
	Target string
}

func (s Step) String() string {
	if s.Kind == StepCopy {
		return fmt.Sprintf("copy %s -> %s", s.Source, s.Target)
	}
	return fmt.Sprintf("mkdir %s", s.Target)
}

// Options configures a Stager
type Options struct {
	DryRun  bool
	DirMode fs.FileMode
}

// Stager turns manifests into synthfs pipelines
type Stager struct {
	logger     zerolog.Logger
	dryRun     bool
	dirMode    fs.FileMode
	filesystem synthfs.FileSystem
}

// New creates a stager working on the OS filesystem
func New(opts Options) *Stager {
	if opts.DirMode == 0 {
		opts.DirMode = DefaultDirMode
	}
	return &Stager{
		logger:     logging.GetLogger("stage"),
		dryRun:     opts.DryRun,
		dirMode:    opts.DirMode,
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// Plan computes the steps that stage m into outDir without touching the
// disk beyond reading which directories already exist. Destinations that
// would land outside outDir fail the whole plan.
func (s *Stager) Plan(m *manifest.Manifest, outDir string) ([]Step, error) {
	if outDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output directory is required")
	}
	root, err := filepath.Abs(outDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStageFailed, "cannot resolve %s", outDir)
	}

	p := &planner{root: root, seen: map[string]bool{}}
	for _, e := range m.Entries() {
		target, err := p.target(e.Destination)
		if err != nil {
			return nil, err
		}
		if e.Dir {
			if err := p.mkdirAll(target); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.mkdirAll(filepath.Dir(target)); err != nil {
			return nil, err
		}
		p.steps = append(p.steps, Step{Kind: StepCopy, Source: e.Source, Target: target})
	}
	return p.steps, nil
}

// Stage plans and executes the staging of m into outDir and returns the
// steps it ran, or would run on a dry run.
func (s *Stager) Stage(ctx context.Context, m *manifest.Manifest, outDir string) ([]Step, error) {
	steps, err := s.Plan(m, outDir)
	if err != nil {
		return nil, err
	}

	if s.dryRun {
		s.logger.Info().Int("steps", len(steps)).Msg("Dry run mode - steps would be executed:")
		for _, st := range steps {
			s.logger.Info().Str("kind", string(st.Kind)).Str("source", st.Source).Str("target", st.Target).Msg("Would run")
		}
		return steps, nil
	}

	if len(steps) == 0 {
		s.logger.Info().Msg("No steps to execute")
		return steps, nil
	}

	pipeline := synthfs.NewMemPipeline()
	for i, st := range steps {
		op, err := s.convert(i, st)
		if err != nil {
			return nil, err
		}
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrapf(err, errors.ErrStageFailed, "failed to add %s to pipeline", st)
		}
	}

	s.logger.Info().Int("operationCount", len(steps)).Str("outDir", outDir).Msg("Executing staging pipeline")
	result := synthfs.NewExecutor().Run(ctx, pipeline, s.filesystem)
	if result.GetError() != nil {
		s.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return nil, errors.Wrap(result.GetError(), errors.ErrStageFailed, "failed to stage manifest").
			WithDetail("outDir", outDir)
	}
	s.logger.Info().Msg("All steps executed successfully")
	return steps, nil
}

// convert builds the synthfs operation for a step. synthfs paths are
// relative to the filesystem root.
func (s *Stager) convert(i int, st Step) (synthfs.Operation, error) {
	relTarget, err := filepath.Rel("/", st.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStageFailed, "failed to convert path: %s", st.Target)
	}

	switch st.Kind {
	case StepMkdir:
		op := operations.NewCreateDirectoryOperation(core.OperationID(fmt.Sprintf("mkdir-%d-%s", i, st.Target)), relTarget)
		op.SetItem(&directoryItem{path: relTarget, mode: s.dirMode})
		return synthfs.NewOperationsPackageAdapter(op), nil
	case StepCopy:
		relSource, err := filepath.Rel("/", st.Source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrStageFailed, "failed to convert source path: %s", st.Source)
		}
		op := operations.NewCopyOperation(core.OperationID(fmt.Sprintf("copy-%d-%s", i, st.Target)), relTarget)
		op.SetPaths(relSource, relTarget)
		return synthfs.NewOperationsPackageAdapter(op), nil
	default:
		return nil, errors.Newf(errors.ErrStageFailed, "unsupported step kind: %s", st.Kind)
	}
}

type planner struct {
	root  string
	seen  map[string]bool
	steps []Step
}

// target joins dest onto the root and rejects anything that escapes it
func (p *planner) target(dest string) (string, error) {
	if filepath.IsAbs(dest) {
		return "", escapeError(dest, p.root)
	}
	target := filepath.Join(p.root, dest)
	rel, err := filepath.Rel(p.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", escapeError(dest, p.root)
	}
	return target, nil
}

// mkdirAll adds mkdir steps for dir and its missing parents up to the root
func (p *planner) mkdirAll(dir string) error {
	var chain []string
	for d := dir; ; d = filepath.Dir(d) {
		chain = append(chain, d)
		if d == p.root || d == filepath.Dir(d) {
			break
		}
	}

	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		if p.seen[d] {
			continue
		}
		p.seen[d] = true

		info, err := os.Stat(d)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return errors.Newf(errors.ErrStageFailed, "%s exists and is not a directory", d).
				WithDetail("path", d)
		case !os.IsNotExist(err):
			return errors.Wrapf(err, errors.ErrStageFailed, "cannot inspect %s", d)
		}
		p.steps = append(p.steps, Step{Kind: StepMkdir, Target: d})
	}
	return nil
}

func escapeError(dest, root string) error {
	return errors.Newf(errors.ErrStageFailed, "destination %s escapes %s", dest, root).
		WithDetail("destination", dest).
		WithDetail("outDir", root)
}

// directoryItem carries the mode of a create-directory operation
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
