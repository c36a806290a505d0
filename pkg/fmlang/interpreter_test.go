package fmlang_test

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/filesystem"
	"github.com/arthur-debert/filemap/pkg/fmlang"
	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/filemap/pkg/testutil"
	"github.com/arthur-debert/filemap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, entries ...string) types.FS {
	return testutil.MemTree(t, entries...)
}

func newInterpreter(t *testing.T, fs types.FS, opts fmlang.Options) *fmlang.Interpreter {
	t.Helper()
	opts.FS = fs
	if opts.Dir == "" {
		opts.Dir = "/"
	}
	ip, err := fmlang.New(opts)
	require.NoError(t, err)
	return ip
}

func run(t *testing.T, ip *fmlang.Interpreter, lines ...string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, ip.Exec(l), l)
	}
}

func pairs(m *manifest.Manifest) [][2]string {
	var out [][2]string
	for _, e := range m.Entries() {
		out = append(out, [2]string{e.Destination, e.Source})
	}
	return out
}

func pkgTree(t *testing.T) types.FS {
	return newTree(t,
		"/pkg/a.txt",
		"/pkg/b.txt",
		"/pkg/debug.log",
		"/pkg/sub/c.txt",
		"/pkg/sub/deep/d.txt",
		"/pkg/empty/",
		"/other/a.txt",
		"/other/z.txt",
	)
}

func TestNew(t *testing.T) {
	fs := pkgTree(t)

	ip := newInterpreter(t, fs, fmlang.Options{Dir: "/pkg", Exclusions: []string{"*.log"}})
	assert.Equal(t, "/pkg", ip.Cwd())
	assert.Equal(t, []string{"*.log"}, ip.Exclusions())
	assert.False(t, ip.ReplaceDuplicates())
	assert.Equal(t, 0, ip.Manifest().Len())
	assert.Equal(t, []string{"add", "cd", "chdir", "diradd", "dirrecurse", "exclude", "recurse", "show", "unexclude"}, ip.Commands())

	_, err := fmlang.New(fmlang.Options{FS: fs, Dir: "/missing"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))

	_, err = fmlang.New(fmlang.Options{FS: fs, Dir: "/pkg/a.txt"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))
}

func TestExec_EmptyAndComments(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "", "   ", "# nothing here", "\t# indented")
	assert.Equal(t, 0, ip.Manifest().Len())
	assert.Equal(t, "/pkg", ip.Cwd())
}

func TestExec_UnknownCommand(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	err := ip.Exec("frobnicate *")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailed))
	assert.Equal(t, "frobnicate", errors.GetErrorDetails(err)["command"])
}

func TestExec_UnterminatedQuote(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	err := ip.Exec("add 'a.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailed))
	assert.Equal(t, 0, ip.Manifest().Len())
}

func TestAdd(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	run(t, ip, "add *")
	assert.Equal(t, [][2]string{
		{"a.txt", "/pkg/a.txt"},
		{"b.txt", "/pkg/b.txt"},
		{"debug.log", "/pkg/debug.log"},
	}, pairs(ip.Manifest()), "add takes files only and does not descend")
}

func TestAdd_NoArgumentMeansEverything(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add")
	assert.Equal(t, []string{"a.txt", "b.txt", "debug.log"}, ip.Manifest().Destinations())
}

func TestAdd_NoMatchIsNotAnError(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add *.nothing", "add missing.txt", "add sub")
	assert.Equal(t, 0, ip.Manifest().Len())
}

func TestAdd_Subpath(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add sub/*.txt")
	assert.Equal(t, [][2]string{
		{filepath.Join("sub", "c.txt"), "/pkg/sub/c.txt"},
	}, pairs(ip.Manifest()))
}

func TestDirAdd(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "diradd *")

	sep := string(filepath.Separator)
	assert.Equal(t, [][2]string{
		{"empty" + sep, "/pkg/empty"},
		{"sub" + sep, "/pkg/sub"},
	}, pairs(ip.Manifest()))
	for _, e := range ip.Manifest().Entries() {
		assert.True(t, e.Dir)
		assert.True(t, strings.HasSuffix(e.Destination, sep))
	}
}

func TestRecurse(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "recurse *.txt")
	assert.Equal(t, [][2]string{
		{"a.txt", "/pkg/a.txt"},
		{"b.txt", "/pkg/b.txt"},
		{filepath.Join("sub", "c.txt"), "/pkg/sub/c.txt"},
		{filepath.Join("sub", "deep", "d.txt"), "/pkg/sub/deep/d.txt"},
	}, pairs(ip.Manifest()), "depth zero is included and the walk is pre-order")
}

func TestDirRecurse(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "dirrecurse")

	sep := string(filepath.Separator)
	assert.Equal(t, []string{
		"empty" + sep,
		"sub" + sep,
		filepath.Join("sub", "deep") + sep,
	}, ip.Manifest().Destinations(), "the current directory itself is not added")
}

func TestReAddIsIdempotent(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add *.txt", "add b.txt")
	first := pairs(ip.Manifest())

	run(t, ip, "add *.txt", "recurse a.txt")
	assert.Equal(t, first, pairs(ip.Manifest()))
	assert.Equal(t, []string{"a.txt", "b.txt"}, ip.Manifest().Destinations())
}

func TestDuplicates_Rejected(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add *.txt", "chdir /other")
	before := pairs(ip.Manifest())

	err := ip.Exec("add *")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateFiles))

	var dup *fmlang.DuplicateFilesError
	require.True(t, stderrors.As(err, &dup))
	assert.Equal(t, []fmlang.Conflict{{Key: "a.txt", New: "/other/a.txt", Old: "/pkg/a.txt"}}, dup.Conflicts)

	// Nothing from the rejected command is kept, not even z.txt
	assert.Equal(t, before, pairs(ip.Manifest()))
}

func TestDuplicates_ReportsEveryConflict(t *testing.T) {
	fs := newTree(t, "/one/a", "/one/b", "/two/a", "/two/b", "/two/c")
	ip := newInterpreter(t, fs, fmlang.Options{Dir: "/one"})
	run(t, ip, "add *", "cd /two")

	err := ip.Exec("add *")
	var dup *fmlang.DuplicateFilesError
	require.True(t, stderrors.As(err, &dup))
	require.Len(t, dup.Conflicts, 2)
	assert.Equal(t, "a", dup.Conflicts[0].Key)
	assert.Equal(t, "b", dup.Conflicts[1].Key)
	assert.Contains(t, dup.Error(), "2 destinations")
	assert.Equal(t, 2, ip.Manifest().Len())
}

func TestDuplicates_ReplaceMovesToEnd(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg", ReplaceDuplicates: true})
	run(t, ip, "add *.txt", "chdir /other", "add a.txt")

	assert.Equal(t, [][2]string{
		{"b.txt", "/pkg/b.txt"},
		{"a.txt", "/other/a.txt"},
	}, pairs(ip.Manifest()))
}

func TestChdir(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	run(t, ip, "chdir sub")
	assert.Equal(t, "/pkg/sub", ip.Cwd())

	run(t, ip, "cd deep/..")
	assert.Equal(t, "/pkg/sub", ip.Cwd())

	run(t, ip, "cd ../../other")
	assert.Equal(t, "/other", ip.Cwd())

	run(t, ip, "chdir /pkg/sub/deep")
	assert.Equal(t, "/pkg/sub/deep", ip.Cwd())
}

func TestChdir_FailureKeepsCursor(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	for _, target := range []string{"nope", "a.txt", "/missing/dir"} {
		err := ip.Exec("chdir " + target)
		require.Error(t, err, target)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))

		var inv *fmlang.InvalidDirectoryError
		require.True(t, stderrors.As(err, &inv))
		assert.Contains(t, inv.Dir, filepath.Base(target))
		assert.Equal(t, "/pkg", ip.Cwd())
	}
}

func TestMissingArguments(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	for _, line := range []string{"chdir", "cd", "exclude", "unexclude", "exclude ''"} {
		err := ip.Exec(line)
		require.Error(t, err, line)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailed), line)
	}
	assert.Equal(t, "/pkg", ip.Cwd())
	assert.Empty(t, ip.Exclusions())
}

func TestExclude(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "exclude *.log", "add *")
	assert.Equal(t, []string{"a.txt", "b.txt"}, ip.Manifest().Destinations())
}

func TestExclude_BlocksDescent(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "exclude sub", "recurse", "dirrecurse")

	for _, d := range ip.Manifest().Destinations() {
		assert.False(t, strings.HasPrefix(d, "sub"), d)
	}
	assert.Contains(t, ip.Manifest().Destinations(), "a.txt")
}

func TestExclude_RelativePath(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "exclude sub/deep", "recurse *.txt")
	assert.Equal(t, []string{"a.txt", "b.txt", filepath.Join("sub", "c.txt")}, ip.Manifest().Destinations())
}

func TestExclude_DoesNotRemoveExistingEntries(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add *", "exclude *.log", "add *")
	assert.Equal(t, []string{"a.txt", "b.txt", "debug.log"}, ip.Manifest().Destinations())
}

func TestUnexclude(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	run(t, ip, "exclude *.log", "exclude *.tmp", "exclude *.log")
	run(t, ip, "unexclude *.log")
	assert.Equal(t, []string{"*.tmp", "*.log"}, ip.Exclusions(), "only the first occurrence is removed")

	run(t, ip, "unexclude *.never")
	assert.Equal(t, []string{"*.tmp", "*.log"}, ip.Exclusions())

	run(t, ip, "unexclude *.log", "add *")
	assert.Contains(t, ip.Manifest().Destinations(), "debug.log")
}

func TestExclusionsAccessorIsACopy(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg", Exclusions: []string{"*.log"}})
	ex := ip.Exclusions()
	ex[0] = "changed"
	assert.Equal(t, []string{"*.log"}, ip.Exclusions())
}

func TestManifestIsASnapshot(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "add a.txt")
	snap := ip.Manifest()
	run(t, ip, "add b.txt")
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, ip.Manifest().Len())
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg", Out: &out})
	run(t, ip, "add *.txt", "show ignored argument")

	want := "" +
		"                   a.txt: /pkg/a.txt\n" +
		"                   b.txt: /pkg/b.txt\n"
	assert.Equal(t, want, out.String())

	out.Reset()
	ip = newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg", Out: &out, ShowWidth: 6})
	run(t, ip, "add a.txt", "show")
	assert.Equal(t, " a.txt: /pkg/a.txt\n", out.String())
}

func TestBadPattern(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	err := ip.Exec("add [abc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMatchFailed))
	assert.True(t, errors.IsErrorCode(err, errors.ErrBadPattern))

	run(t, ip, "exclude [z-a]")
	err = ip.Exec("add *")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMatchFailed))
	assert.Equal(t, 0, ip.Manifest().Len())
}

func TestRun_EndToEnd(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{})
	err := ip.RunScript("chdir /pkg\nexclude *.log\nadd *\ndiradd sub\n")
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"a.txt", "/pkg/a.txt"},
		{"b.txt", "/pkg/b.txt"},
		{"sub" + string(filepath.Separator), "/pkg/sub"},
	}, pairs(ip.Manifest()))
}

func TestRun_StopsAtFirstError(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{})
	err := ip.Run(strings.NewReader("chdir /pkg\nadd a.txt\nchdir nowhere\nadd b.txt\n"))
	require.Error(t, err)

	assert.True(t, strings.HasPrefix(err.Error(), "line 3: "))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["lineNumber"])
	assert.Equal(t, []string{"a.txt"}, ip.Manifest().Destinations())
	assert.Equal(t, "/pkg", ip.Cwd())
}

func TestRun_CallerCanContinue(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	var failed []string
	for _, line := range []string{"add a.txt", "bogus", "cd nowhere", "add b.txt"} {
		if err := ip.Exec(line); err != nil {
			failed = append(failed, line)
		}
	}
	assert.Equal(t, []string{"bogus", "cd nowhere"}, failed)
	assert.Equal(t, []string{"a.txt", "b.txt"}, ip.Manifest().Destinations())
}

func TestRunWith_ContinuesPastFailures(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	var failed []int
	var lines []string
	err := ip.RunWith(strings.NewReader("add a.txt\nbogus\ncd nowhere\nadd b.txt\n"),
		func(lineNo int, line string, err error) error {
			failed = append(failed, lineNo)
			lines = append(lines, line)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, failed)
	assert.Equal(t, []string{"bogus", "cd nowhere"}, lines)
	assert.Equal(t, []string{"a.txt", "b.txt"}, ip.Manifest().Destinations())
}

func TestRunWith_HandlerStopsTheRun(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})

	stop := stderrors.New("stop")
	err := ip.RunWith(strings.NewReader("add a.txt\nbogus\nadd b.txt\n"),
		func(int, string, error) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a.txt"}, ip.Manifest().Destinations())
}

func TestDirRecurse_WalkedDirectoriesAreAdded(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg"})
	run(t, ip, "dirrecurse nomatch")

	sep := string(filepath.Separator)
	assert.Equal(t, []string{
		"empty" + sep,
		"sub" + sep,
		filepath.Join("sub", "deep") + sep,
	}, ip.Manifest().Destinations())
}

func TestAdd_AbsolutePatternKeysAreRelativeToCursor(t *testing.T) {
	ip := newInterpreter(t, pkgTree(t), fmlang.Options{Dir: "/pkg/sub"})
	run(t, ip, "add /other/z.txt", "add /pkg/sub/c.txt")

	assert.Equal(t, [][2]string{
		{filepath.Join("..", "..", "other", "z.txt"), "/other/z.txt"},
		{"c.txt", "/pkg/sub/c.txt"},
	}, pairs(ip.Manifest()))
}

func TestNew_RelativeDirUsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	_, err = fmlang.New(fmlang.Options{FS: newTree(t, "/a.txt")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))
	var inv *fmlang.InvalidDirectoryError
	require.True(t, stderrors.As(err, &inv))
	assert.Equal(t, wd, inv.Dir, "the cursor that is checked is the one that is matched")
}

func TestNew_RelativeDirOnDisk(t *testing.T) {
	root := testutil.DiskTree(t, "pkg/a.txt", "pkg/sub/b.txt")
	chdir(t, root)
	wd, err := os.Getwd()
	require.NoError(t, err)

	ip := newInterpreter(t, filesystem.NewOS(), fmlang.Options{Dir: "pkg"})
	assert.Equal(t, filepath.Join(wd, "pkg"), ip.Cwd())

	run(t, ip, "add *", "cd sub", "add *")
	assert.Equal(t, [][2]string{
		{"a.txt", filepath.Join(wd, "pkg", "a.txt")},
		{"b.txt", filepath.Join(wd, "pkg", "sub", "b.txt")},
	}, pairs(ip.Manifest()))
}

func TestAdd_NamesThatAreNotUTF8(t *testing.T) {
	root := testutil.DiskTree(t, "pkg/caf\xe9.txt", "pkg/caf\xe8.txt", "pkg/plain.txt")
	dir := filepath.Join(root, "pkg")

	t.Run("literal", func(t *testing.T) {
		ip := newInterpreter(t, filesystem.NewOS(), fmlang.Options{Dir: dir})
		run(t, ip, "add caf\xe9.txt")
		assert.Equal(t, [][2]string{
			{"caf\xe9.txt", filepath.Join(dir, "caf\xe9.txt")},
		}, pairs(ip.Manifest()))
	})

	t.Run("quoted_with_wildcard", func(t *testing.T) {
		ip := newInterpreter(t, filesystem.NewOS(), fmlang.Options{Dir: dir})
		run(t, ip, "add 'caf\xe9*'")
		assert.Equal(t, []string{"caf\xe9.txt"}, ip.Manifest().Destinations())
	})

	t.Run("excluded", func(t *testing.T) {
		ip := newInterpreter(t, filesystem.NewOS(), fmlang.Options{Dir: dir})
		run(t, ip, "exclude caf\xe8*", "add caf*")
		assert.Equal(t, []string{"caf\xe9.txt"}, ip.Manifest().Destinations())
	})
}

// chdir moves the process into dir for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestRun_PackagingScript(t *testing.T) {
	fs := newTree(t,
		"/stage/'",
		"/stage/ x y z",
		"/stage/LICENSE.inno",
		"/stage/LICENSE.process",
		"/stage/notes.txt",
		"/stage/program/run.exe",
		"/stage/fmlang.py",
		"/stage/fmlang.pyc",
		"/stage/path.py",
		"/stage/test/__init__.py",
		"/stage/test/helper.pyc",
		"/stage/test/test_fmlang.py",
		"/stage/CVS/Entries",
		"/stage/CVS/Root",
		"/stage/dir/a",
		"/stage/dir/x",
		"/stage/dir/dir2/z",
	)
	script := `exclude *.pyc
add "'"
add ' x y z' # spaces!
exclude  *.pyo
chdir "/stage"
add LICENSE.* # licenses
# comment
add *.txt
  diradd program
recurse *.py*
chdir test
recurse *
chdir ../CVS
recurse # does this parse ok?
chdir ../dir
exclude *dir2*
recurse
unexclude *dir2*
exclude [xy]
recurse
# show
`
	ip := newInterpreter(t, fs, fmlang.Options{Dir: "/stage", ReplaceDuplicates: true})
	require.NoError(t, ip.RunScript(script))

	sep := string(filepath.Separator)
	assert.Equal(t, []string{
		"'",
		" x y z",
		"LICENSE.inno",
		"LICENSE.process",
		"notes.txt",
		"program" + sep,
		"fmlang.py",
		"path.py",
		filepath.Join("test", "__init__.py"),
		filepath.Join("test", "test_fmlang.py"),
		"__init__.py",
		"test_fmlang.py",
		"Entries",
		"Root",
		"a",
		"x",
		filepath.Join("dir2", "z"),
	}, ip.Manifest().Destinations())
	assert.Equal(t, "/stage/dir", ip.Cwd())
	assert.Equal(t, []string{"*.pyc", "*.pyo", "[xy]"}, ip.Exclusions())
}
