package fmlang

import (
	"path/filepath"

	"github.com/arthur-debert/filemap/pkg/glob"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/output"
)

func (ip *Interpreter) addMatches(op, arg string, mode glob.Mode, recursive bool) error {
	done := logging.LogOperationStart(ip.logger, op+" "+arg)
	defer done()

	pairs, err := ip.collect(arg, mode, recursive)
	if err != nil {
		return err
	}
	return ip.merge(pairs)
}

// doAdd grabs files, not directories, matching arg in the current directory
func (ip *Interpreter) doAdd(arg string) error {
	return ip.addMatches("add", arg, glob.ModeFiles, false)
}

// doDirAdd adds directories matching arg without their contents
func (ip *Interpreter) doDirAdd(arg string) error {
	return ip.addMatches("diradd", arg, glob.ModeDirs, false)
}

// doRecurse grabs files matching arg at any depth
func (ip *Interpreter) doRecurse(arg string) error {
	return ip.addMatches("recurse", arg, glob.ModeFiles, true)
}

// doDirRecurse adds directories matching arg at any depth
func (ip *Interpreter) doDirRecurse(arg string) error {
	return ip.addMatches("dirrecurse", arg, glob.ModeDirs, true)
}

// doChdir moves the cursor. The cursor is left alone when the target is
// not an existing directory.
func (ip *Interpreter) doChdir(arg string) error {
	if arg == "" {
		return newParseError("chdir", "chdir requires a directory argument").
			WithDetail("command", "chdir")
	}

	target := arg
	if !filepath.IsAbs(target) {
		target = filepath.Join(ip.cwd, target)
	}
	target = filepath.Clean(target)

	if err := ip.checkDir(target); err != nil {
		return err
	}

	ip.logger.Debug().Str("from", ip.cwd).Str("to", target).Msg("Changed directory")
	ip.cwd = target
	return nil
}

// doExclude stops matching entries that match arg
func (ip *Interpreter) doExclude(arg string) error {
	if arg == "" {
		return newParseError("exclude", "exclude requires a glob argument").
			WithDetail("command", "exclude")
	}
	ip.exclusions = append(ip.exclusions, arg)
	return nil
}

// doUnexclude removes the first exclusion equal to arg, if any
func (ip *Interpreter) doUnexclude(arg string) error {
	if arg == "" {
		return newParseError("unexclude", "unexclude requires a glob argument").
			WithDetail("command", "unexclude")
	}
	for i, x := range ip.exclusions {
		if x == arg {
			ip.exclusions = append(ip.exclusions[:i:i], ip.exclusions[i+1:]...)
			return nil
		}
	}
	return nil
}

// doShow prints the mapping; its argument is ignored
func (ip *Interpreter) doShow(string) error {
	return output.NewText(ip.out, ip.showWidth).Render(ip.Manifest())
}
