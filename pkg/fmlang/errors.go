package fmlang

import (
	"fmt"

	"github.com/arthur-debert/filemap/pkg/errors"
)

// Conflict describes one destination that a command tried to repoint
type Conflict struct {
	Key string
	New string
	Old string
}

// DuplicateFilesError lists every conflicting destination of a rejected command
type DuplicateFilesError struct {
	Conflicts []Conflict
}

func (e *DuplicateFilesError) Error() string {
	if len(e.Conflicts) == 1 {
		c := e.Conflicts[0]
		return fmt.Sprintf("%s: %s would replace %s", c.Key, c.New, c.Old)
	}
	return fmt.Sprintf("%d destinations would change source", len(e.Conflicts))
}

// InvalidDirectoryError reports a chdir target that is not a directory
type InvalidDirectoryError struct {
	Dir string
}

func (e *InvalidDirectoryError) Error() string {
	return fmt.Sprintf("tried to change into directory %s which does not exist", e.Dir)
}

func newDuplicateFilesError(conflicts []Conflict) error {
	return errors.Wrap(&DuplicateFilesError{Conflicts: conflicts}, errors.ErrDuplicateFiles,
		"attempt to add different files at the same destination").
		WithDetail("conflicts", conflicts)
}

func newInvalidDirectoryError(dir string, cause error) error {
	err := errors.Wrap(&InvalidDirectoryError{Dir: dir}, errors.ErrInvalidDirectory,
		"invalid directory").
		WithDetail("directory", dir)
	if cause != nil {
		err.WithDetail("cause", cause.Error())
	}
	return err
}

func newParseError(line, format string, args ...interface{}) *errors.Error {
	return errors.Newf(errors.ErrParseFailed, format, args...).
		WithDetail("line", line)
}
