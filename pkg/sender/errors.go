package sender

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the context is cancelled while a send is
// running, normally because the operator pressed Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// UsageError reports invalid or conflicting command-line input.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// PathNotFoundError reports a target that does not exist relative to the
// working directory.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("File or directory %s does not exist.", e.Path)
}

// UnsupportedOptionError reports a pass-through flag that cannot be combined
// with the wrapper's code handling.
type UnsupportedOptionError struct {
	Option string
	Hint   string
}

func (e *UnsupportedOptionError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("The %s option is not supported.", e.Option)
	}
	return fmt.Sprintf("The %s option is not supported. %s", e.Option, e.Hint)
}

// ExitError carries a non-zero exit code of the external tool.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("wormhole send exited with code %d", e.Code)
}

// ExitCode maps an error returned by this package to the wrapper's process
// exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
