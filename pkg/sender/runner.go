package sender

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Runner runs wormhole send for a resolved Request and relays its output.
type Runner struct {
	Binary string
	GOOS   string
	Stdin  io.Reader
	Stdout io.Writer
	Filter *Filter
	Log    *logrus.Entry

	// CommandContext builds the child process; exec.CommandContext unless a
	// test replaces it.
	CommandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewRunner returns a Runner for binary writing relayed output to stdout.
func NewRunner(binary string, stdout io.Writer, log *logrus.Entry) *Runner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{
		Binary:         binary,
		GOOS:           runtime.GOOS,
		Stdin:          os.Stdin,
		Stdout:         stdout,
		Filter:         NewFilter(),
		Log:            log,
		CommandContext: exec.CommandContext,
	}
}

// Run prints the receive instructions and runs wormhole send. Without
// req.Multi it returns after the first child exits: nil on exit code 0,
// *ExitError otherwise. With req.Multi it starts the same command again after
// every exit, successful or not, until ctx is cancelled. Cancellation always
// yields ErrInterrupted.
func (r *Runner) Run(ctx context.Context, req *Request) error {
	argv := SendCommand(r.Binary, req)

	r.setupConsole(ctx)

	PrintBanner(r.Stdout, r.Binary, req)

	for round := 1; ; round++ {
		log := r.Log.WithField("round", round)
		log.Debugf("running %v in %q", argv, req.Dir)

		code, err := r.runOnce(ctx, argv, req.Dir)
		if ctx.Err() != nil {
			log.Debug("send interrupted")
			return ErrInterrupted
		}
		if err != nil {
			return err
		}

		if !req.Multi {
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		}

		if code != 0 {
			log.Warnf("wormhole send exited with code %d, offering %s again", code, req.Target)
		} else {
			log.Infof("transfer complete, offering %s to the next receiver", req.Target)
		}
	}
}

// setupConsole runs the platform's console setup step, if any. A failure
// only costs non-ASCII file names, so it is logged and the send goes on.
func (r *Runner) setupConsole(ctx context.Context) {
	argv := ConsoleSetupCommand(r.GOOS)
	if argv == nil {
		return
	}
	cmd := r.CommandContext(ctx, argv[0], argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		r.Log.Warnf("console setup %v failed: %v: %s", argv, err, out)
	}
}

// runOnce starts argv with stderr merged into stdout, relays the combined
// stream and returns the child's exit code. A non-nil error means the child
// could not be run at all.
func (r *Runner) runOnce(ctx context.Context, argv []string, dir string) (int, error) {
	cmd := r.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	// the wrapped tool may prompt the operator
	cmd.Stdin = r.Stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, xerrors.Errorf("failed to create output pipe: %w", err)
	}
	// same *os.File: the child writes both streams to one pipe
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return 0, xerrors.Errorf("failed to start %s: %w", argv[0], err)
	}

	if err := r.Filter.Relay(stdout, r.Stdout); err != nil {
		r.Log.Warnf("output relay stopped: %v", err)
		// drain so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// terminated by a signal
				code = 1
			}
			return code, nil
		}
		return 0, xerrors.Errorf("failed to wait for %s: %w", argv[0], err)
	}
	return 0, nil
}

// WrappedHelp returns the help text of "<binary> send --help".
func (r *Runner) WrappedHelp(ctx context.Context) (string, error) {
	cmd := r.CommandContext(ctx, r.Binary, "send", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", xerrors.Errorf("failed to run %s send --help: %w", r.Binary, err)
	}
	return string(out), nil
}
