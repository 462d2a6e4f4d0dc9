package commander

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

const (
	// ExitCannotStart is reported when the executable exists but could not be started.
	ExitCannotStart = 126
	// ExitNotFound is reported when the executable cannot be located.
	ExitNotFound = 127
)

var ErrNotFound = errors.New("executable not found")

// StartError means the process never ran. ExitCode is ExitNotFound or
// ExitCannotStart.
type StartError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed start %s: %s", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

type Commander struct {
	command  string
	args     []string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	exitCode int
}

func New(command string, args ...string) Commander {
	return Commander{
		command: command,
		args:    args,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

func (c *Commander) SetArgs(args []string) {
	c.args = args
}

func (c *Commander) Args() []string {
	return c.args
}

func (c *Commander) Command() string {
	return c.command
}

// SetStdio replaces the inherited process streams. A nil argument keeps the
// current stream.
func (c *Commander) SetStdio(stdin io.Reader, stdout, stderr io.Writer) {
	if stdin != nil {
		c.stdin = stdin
	}
	if stdout != nil {
		c.stdout = stdout
	}
	if stderr != nil {
		c.stderr = stderr
	}
}

// ExitCode is the status of the last Run. It is only meaningful after the
// channel returned by Run has delivered its value.
func (c *Commander) ExitCode() int {
	return c.exitCode
}

// Run starts the command and reports completion on the returned channel. A
// non-nil value is always a *StartError: a process that ran and exited with a
// non-zero status delivers nil and leaves its status in ExitCode.
func (c *Commander) Run(ctx context.Context) chan error {
	done := make(chan error, 1)
	if c.command == "" {
		c.exitCode = ExitNotFound
		done <- &StartError{Command: c.command, ExitCode: ExitNotFound, Err: errors.New("cannot run without command")}
		close(done)
		return done
	}

	bin, err := exec.LookPath(c.command)
	if err != nil {
		startErr := &StartError{Command: c.command, ExitCode: ExitCannotStart, Err: err}
		// a file without execute permission was located, so it maps to ExitCannotStart
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			startErr.ExitCode = ExitNotFound
			startErr.Err = fmt.Errorf("%w: %s", ErrNotFound, err)
		}
		c.exitCode = startErr.ExitCode
		done <- startErr
		close(done)
		return done
	}

	cmd := exec.CommandContext(ctx, bin, c.args...)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Start(); err != nil {
		c.exitCode = ExitCannotStart
		done <- &StartError{Command: c.command, ExitCode: ExitCannotStart, Err: err}
		close(done)
		return done
	}

	go func() {
		c.exitCode = exitStatus(cmd.Wait())
		done <- nil
		close(done)
	}()

	return done
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
