package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// ErrStartFailure is wrapped by StartError.
var ErrStartFailure = errors.New("bridge failed to start")

// StartError reports that the bridge command could not be started.
type StartError struct {
	Command string
	Dir     string
	Err     error
}

func (e *StartError) Error() string {
	if e.ToolchainMissing() {
		return fmt.Sprintf("%s toolchain not found: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("start %s in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *StartError) Unwrap() []error { return []error{ErrStartFailure, e.Err} }

// ToolchainMissing reports whether the executable itself could not be found.
func (e *StartError) ToolchainMissing() bool {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) && pathErr.Op == "chdir" {
		return false
	}
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist)
}

// Spec describes how to start the bridge.
type Spec struct {
	Dir     string
	Command string
	Args    []string
	Env     []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Process is a started child process.
type Process interface {
	// Wait blocks until the process exits and returns its exit status. The
	// error is reserved for failures other than a non-zero exit.
	Wait() (int, error)
	Terminate() error
	Pid() int
}

// Starter starts processes.
type Starter interface {
	Start(ctx context.Context, spec Spec) (Process, error)
}

// ExecStarter starts real processes. Standard streams default to the
// invoking process's own so the child's terminal output (such as the pairing
// QR code) is shown unmodified.
type ExecStarter struct{}

func (ExecStarter) Start(_ context.Context, spec Spec) (Process, error) {
	// Not CommandContext: the child must outlive context cancellation until
	// Terminate is called explicitly.
	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.Stdin = spec.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

var _ Starter = ExecStarter{}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

func (p *execProcess) Terminate() error {
	return terminate(p.cmd.Process)
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}
