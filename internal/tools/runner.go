package tools

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// defaultWaitDelay bounds how long Run waits for the output pipes to close
// after ctx kills the process.
const defaultWaitDelay = 500 * time.Millisecond

// RunResult holds the captured output of a finished command.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes a command to completion and captures its output.
type Runner interface {
	Run(ctx context.Context, command string, args []string) (RunResult, error)
}

// CmdRunner runs real processes. The process is killed when ctx is done; a
// child that left a grandchild holding its stdout is abandoned after
// WaitDelay.
type CmdRunner struct {
	WaitDelay time.Duration
}

func (r CmdRunner) Run(ctx context.Context, command string, args []string) (RunResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	err := cmd.Run()
	return RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

var _ Runner = CmdRunner{}
