package tools

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// DefaultVerifyTimeout bounds each version query so a wedged candidate
// cannot hang discovery.
const DefaultVerifyTimeout = 5 * time.Second

// Verifier invokes candidate executables with a version query.
type Verifier struct {
	Runner  Runner
	Timeout time.Duration
}

// NewVerifier returns a Verifier that spawns real processes.
func NewVerifier(timeout time.Duration) Verifier {
	return Verifier{Runner: CmdRunner{}, Timeout: timeout}
}

// Verify runs path with args and classifies the result. It never returns an
// error: spawn failures and non-zero exits are folded into the verdict.
func (v Verifier) Verify(ctx context.Context, path string, args ...string) Verification {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runner := v.Runner
	if runner == nil {
		runner = CmdRunner{}
	}

	result, err := runner.Run(ctx, path, args)
	if err != nil {
		if isNotFound(err) {
			return Verification{Path: path, Verdict: NotFound, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return Verification{Path: path, Verdict: NonFunctional, Err: err}
	}

	out := strings.TrimSpace(string(result.Stdout))
	if out == "" {
		// Older Python releases print their version on stderr.
		out = strings.TrimSpace(string(result.Stderr))
	}
	return Verification{Path: path, Verdict: Functional, Version: normalizeVersion(firstLine(out))}
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
