package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolchainMissing is wrapped by MissingToolchainError.
var ErrToolchainMissing = errors.New("toolchain missing")

// MissingToolchainError reports a required tool that could not be verified.
type MissingToolchainError struct {
	Tool  string
	Hints []string
	Err   error
}

func (e *MissingToolchainError) Error() string {
	msg := fmt.Sprintf("%s is not installed or not on PATH", e.Tool)
	if len(e.Hints) > 0 {
		msg += "; " + strings.Join(e.Hints, "; ")
	}
	return msg
}

func (e *MissingToolchainError) Unwrap() error { return ErrToolchainMissing }

// CheckToolchain verifies that the named tool is callable by name on goos. It
// is the precondition check used before spawning anything that needs it.
func CheckToolchain(ctx context.Context, v Verifier, goos, name string) (Verification, error) {
	def, _ := Definition(name, goos)
	res := v.Verify(ctx, executableName(def.Executable, goos), def.VersionArgs...)
	if res.OK() {
		return res, nil
	}
	return res, &MissingToolchainError{Tool: name, Hints: InstallHints(name, goos), Err: res.Err}
}

// Detect returns the status of every required toolchain.
func Detect(ctx context.Context, v Verifier, goos string) []Status {
	statuses := make([]Status, 0, len(toolDefinitions))
	for _, name := range KnownTools() {
		statuses = append(statuses, detectOne(ctx, v, goos, name))
	}
	return statuses
}

func detectOne(ctx context.Context, v Verifier, goos, name string) Status {
	def, _ := Definition(name, goos)
	status := Status{Tool: name, Purpose: def.Purpose}

	res, err := CheckToolchain(ctx, v, goos, name)
	if err != nil {
		status.Error = res.Verdict.String()
		if res.Err != nil && res.Verdict == NonFunctional {
			status.Error = fmt.Sprintf("%s: %v", res.Verdict, res.Err)
		}
		status.Hints = InstallHints(name, goos)
		return status
	}

	status.Available = true
	status.Version = res.Version
	if path, err := exec.LookPath(executableName(def.Executable, goos)); err == nil {
		status.Path = path
	}
	return status
}
