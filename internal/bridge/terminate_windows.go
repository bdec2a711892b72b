//go:build windows

package bridge

import (
	"errors"
	"fmt"
	"os"
)

// terminate calls TerminateProcess; Windows has no SIGTERM equivalent for
// console children.
func terminate(proc *os.Process) error {
	if err := proc.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("terminate process %d: %w", proc.Pid, err)
	}
	return nil
}
