//go:build !windows

package bridge

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// terminate asks the process to stop with SIGTERM. It does not wait.
func terminate(proc *os.Process) error {
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("send SIGTERM to %d: %w", proc.Pid, err)
	}
	return nil
}
