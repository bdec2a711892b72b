// Package bridge supervises the WhatsApp bridge process: it starts it with
// the caller's terminal attached, tracks its lifecycle and terminates it on
// request.
package bridge

import "fmt"

// State is the lifecycle state of the supervised process.
type State int

const (
	// NotStarted - no start attempted yet
	NotStarted State = iota
	// Running - process started and has not exited
	Running
	// ExitedClean - process exited with status 0
	ExitedClean
	// ExitedError - process failed to start or exited non-zero
	ExitedError
	// Terminated - termination was requested while running
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case ExitedClean:
		return "ExitedClean"
	case ExitedError:
		return "ExitedError"
	case Terminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == ExitedClean || s == ExitedError || s == Terminated
}

// Transition is emitted on every state change.
type Transition struct {
	From     State
	To       State
	ExitCode int
	Err      error
}
