package bridge

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Launcher owns a single bridge process and its state machine:
//
//	NotStarted --start ok--> Running --exit 0--> ExitedClean
//	NotStarted --start err-> ExitedError
//	Running --exit != 0--> ExitedError
//	Running --Terminate--> Terminated
//
// Exits observed after Terminate do not leave Terminated.
type Launcher struct {
	Starter      Starter
	OnTransition func(Transition)
	Logger       zerolog.Logger

	mu            sync.Mutex
	state         State
	proc          Process
	exitCode      int
	done          chan struct{}
	terminateOnce sync.Once
	terminateErr  error
}

// NewLauncher returns a Launcher that starts real processes.
func NewLauncher(logger zerolog.Logger, onTransition func(Transition)) *Launcher {
	return &Launcher{Starter: ExecStarter{}, Logger: logger, OnTransition: onTransition}
}

var errAlreadyLaunched = errors.New("bridge already launched")

// Launch starts the process described by spec. A start failure moves the
// launcher to ExitedError and returns a *StartError.
func (l *Launcher) Launch(ctx context.Context, spec Spec) error {
	l.mu.Lock()
	if l.state != NotStarted || l.done != nil {
		l.mu.Unlock()
		return errAlreadyLaunched
	}
	l.done = make(chan struct{})
	l.mu.Unlock()

	starter := l.Starter
	if starter == nil {
		starter = ExecStarter{}
	}

	l.Logger.Info().Str("dir", spec.Dir).Str("command", spec.Command).Strs("args", spec.Args).Msg("starting bridge")
	proc, err := starter.Start(ctx, spec)
	if err != nil {
		startErr := &StartError{Command: spec.Command, Dir: spec.Dir, Err: err}
		l.transition(ExitedError, -1, startErr)
		close(l.done)
		return startErr
	}

	l.mu.Lock()
	l.proc = proc
	l.mu.Unlock()
	l.transition(Running, 0, nil)
	l.Logger.Info().Int("pid", proc.Pid()).Msg("bridge running")

	go l.wait(proc)
	return nil
}

func (l *Launcher) wait(proc Process) {
	code, err := proc.Wait()
	switch {
	case l.State() == Terminated:
		l.mu.Lock()
		l.exitCode = code
		l.mu.Unlock()
		l.Logger.Debug().Int("exit_code", code).Msg("bridge exited after termination")
	case err == nil && code == 0:
		l.transition(ExitedClean, code, nil)
	default:
		l.transition(ExitedError, code, err)
	}
	close(l.done)
}

// Terminate requests termination of a running process. Only the first call
// has any effect; it returns that call's error on every call.
func (l *Launcher) Terminate() error {
	l.terminateOnce.Do(func() {
		l.mu.Lock()
		if l.state != Running {
			l.mu.Unlock()
			return
		}
		proc := l.proc
		l.mu.Unlock()

		l.transition(Terminated, 0, nil)
		l.terminateErr = proc.Terminate()
		if l.terminateErr != nil {
			l.Logger.Warn().Err(l.terminateErr).Msg("terminate bridge")
		}
	})
	return l.terminateErr
}

// Done is closed once the process has exited or failed to start. It is nil
// before Launch.
func (l *Launcher) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// State returns the current state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// ExitCode returns the last observed exit status.
func (l *Launcher) ExitCode() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exitCode
}

func (l *Launcher) transition(to State, code int, err error) {
	l.mu.Lock()
	from := l.state
	if from == to || from.Terminal() {
		l.mu.Unlock()
		return
	}
	l.state = to
	l.exitCode = code
	l.mu.Unlock()

	l.Logger.Debug().Stringer("from", from).Stringer("to", to).Int("exit_code", code).AnErr("error", err).Msg("bridge state")
	if l.OnTransition != nil {
		l.OnTransition(Transition{From: from, To: to, ExitCode: code, Err: err})
	}
}

// Outcome summarizes a supervised run.
type Outcome struct {
	State    State
	ExitCode int
}

// Supervise launches spec and blocks until the process exits, an interrupt
// arrives or ctx is cancelled. On interrupt or cancellation it requests
// termination once and returns without waiting for the child. Only a start
// failure is returned as an error; a non-zero exit is reported through the
// launcher's OnTransition callback.
func Supervise(ctx context.Context, l *Launcher, spec Spec, interrupts <-chan os.Signal) (Outcome, error) {
	if err := l.Launch(ctx, spec); err != nil {
		return Outcome{State: l.State(), ExitCode: -1}, err
	}

	select {
	case <-l.Done():
	case sig := <-interrupts:
		l.Logger.Info().Str("signal", sig.String()).Msg("interrupt received")
		_ = l.Terminate()
	case <-ctx.Done():
		_ = l.Terminate()
	}
	return Outcome{State: l.State(), ExitCode: l.ExitCode()}, nil
}
