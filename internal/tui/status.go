package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner prints a spinning status line while a slow step runs, such as
// verifying candidate executables. It is a no-op when disabled so callers do
// not need to branch on the output mode.
type Spinner struct {
	w       io.Writer
	enabled bool

	mu      sync.Mutex
	message string
	started time.Time
	done    chan struct{}
	stopped bool
}

// StartSpinner begins rendering msg to w every 100ms when enabled is true.
func StartSpinner(w io.Writer, msg string, enabled bool) *Spinner {
	s := &Spinner{w: w, enabled: enabled, message: msg, started: time.Now(), done: make(chan struct{})}
	if enabled {
		go s.loop()
	}
	return s
}

// Stop clears the status line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()
	close(s.done)
	if s.enabled {
		fmt.Fprint(s.w, "\r\033[K")
	}
}

func (s *Spinner) loop() {
	tick := 0
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			start := s.started
			s.mu.Unlock()

			frame := spinnerFrames[tick%len(spinnerFrames)]
			tick++
			fmt.Fprintf(s.w, "\r\033[K%s %s %s", frame, msg, DetailStyle.Render("("+formatElapsed(time.Since(start))+")"))
		}
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
