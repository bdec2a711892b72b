package tools

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell utilities")
	}
}

func TestCmdRunnerCapturesBothStreams(t *testing.T) {
	skipOnWindows(t)

	res, err := CmdRunner{}.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "out" {
		t.Fatalf("stdout = %q, want out", got)
	}
	if got := strings.TrimSpace(string(res.Stderr)); got != "err" {
		t.Fatalf("stderr = %q, want err", got)
	}
}

func TestCmdRunnerReturnsAfterContextEnds(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// The backgrounded sleep keeps stdout open after sh is killed.
	start := time.Now()
	_, err := CmdRunner{WaitDelay: 100 * time.Millisecond}.Run(ctx, "sh", []string{"-c", "sleep 5 & sleep 5"})
	if err == nil {
		t.Fatal("expected an error once the context expired")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("Run took %v after the context expired", elapsed)
	}
}

func TestVerifyRealProcesses(t *testing.T) {
	skipOnWindows(t)

	v := Verifier{Runner: CmdRunner{}, Timeout: 300 * time.Millisecond}
	ctx := context.Background()

	if got := v.Verify(ctx, "/nonexistent/uv", "--version"); got.Verdict != NotFound {
		t.Fatalf("missing path verdict = %v (%v), want not found", got.Verdict, got.Err)
	}
	if got := v.Verify(ctx, "false"); got.Verdict != NonFunctional {
		t.Fatalf("false verdict = %v (%v), want not functional", got.Verdict, got.Err)
	}

	start := time.Now()
	slow := v.Verify(ctx, "sleep", "5")
	if slow.Verdict != NonFunctional || !errors.Is(slow.Err, context.DeadlineExceeded) {
		t.Fatalf("sleep verdict = %v (%v), want not functional with deadline exceeded", slow.Verdict, slow.Err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}

	ok := v.Verify(ctx, "sh", "-c", "echo 'uv 0.4.18 (7b55e9790 2024-10-01)'")
	if !ok.OK() || ok.Version != "0.4.18" {
		t.Fatalf("functional verdict = %+v", ok)
	}
}
