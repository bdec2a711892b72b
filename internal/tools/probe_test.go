package tools

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/rs/zerolog"

	"whatsappmcp/internal/envx"
)

type fakeResult struct {
	stdout string
	err    error
}

// fakeRunner answers version queries from a table keyed by command. Commands
// not in the table behave like a missing executable.
type fakeRunner struct {
	results map[string]fakeResult
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, command string, _ []string) (RunResult, error) {
	f.calls = append(f.calls, command)
	res, ok := f.results[command]
	if !ok {
		return RunResult{}, &exec.Error{Name: command, Err: exec.ErrNotFound}
	}
	if errors.Is(res.err, context.DeadlineExceeded) {
		<-ctx.Done()
		return RunResult{}, ctx.Err()
	}
	return RunResult{Stdout: []byte(res.stdout)}, res.err
}

func newTestProber(t *testing.T, runner *fakeRunner, cached string) *Prober {
	t.Helper()
	cache := NewCacheFS(memfs.New(), CacheFileName)
	if cached != "" {
		if err := cache.Save(cached); err != nil {
			t.Fatalf("seed cache: %v", err)
		}
	}
	return &Prober{
		Verifier: Verifier{Runner: runner},
		Cache:    cache,
		Env:      envx.Map{"HOME": "/home/alice"},
		GOOS:     "linux",
		Logger:   zerolog.Nop(),
		LookPath: func(name string) (string, error) { return "/resolved/" + name, nil },
	}
}

func TestDiscoverPrefersCache(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"/opt/uv":           {stdout: "uv 0.4.18 (7b55e9790 2024-10-01)\n"},
		"uv":                {stdout: "uv 0.5.0\n"},
		"/usr/local/bin/uv": {stdout: "uv 0.5.0\n"},
	}}
	p := newTestProber(t, runner, "/opt/uv")

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if !ok {
		t.Fatalf("expected discovery to succeed")
	}
	if got.Path != "/opt/uv" || got.Source != SourceCache {
		t.Fatalf("got %s from %s, want /opt/uv from cache", got.Path, got.Source)
	}
	if got.Version != "0.4.18" {
		t.Fatalf("got version %q, want 0.4.18", got.Version)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected a single verification, got %v", runner.calls)
	}
}

func TestDiscoverFallsThroughBrokenCacheToPath(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"/stale/uv": {err: errors.New("exit status 1")},
		"uv":        {stdout: "uv 0.5.0\n"},
	}}
	p := newTestProber(t, runner, "/stale/uv")

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if !ok {
		t.Fatalf("expected discovery to succeed")
	}
	if got.Source != SourcePath || got.Path != "/resolved/uv" {
		t.Fatalf("got %s from %s, want /resolved/uv from path", got.Path, got.Source)
	}
	if len(got.Attempts) != 2 || got.Attempts[0].Verdict != NonFunctional {
		t.Fatalf("unexpected attempts: %+v", got.Attempts)
	}
}

func TestDiscoverSearchOrder(t *testing.T) {
	cargo := filepath.Join("/home/alice", ".cargo", "bin", "uv")
	local := filepath.Join("/home/alice", ".local", "bin", "uv")
	runner := &fakeRunner{results: map[string]fakeResult{
		"/usr/bin/uv": {err: errors.New("exit status 2")},
		local:         {stdout: "uv 0.4.0\n"},
		cargo:         {stdout: "uv 0.3.0\n"},
	}}
	p := newTestProber(t, runner, "")

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if !ok {
		t.Fatalf("expected discovery to succeed")
	}
	if got.Path != local {
		t.Fatalf("got %s, want %s", got.Path, local)
	}
	for _, call := range runner.calls {
		if call == cargo {
			t.Fatalf("probed %s after an earlier candidate verified", cargo)
		}
	}
	want := []string{"uv", "/usr/local/bin/uv", "/usr/bin/uv", local}
	if len(runner.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", runner.calls, want)
	}
	for i := range want {
		if runner.calls[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, runner.calls[i], want[i])
		}
	}
}

func TestDiscoverExtraPathsBeforeCommonDirs(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"/custom/uv":        {stdout: "uv 0.4.0\n"},
		"/usr/local/bin/uv": {stdout: "uv 0.4.0\n"},
	}}
	p := newTestProber(t, runner, "")

	got, ok := p.Discover(context.Background(), ToolUV, []string{"/custom/uv"})
	if !ok || got.Path != "/custom/uv" {
		t.Fatalf("got %+v ok=%v, want /custom/uv", got, ok)
	}
}

func TestDiscoverSkipsDuplicateCandidates(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"/usr/local/bin/uv": {err: errors.New("exit status 1")},
	}}
	p := newTestProber(t, runner, "/usr/local/bin/uv")

	p.Discover(context.Background(), ToolUV, []string{"/usr/local/bin/uv"})
	count := 0
	for _, call := range runner.calls {
		if call == "/usr/local/bin/uv" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected /usr/local/bin/uv to be probed once, got %d", count)
	}
}

func TestDiscoverFallsBackToDefault(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{}}
	p := newTestProber(t, runner, "")

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if ok {
		t.Fatalf("expected discovery to fail")
	}
	if got.Path != DefaultUVPath || got.Source != SourceDefault {
		t.Fatalf("got %s from %s, want default %s", got.Path, got.Source, DefaultUVPath)
	}
	for _, a := range got.Attempts {
		if a.Verdict != NotFound {
			t.Fatalf("attempt %s: got %s, want not found", a.Path, a.Verdict)
		}
	}
}

func TestDiscoverSuggestsStaleCacheWhenNothingVerifies(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"/stale/uv": {err: errors.New("exit status 1")},
	}}
	p := newTestProber(t, runner, "/stale/uv")
	p.Fallback = "/configured/uv"

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if ok {
		t.Fatalf("expected discovery to fail")
	}
	if got.Path != "/stale/uv" || got.Source != SourceDefault {
		t.Fatalf("got %s from %s, want stale cache as the suggestion", got.Path, got.Source)
	}
}

func TestDiscoverPrefersConfiguredFallback(t *testing.T) {
	p := newTestProber(t, &fakeRunner{results: map[string]fakeResult{}}, "")
	p.Fallback = "/configured/uv"

	if got, _ := p.Discover(context.Background(), ToolUV, nil); got.Path != "/configured/uv" {
		t.Fatalf("got %s, want /configured/uv", got.Path)
	}
}

func TestDiscoverWithoutCacheFile(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{"uv": {stdout: "uv 0.5.0"}}}
	p := newTestProber(t, runner, "")

	got, ok := p.Discover(context.Background(), ToolUV, nil)
	if !ok || got.Source != SourcePath {
		t.Fatalf("got %+v ok=%v, want path discovery", got, ok)
	}
	if runner.calls[0] != "uv" {
		t.Fatalf("first probe = %s, want bare name", runner.calls[0])
	}
}

func TestVerifyClassifiesOutcomes(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"good":   {stdout: "go version go1.22.4 linux/amd64\n"},
		"broken": {err: errors.New("exit status 1")},
		"hang":   {err: context.DeadlineExceeded},
	}}
	v := Verifier{Runner: runner, Timeout: 10 * time.Millisecond}

	tests := []struct {
		path    string
		want    Verdict
		version string
	}{
		{"good", Functional, "1.22.4"},
		{"broken", NonFunctional, ""},
		{"hang", NonFunctional, ""},
		{"missing", NotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := v.Verify(context.Background(), tt.path, "version")
			if got.Verdict != tt.want {
				t.Fatalf("verdict = %s, want %s", got.Verdict, tt.want)
			}
			if got.Version != tt.version {
				t.Fatalf("version = %q, want %q", got.Version, tt.version)
			}
		})
	}
}

func TestCommonSearchPathsWindows(t *testing.T) {
	env := envx.Map{"USERPROFILE": `C:\Users\Bob`, "APPDATA": `C:\Users\Bob\AppData\Roaming`}
	paths := CommonSearchPaths("uv", "windows", env)

	last := paths[len(paths)-1]
	want := filepath.Join(`C:\Users\Bob\AppData\Roaming`, "Python", "Scripts", "uv.exe")
	if last != want {
		t.Fatalf("last candidate = %s, want %s", last, want)
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, "uv.exe") {
			t.Fatalf("candidate %s missing .exe suffix", p)
		}
	}
}

func TestCommonSearchPathsWithoutHome(t *testing.T) {
	paths := CommonSearchPaths("uv", "linux", envx.Map{})
	if len(paths) != 2 {
		t.Fatalf("expected only system directories, got %v", paths)
	}
}
