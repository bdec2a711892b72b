package logx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whatsappmcp/internal/paths"
)

func TestNewWritesToLogsDir(t *testing.T) {
	root := t.TempDir()
	pp := paths.InstallPaths{Root: root, LogsDir: filepath.Join(root, "logs")}

	logger, closer, err := New(pp, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info().Str("step", "probe").Msg("hello")
	logger.Debug().Msg("hidden")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(pp.LogsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".log") {
		t.Fatalf("unexpected log files: %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(pp.LogsDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"step":"probe"`) {
		t.Fatalf("log missing field: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug entry written without Debug: %s", data)
	}
}

func TestDebugMirrorsToConsole(t *testing.T) {
	root := t.TempDir()
	pp := paths.InstallPaths{Root: root, LogsDir: filepath.Join(root, "logs")}

	var console bytes.Buffer
	logger, closer, err := New(pp, Options{Debug: true, Console: &console})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Debug().Msg("candidate rejected")
	if !strings.Contains(console.String(), "candidate rejected") {
		t.Fatalf("console output = %q", console.String())
	}
}

func TestConsoleWithoutDebugIsSilent(t *testing.T) {
	var console bytes.Buffer
	logger := Console(Options{Console: &console})
	logger.Error().Msg("nothing")
	if console.Len() != 0 {
		t.Fatalf("unexpected output %q", console.String())
	}
}
