package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"whatsappmcp/internal/paths"
)

// DebugEnv enables console diagnostics like --debug.
const DebugEnv = "WHATSAPP_MCP_DEBUG"

// Options controls where diagnostics go.
type Options struct {
	// Debug lowers the level to debug and mirrors entries to Console.
	Debug   bool
	Console io.Writer
}

// New creates a logger that writes to a timestamped file inside the install's
// logs directory. The returned closer should be closed when logging is no
// longer needed.
func New(p paths.InstallPaths, opts Options) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(p.LogsDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(p.LogsDir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	return build(file, opts), file, nil
}

// Console returns a logger that only writes to the console writer, for use
// when the log file cannot be opened.
func Console(opts Options) zerolog.Logger {
	if !opts.Debug {
		return zerolog.Nop()
	}
	return build(nil, opts)
}

func build(file io.Writer, opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	var writers []io.Writer
	if file != nil {
		writers = append(writers, file)
	}
	if opts.Debug {
		level = zerolog.DebugLevel
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen})
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
}
