package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"whatsappmcp/internal/bridge"
	"whatsappmcp/internal/config"
	"whatsappmcp/internal/logx"
	"whatsappmcp/internal/paths"
	"whatsappmcp/internal/tools"
	"whatsappmcp/internal/tui"
)

// Swapped in tests.
var (
	hostGOOS                     = runtime.GOOS
	bridgeStarter bridge.Starter = bridge.ExecStarter{}
	newVerifier                  = func(timeout time.Duration) tools.Verifier {
		return tools.NewVerifier(timeout)
	}
)

// app bundles what every command needs: the install layout, settings and the
// diagnostic logger.
type app struct {
	paths  paths.InstallPaths
	cfg    config.Config
	logger zerolog.Logger
	closer io.Closer
}

func loadApp(cmd *cobra.Command) (*app, error) {
	pp, err := paths.Resolve(settings.GetString("root"))
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(pp.SettingsFile)
	if err != nil {
		return nil, err
	}
	pp = paths.ApplyConfig(pp, cfg)

	opts := logx.Options{Debug: settings.GetBool("debug"), Console: cmd.ErrOrStderr()}
	logger, closer, err := logx.New(pp, opts)
	if err != nil {
		if opts.Debug {
			warnf(cmd, "diagnostic log file disabled: %v", err)
		}
		logger = logx.Console(opts)
	}
	logger.Debug().Str("command", cmd.CommandPath()).Str("root", pp.Root).Msg("loaded settings")

	return &app{paths: pp, cfg: cfg, logger: logger, closer: closer}, nil
}

func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *app) verifier() tools.Verifier {
	return newVerifier(a.cfg.Probe.Timeout.Std())
}

func (a *app) prober() *tools.Prober {
	return &tools.Prober{
		Verifier: a.verifier(),
		Cache:    tools.NewCache(a.paths.CacheFile),
		GOOS:     hostGOOS,
		Fallback: a.cfg.UV.DefaultPath,
		Logger:   a.logger,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), tui.WarnStyle.Render("warning: "+fmt.Sprintf(format, args...)))
}
