package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"whatsappmcp/internal/bridge"
	"whatsappmcp/internal/paths"
	"whatsappmcp/internal/tools"
	"whatsappmcp/internal/tui"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the WhatsApp bridge",
		Long: "Start the WhatsApp bridge in the foreground. On first run the bridge prints a QR code;\n" +
			"scan it with the WhatsApp mobile app. Press Ctrl+C to stop.",
		Args: cobra.NoArgs,
		RunE: runStart,
	}
}

func runStart(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	bc := a.cfg.Bridge

	if bc.Command == tools.ToolGo {
		res, err := tools.CheckToolchain(ctx, a.verifier(), hostGOOS, tools.ToolGo)
		if err != nil {
			a.logger.Error().Err(err).Msg("toolchain check failed")
			return err
		}
		a.logger.Info().Str("version", res.Version).Msg("go toolchain ok")
	}

	exists, err := paths.DirExists(a.paths.BridgeDir)
	if err != nil {
		return fmt.Errorf("stat bridge dir: %w", err)
	}
	if !exists {
		return fmt.Errorf("bridge directory does not exist: %s", a.paths.BridgeDir)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.InfoStyle.Render("Starting WhatsApp MCP bridge..."))

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	launcher := &bridge.Launcher{
		Starter: bridgeStarter,
		Logger:  a.logger,
		OnTransition: func(t bridge.Transition) {
			switch {
			case t.To == bridge.ExitedError && t.From == bridge.Running:
				fmt.Fprintln(out, tui.ErrorStyle.Render(fmt.Sprintf("WhatsApp bridge exited with code %d", t.ExitCode)))
			case t.To == bridge.Terminated:
				fmt.Fprintln(out, tui.WarnStyle.Render("\nGracefully shutting down..."))
			}
		},
	}

	spec := bridge.Spec{
		Dir:     a.paths.BridgeDir,
		Command: bc.Command,
		Args:    bc.Args,
		Stdin:   cmd.InOrStdin(),
		Stdout:  out,
		Stderr:  cmd.ErrOrStderr(),
	}
	outcome, err := bridge.Supervise(ctx, launcher, spec, interrupts)
	if err != nil {
		a.logger.Error().Err(err).Msg("bridge did not start")
		return err
	}
	a.logger.Info().Stringer("state", outcome.State).Int("exit_code", outcome.ExitCode).Msg("bridge supervision finished")
	return nil
}
