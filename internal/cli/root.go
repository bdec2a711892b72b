package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"whatsappmcp/internal/logx"
	"whatsappmcp/internal/paths"
)

var (
	rootDir    string
	outputJSON bool
	debugLogs  bool

	// settings merges persistent flags with WHATSAPP_MCP_* environment
	// variables.
	settings *viper.Viper

	version = "dev"
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "whatsapp-mcp",
		Short:         "Install, configure and run the WhatsApp MCP server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "Path to the whatsapp-mcp install (defaults to the package directory)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Mirror diagnostic logs to stderr")

	settings = viper.New()
	settings.SetEnvPrefix("WHATSAPP_MCP")
	settings.AutomaticEnv()
	envNames := map[string]string{"root": paths.RootEnv, "debug": logx.DebugEnv}
	for _, name := range []string{"root", "debug"} {
		if err := settings.BindPFlag(name, cmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", name, err))
		}
		if err := settings.BindEnv(name, envNames[name]); err != nil {
			panic(fmt.Sprintf("bind %s env: %v", name, err))
		}
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newConfigureCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
