package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"whatsappmcp/internal/envx"
	"whatsappmcp/internal/mcpconfig"
	"whatsappmcp/internal/paths"
	"whatsappmcp/internal/tools"
	"whatsappmcp/internal/tui"
)

const uvPromptLabel = `Path to uv executable (run "which uv" to find it):`

type configureOptions struct {
	target    mcpconfig.Target
	uvPath    string
	serverDir string
	yes       bool
	overwrite bool
	print     bool
}

type configureResult struct {
	Target    mcpconfig.Target `json:"target"`
	Path      string           `json:"path"`
	UVPath    string           `json:"uv_path"`
	UVSource  tools.Source     `json:"uv_source"`
	UVVersion string           `json:"uv_version,omitempty"`
	Merged    bool             `json:"merged"`
	Replaced  []string         `json:"replaced,omitempty"`
}

func newConfigureCmd() *cobra.Command {
	opts := &configureOptions{target: mcpconfig.Claude}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure WhatsApp MCP for Claude Desktop or Cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.target, "target", "t", `Target application ("claude" or "cursor")`)
	flags.StringVar(&opts.uvPath, "uv-path", "", "Use this uv executable instead of discovering one")
	flags.StringVar(&opts.serverDir, "server-dir", "", "Override the MCP server directory")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Accept the discovered uv path without prompting")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace the whole config file instead of merging the server entry")
	flags.BoolVar(&opts.print, "print", false, "Print the generated configuration instead of writing it")
	return cmd
}

func runConfigure(cmd *cobra.Command, opts *configureOptions) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	// Unsupported platforms fail before anything is probed or written.
	template, err := mcpconfig.ResolveConfigPath(opts.target, mcpconfig.CurrentPlatform(hostGOOS))
	if err != nil {
		return err
	}
	dest := mcpconfig.ExpandPath(template, envx.OS{})
	a.logger.Info().Str("target", string(opts.target)).Str("path", dest).Msg("resolved host config")

	mode := tui.DetectMode(out, opts.print, outputJSON)
	promptOut := out
	if opts.print || outputJSON {
		promptOut = cmd.ErrOrStderr()
	}

	verifier := a.verifier()
	cache := tools.NewCache(a.paths.CacheFile)
	res := configureResult{Target: opts.target, Path: dest}

	var discovery tools.Discovery
	found := false
	exe := strings.TrimSpace(opts.uvPath)
	if exe == "" {
		spin := tui.StartSpinner(cmd.ErrOrStderr(), "Looking for uv", mode == tui.ModeTUI)
		discovery, found = a.prober().Discover(ctx, tools.ToolUV, a.cfg.UV.ExtraSearchPaths)
		spin.Stop()

		if found {
			fmt.Fprintln(promptOut, tui.DetailStyle.Render(fmt.Sprintf("Found uv %s at %s (%s)", discovery.Version, discovery.Path, discovery.Source)))
		} else {
			warnf(cmd, "uv was not found; suggesting %s", discovery.Path)
			for _, hint := range tools.InstallHints(tools.ToolUV, hostGOOS) {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.DetailStyle.Render("  "+hint))
			}
		}

		exe = discovery.Path
		if !opts.yes {
			prompt := tui.PathPrompt{
				Label:       uvPromptLabel,
				Default:     discovery.Path,
				In:          cmd.InOrStdin(),
				Out:         promptOut,
				Interactive: mode == tui.ModeTUI && tui.IsTerminal(cmd.InOrStdin()),
			}
			if exe, err = prompt.Ask(); err != nil {
				return err
			}
		}
	}

	res.UVPath = exe
	res.UVSource = tools.SourceUnknown
	verified := found && exe == discovery.Path
	if verified {
		res.UVSource = discovery.Source
		res.UVVersion = discovery.Version
	} else {
		check := verifier.Verify(ctx, exe, "--version")
		verified = check.OK()
		if verified {
			res.UVVersion = check.Version
		} else {
			warnf(cmd, "%s is %s; the host application may fail to start the server", exe, check.Verdict)
		}
	}
	if verified {
		if err := cache.Save(exe); err != nil {
			warnf(cmd, "%v", err)
		} else {
			a.logger.Debug().Str("path", exe).Str("cache", cache.Location()).Msg("saved discovery cache")
		}
	}

	serverDir := a.paths.ServerDir
	if opts.serverDir != "" {
		serverDir = opts.serverDir
	}
	if abs, err := filepath.Abs(serverDir); err == nil {
		serverDir = abs
	}
	if ok, _ := paths.DirExists(serverDir); !ok {
		warnf(cmd, "MCP server directory does not exist: %s", serverDir)
	}

	cfg := mcpconfig.Build(mcpconfig.BuildOptions{
		Name:       a.cfg.Integration.Name,
		Command:    exe,
		ServerDir:  serverDir,
		EntryPoint: a.cfg.Server.Entry,
	})

	if opts.print {
		data, err := mcpconfig.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	writer := mcpconfig.Writer{
		Merge:  a.cfg.Configure.MergeValue() && !opts.overwrite,
		Logger: a.logger,
	}
	written, err := writer.Write(ctx, dest, cfg)
	if err != nil {
		return err
	}
	res.Merged = written.Merged
	res.Replaced = written.Replaced

	if outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, tui.SuccessStyle.Render("Configuration written to "+written.Path))
	if len(written.Replaced) > 0 {
		fmt.Fprintln(out, tui.DetailStyle.Render("Updated existing entry: "+strings.Join(written.Replaced, ", ")))
	}
	fmt.Fprintln(out, tui.InfoStyle.Render(fmt.Sprintf("Please restart %s to apply the changes", opts.target.DisplayName())))
	return nil
}
