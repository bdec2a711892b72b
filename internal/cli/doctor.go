package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"whatsappmcp/internal/envx"
	"whatsappmcp/internal/mcpconfig"
	"whatsappmcp/internal/paths"
	"whatsappmcp/internal/tools"
)

var doctorStrict bool

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that Go, Python and uv are installed and report integration status",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	cmd.Flags().BoolVar(&doctorStrict, "strict", false, "Exit non-zero when any check reports an error")
	return cmd
}

type healthCheck struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"` // "ok", "warning", "error"
	Summary string   `json:"summary"`
	Hints   []string `json:"hints,omitempty"`
}

type doctorReport struct {
	Root   string         `json:"root"`
	Checks []healthCheck  `json:"checks"`
	Tools  []tools.Status `json:"tools"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	statuses := tools.Detect(ctx, a.verifier(), hostGOOS)

	// uv is often installed outside PATH; fall back to full discovery.
	for i, st := range statuses {
		if st.Tool != tools.ToolUV || st.Available {
			continue
		}
		if d, ok := a.prober().Discover(ctx, tools.ToolUV, a.cfg.UV.ExtraSearchPaths); ok {
			statuses[i].Available = true
			statuses[i].Path = d.Path
			statuses[i].Version = d.Version
			statuses[i].Error = ""
			statuses[i].Hints = []string{"uv is not on PATH; configure will use " + d.Path}
		}
	}

	report := doctorReport{Root: a.paths.Root, Tools: statuses}
	for _, st := range statuses {
		report.Checks = append(report.Checks, checkTool(st))
	}
	report.Checks = append(report.Checks,
		checkSettings(a.paths.SettingsFile),
		checkDir("Bridge", a.paths.BridgeDir),
		checkDir("Server", a.paths.ServerDir),
	)
	for _, target := range mcpconfig.Targets() {
		report.Checks = append(report.Checks, checkIntegration(target, a.cfg.Integration.Name))
	}

	if err := writeDoctorResult(cmd, report); err != nil {
		return err
	}

	if doctorStrict {
		var errs []error
		for _, c := range report.Checks {
			if c.Status == "error" {
				errs = append(errs, fmt.Errorf("%s: %s", c.Name, c.Summary))
			}
		}
		return errors.Join(errs...)
	}
	return nil
}

func checkTool(st tools.Status) healthCheck {
	name := st.Tool
	if !st.Available {
		return healthCheck{Name: name, Status: "error", Summary: st.Error, Hints: st.Hints}
	}
	summary := st.Version
	if st.Path != "" {
		summary += " (" + st.Path + ")"
	}
	return healthCheck{Name: name, Status: "ok", Summary: summary, Hints: st.Hints}
}

func checkSettings(path string) healthCheck {
	ok, err := paths.FileExists(path)
	if err != nil {
		return healthCheck{Name: "Settings", Status: "warning", Summary: err.Error()}
	}
	if !ok {
		return healthCheck{Name: "Settings", Status: "ok", Summary: "defaults (no " + path + ")"}
	}
	return healthCheck{Name: "Settings", Status: "ok", Summary: path}
}

func checkDir(name, dir string) healthCheck {
	ok, err := paths.DirExists(dir)
	if err != nil {
		return healthCheck{Name: name, Status: "error", Summary: err.Error()}
	}
	if !ok {
		return healthCheck{Name: name, Status: "error", Summary: "missing " + dir}
	}
	return healthCheck{Name: name, Status: "ok", Summary: dir}
}

func checkIntegration(target mcpconfig.Target, serverName string) healthCheck {
	name := target.DisplayName()
	template, err := mcpconfig.ResolveConfigPath(target, mcpconfig.CurrentPlatform(hostGOOS))
	if err != nil {
		return healthCheck{Name: name, Status: "warning", Summary: err.Error()}
	}
	path := mcpconfig.ExpandPath(template, envx.OS{})
	hint := fmt.Sprintf("run: whatsapp-mcp configure --target %s", target)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return healthCheck{Name: name, Status: "warning", Summary: "not configured", Hints: []string{hint}}
		}
		return healthCheck{Name: name, Status: "warning", Summary: err.Error()}
	}
	cfg, err := mcpconfig.Decode(data)
	if err != nil {
		return healthCheck{Name: name, Status: "warning", Summary: fmt.Sprintf("unreadable %s: %v", path, err)}
	}
	server, ok := cfg.MCPServers[serverName]
	if !ok {
		return healthCheck{Name: name, Status: "warning", Summary: "no " + serverName + " entry in " + path, Hints: []string{hint}}
	}
	return healthCheck{Name: name, Status: "ok", Summary: fmt.Sprintf("%s -> %s", path, server.Command)}
}

func writeDoctorResult(cmd *cobra.Command, report doctorReport) error {
	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)
	faint := lipgloss.NewStyle().Faint(true).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("WHATSAPP MCP:")+" "+report.Root)

	missing := false
	for _, c := range report.Checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
			missing = true
		}
		fmt.Fprintf(out, "  %-16s %s    %s\n", c.Name+":", statusStr, c.Summary)
		for _, hint := range c.Hints {
			fmt.Fprintf(out, "  %-16s %s\n", "", faint.Render(hint))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, bold.Render("NEXT STEPS:"))
	step := 1
	if missing {
		fmt.Fprintf(out, "  %d. Install the missing dependencies listed above\n", step)
		step++
	}
	fmt.Fprintf(out, "  %d. Start the WhatsApp bridge: whatsapp-mcp start\n", step)
	fmt.Fprintf(out, "     %s\n", faint.Render("On first run, scan the QR code with your WhatsApp mobile app"))
	fmt.Fprintf(out, "  %d. Configure your assistant: whatsapp-mcp configure --target claude (or cursor)\n", step+1)
	fmt.Fprintf(out, "  %d. Restart Claude Desktop or Cursor to apply the changes\n", step+2)
	return nil
}
