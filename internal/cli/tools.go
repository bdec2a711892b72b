package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"whatsappmcp/internal/tools"
	"whatsappmcp/internal/tui"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect external tools",
	}
	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every uv candidate tried during discovery and why it was rejected",
		Args:  cobra.NoArgs,
		RunE:  runToolsList,
	}
}

type attemptRow struct {
	Path    string `json:"path"`
	Verdict string `json:"verdict"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

type discoveryReport struct {
	Tool     string       `json:"tool"`
	Found    bool         `json:"found"`
	Path     string       `json:"path"`
	Source   tools.Source `json:"source"`
	Version  string       `json:"version,omitempty"`
	Cache    string       `json:"cache"`
	Attempts []attemptRow `json:"attempts"`
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	prober := a.prober()
	d, found := prober.Discover(commandContext(cmd), tools.ToolUV, a.cfg.UV.ExtraSearchPaths)

	report := discoveryReport{
		Tool:    d.Tool,
		Found:   found,
		Path:    d.Path,
		Source:  d.Source,
		Version: d.Version,
		Cache:   prober.Cache.Location(),
	}
	for _, v := range d.Attempts {
		row := attemptRow{Path: v.Path, Verdict: v.Verdict.String(), Version: v.Version}
		if v.Err != nil {
			row.Error = v.Err.Error()
		}
		report.Attempts = append(report.Attempts, row)
	}

	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printAttemptTable(cmd.OutOrStdout(), report)
	return nil
}

func printAttemptTable(out io.Writer, report discoveryReport) {
	fmt.Fprintf(out, "%-4s %-15s %-12s %s\n", "#", "Verdict", "Version", "Candidate")
	for i, row := range report.Attempts {
		verdict := tui.StatusStyle(row.Verdict).Render(fmt.Sprintf("%-15s", row.Verdict))
		fmt.Fprintf(out, "%-4d %s %-12s %s\n", i+1, verdict, row.Version, row.Path)
		if row.Error != "" {
			fmt.Fprintf(out, "     error: %s\n", row.Error)
		}
	}
	if report.Found {
		fmt.Fprintf(out, "\nresolved %s -> %s (%s)\n", report.Tool, report.Path, report.Source)
	} else {
		fmt.Fprintf(out, "\n%s not found; configure will suggest %s\n", report.Tool, report.Path)
	}
	fmt.Fprintf(out, "cache: %s\n", report.Cache)
}
