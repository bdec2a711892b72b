// Package mcpconfig builds and writes the MCP server entry that host
// applications (Claude Desktop, Cursor) read to launch the WhatsApp MCP server.
package mcpconfig

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// Target is a host application that reads an MCP configuration file.
type Target string

const (
	// Claude is the Claude Desktop assistant.
	Claude Target = "claude"
	// Cursor is the Cursor editor.
	Cursor Target = "cursor"
)

// Platform identifies an operating system family the way host applications
// document their config locations.
type Platform string

const (
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "win32"
)

var (
	// ErrInvalidTarget is returned for target names other than claude or cursor.
	ErrInvalidTarget = errors.New(`target must be either "claude" or "cursor"`)
	// ErrUnsupportedPlatform is wrapped by UnsupportedPlatformError.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// UnsupportedPlatformError reports a target with no known config location on
// the given platform.
type UnsupportedPlatformError struct {
	Target   Target
	Platform Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q for target %s", e.Platform, e.Target)
}

func (e *UnsupportedPlatformError) Unwrap() error { return ErrUnsupportedPlatform }

// configPaths holds unexpanded config file templates. "~" is the user's home
// directory and %APPDATA% the Windows roaming application data directory.
var configPaths = map[Target]map[Platform]string{
	Claude: {
		Darwin:  "~/Library/Application Support/Claude/claude_desktop_config.json",
		Linux:   "~/.config/Claude/claude_desktop_config.json",
		Windows: `%APPDATA%\Claude\claude_desktop_config.json`,
	},
	Cursor: {
		Darwin:  "~/.cursor/mcp.json",
		Linux:   "~/.cursor/mcp.json",
		Windows: `%APPDATA%\.cursor\mcp.json`,
	},
}

var displayNames = map[Target]string{
	Claude: "Claude Desktop",
	Cursor: "Cursor",
}

// Targets returns the supported targets in stable order.
func Targets() []Target {
	out := make([]Target, 0, len(configPaths))
	for t := range configPaths {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseTarget validates a target name.
func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := configPaths[t]; !ok {
		return "", fmt.Errorf("%w (got %q)", ErrInvalidTarget, name)
	}
	return t, nil
}

// DisplayName returns the human name of the host application.
func (t Target) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// String implements pflag.Value.
func (t *Target) String() string { return string(*t) }

// Set implements pflag.Value so invalid targets are rejected while parsing flags.
func (t *Target) Set(value string) error {
	parsed, err := ParseTarget(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t *Target) Type() string { return "target" }

var _ pflag.Value = (*Target)(nil)

// CurrentPlatform maps a Go GOOS value to a Platform.
func CurrentPlatform(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Platform(goos)
}

// ResolveConfigPath returns the unexpanded config file template for target on
// platform.
func ResolveConfigPath(target Target, platform Platform) (string, error) {
	byPlatform, ok := configPaths[target]
	if !ok {
		return "", fmt.Errorf("%w (got %q)", ErrInvalidTarget, string(target))
	}
	tmpl, ok := byPlatform[platform]
	if !ok {
		return "", &UnsupportedPlatformError{Target: target, Platform: platform}
	}
	return tmpl, nil
}
