package mcpconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

const (
	// DefaultServerName is the key under mcpServers.
	DefaultServerName = "whatsapp"
	// DefaultEntryPoint is the MCP server script run by uv.
	DefaultEntryPoint = "main.py"
)

// Config is the document read by host applications.
type Config struct {
	MCPServers map[string]Server `json:"mcpServers"`
}

// Server is a single stdio MCP server launch command. Args are positional:
// hosts pass them through verbatim.
type Server struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// BuildOptions parameterizes Build.
type BuildOptions struct {
	Name       string
	Command    string
	ServerDir  string
	EntryPoint string
}

// Build returns the config for a uv-launched server. It performs no I/O.
func Build(opts BuildOptions) Config {
	name := opts.Name
	if name == "" {
		name = DefaultServerName
	}
	entry := opts.EntryPoint
	if entry == "" {
		entry = DefaultEntryPoint
	}
	return Config{
		MCPServers: map[string]Server{
			name: ServerEntry(opts.Command, opts.ServerDir, entry),
		},
	}
}

// BuildConfig returns the default whatsapp entry for executable and serverDir.
func BuildConfig(executable, serverDir string) Config {
	return Build(BuildOptions{Command: executable, ServerDir: serverDir})
}

// ServerEntry returns the server launch command for uv.
func ServerEntry(executable, serverDir, entry string) Server {
	return Server{
		Command: executable,
		Args:    []string{"--directory", serverDir, "run", entry},
	}
}

// Encode serializes cfg as two-space indented JSON with a trailing newline.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode mcp config: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a host config file. Comments and trailing commas, which some
// hosts tolerate, are accepted.
func Decode(data []byte) (Config, error) {
	std, err := hujson.Standardize(append([]byte(nil), data...))
	if err != nil {
		return Config{}, fmt.Errorf("parse mcp config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode mcp config: %w", err)
	}
	return cfg, nil
}
