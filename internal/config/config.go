package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the install root.
const FileName = "whatsapp-mcp.yaml"

// Config captures the optional install-level settings.
type Config struct {
	Version     int               `yaml:"version"`
	Bridge      BridgeConfig      `yaml:"bridge"`
	Server      ServerConfig      `yaml:"server"`
	UV          UVConfig          `yaml:"uv"`
	Probe       ProbeConfig       `yaml:"probe"`
	Integration IntegrationConfig `yaml:"integration"`
	Configure   ConfigureConfig   `yaml:"configure"`
}

// BridgeConfig describes how the Go bridge is launched.
type BridgeConfig struct {
	Dir     string   `yaml:"dir"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// ServerConfig locates the Python MCP server.
type ServerConfig struct {
	Dir   string `yaml:"dir"`
	Entry string `yaml:"entry"`
}

// UVConfig tunes discovery of the uv executable.
type UVConfig struct {
	DefaultPath      string   `yaml:"default_path"`
	ExtraSearchPaths []string `yaml:"extra_search_paths,omitempty"`
}

// ProbeConfig bounds executable verification.
type ProbeConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// IntegrationConfig names the entry written into host configs.
type IntegrationConfig struct {
	Name string `yaml:"name"`
}

// ConfigureConfig controls how host config files are written.
type ConfigureConfig struct {
	Merge *bool `yaml:"merge,omitempty"`
}

// MergeValue returns the effective merge flag applying defaults.
func (c ConfigureConfig) MergeValue() bool {
	if c.Merge == nil {
		return true
	}
	return *c.Merge
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// UnmarshalYAML accepts "5s"-style strings and bare integers (seconds).
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		*d = 0
		return nil
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var secs int
	if err := node.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration %q", raw)
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Bridge: BridgeConfig{
			Dir:     "whatsapp-bridge",
			Command: "go",
			Args:    []string{"run", "main.go"},
		},
		Server: ServerConfig{
			Dir:   "whatsapp-mcp-server",
			Entry: "main.py",
		},
		UV: UVConfig{
			DefaultPath: "/usr/local/bin/uv",
		},
		Probe: ProbeConfig{
			Timeout: Duration(5 * time.Second),
		},
		Integration: IntegrationConfig{
			Name: "whatsapp",
		},
		Configure: ConfigureConfig{
			Merge: boolPtr(true),
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.Bridge.Dir) == "" {
		c.Bridge.Dir = defaults.Bridge.Dir
	}
	if strings.TrimSpace(c.Bridge.Command) == "" {
		c.Bridge.Command = defaults.Bridge.Command
		// Custom args only make sense with the command they were written for.
		if len(c.Bridge.Args) == 0 {
			c.Bridge.Args = defaults.Bridge.Args
		}
	}
	if strings.TrimSpace(c.Server.Dir) == "" {
		c.Server.Dir = defaults.Server.Dir
	}
	if strings.TrimSpace(c.Server.Entry) == "" {
		c.Server.Entry = defaults.Server.Entry
	}
	if strings.TrimSpace(c.UV.DefaultPath) == "" {
		c.UV.DefaultPath = defaults.UV.DefaultPath
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = defaults.Probe.Timeout
	}
	if strings.TrimSpace(c.Integration.Name) == "" {
		c.Integration.Name = defaults.Integration.Name
	}
	if c.Configure.Merge == nil {
		c.Configure.Merge = boolPtr(true)
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
