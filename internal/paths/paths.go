package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"whatsappmcp/internal/config"
	"whatsappmcp/internal/tools"
)

// RootEnv overrides the install root when no flag is given.
const RootEnv = "WHATSAPP_MCP_ROOT"

// InstallPaths captures canonical locations inside a whatsapp-mcp install.
type InstallPaths struct {
	Root         string
	SettingsFile string
	BridgeDir    string
	ServerDir    string
	CacheFile    string
	LogsDir      string
}

// Resolve determines the install root. An explicit root wins, then the
// WHATSAPP_MCP_ROOT environment variable, then the parent of the directory
// holding the running executable.
func Resolve(rootFlag string) (InstallPaths, error) {
	root := strings.TrimSpace(rootFlag)
	if root == "" {
		root = strings.TrimSpace(os.Getenv(RootEnv))
	}
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return InstallPaths{}, fmt.Errorf("locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		root = filepath.Dir(filepath.Dir(exe))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return InstallPaths{}, fmt.Errorf("resolve install root: %w", err)
	}
	return newInstallPaths(abs), nil
}

func newInstallPaths(root string) InstallPaths {
	defaults := config.Default()
	return InstallPaths{
		Root:         root,
		SettingsFile: filepath.Join(root, config.FileName),
		BridgeDir:    filepath.Join(root, defaults.Bridge.Dir),
		ServerDir:    filepath.Join(root, defaults.Server.Dir),
		CacheFile:    filepath.Join(root, tools.CacheFileName),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// ApplyConfig points the bridge and server directories at the configured
// locations. Relative values are taken from the install root.
func ApplyConfig(p InstallPaths, cfg config.Config) InstallPaths {
	if dir := strings.TrimSpace(cfg.Bridge.Dir); dir != "" {
		p.BridgeDir = resolveInstallPath(p.Root, dir)
	}
	if dir := strings.TrimSpace(cfg.Server.Dir); dir != "" {
		p.ServerDir = resolveInstallPath(p.Root, dir)
	}
	return p
}

func resolveInstallPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
