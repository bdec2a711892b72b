package tools

import (
	"runtime"
	"sort"
)

const (
	ToolGo     = "go"
	ToolPython = "python3"
	ToolUV     = "uv"
)

var toolDefinitions = map[string]ToolDefinition{
	ToolGo: {
		Name:        ToolGo,
		Executable:  ToolGo,
		VersionArgs: []string{"version"},
		Purpose:     "runs the WhatsApp bridge",
	},
	ToolPython: {
		Name:        ToolPython,
		Executable:  ToolPython,
		VersionArgs: []string{"--version"},
		Purpose:     "runs the MCP server",
	},
	ToolUV: {
		Name:        ToolUV,
		Executable:  ToolUV,
		VersionArgs: []string{"--version"},
		Purpose:     "launches the MCP server from the host application",
	},
}

var runtimeGOOS = runtime.GOOS

func executableName(base, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}

// KnownTools returns the list of required toolchain names.
func KnownTools() []string {
	names := make([]string, 0, len(toolDefinitions))
	for name := range toolDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the tool definition for name on goos. Unknown names get a
// definition that verifies with --version.
func Definition(name, goos string) (ToolDefinition, bool) {
	def, ok := toolDefinitions[name]
	if !ok {
		return ToolDefinition{Name: name, Executable: name, VersionArgs: []string{"--version"}}, false
	}
	if goos == "windows" && def.Name == ToolPython {
		// The Windows installer ships python.exe, not python3.exe.
		def.Executable = "python"
	}
	return def, true
}
