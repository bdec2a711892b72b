package tools

// InstallHints returns operator instructions for installing a missing tool.
func InstallHints(tool, goos string) []string {
	switch tool {
	case ToolGo:
		switch goos {
		case "darwin":
			return []string{"Install Go via Homebrew: brew install go", "or download it from https://go.dev/dl/"}
		case "windows":
			return []string{"Install Go via winget: winget install GoLang.Go", "or download it from https://go.dev/dl/"}
		default:
			return []string{"Install Go from https://go.dev/dl/ or your distro package manager"}
		}
	case ToolPython:
		switch goos {
		case "darwin":
			return []string{"Install Python 3 via Homebrew: brew install python"}
		case "windows":
			return []string{"Install Python 3 via winget: winget install Python.Python.3.12", "or download it from https://www.python.org/"}
		default:
			return []string{"Install Python 3 from https://www.python.org/ or your distro package manager"}
		}
	case ToolUV:
		if goos == "windows" {
			return []string{`Install uv: powershell -ExecutionPolicy ByPass -c "irm https://astral.sh/uv/install.ps1 | iex"`}
		}
		return []string{"Install uv: curl -LsSf https://astral.sh/uv/install.sh | sh"}
	default:
		return []string{"Install " + tool + " using your platform's package manager"}
	}
}
