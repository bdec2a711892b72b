package tools

import (
	"regexp"
	"strings"
)

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

var versionRegex = regexp.MustCompile(`([0-9]+)\.([0-9]+)(?:\.([0-9]+))?`)

// normalizeVersion extracts the dotted version number from a version line
// such as "go version go1.22.4 linux/amd64", "Python 3.12.1" or
// "uv 0.4.18 (7b55e9790 2024-10-01)". The line is returned unchanged when no
// number is present.
func normalizeVersion(line string) string {
	match := versionRegex.FindString(line)
	if match == "" {
		return line
	}
	return match
}
