package mcpconfig

import (
	"strings"

	"whatsappmcp/internal/envx"
)

const (
	homeToken    = "~"
	appDataToken = "%APPDATA%"
)

// ExpandPath replaces a leading "~" with the home directory (HOME, falling back
// to USERPROFILE) and every "%APPDATA%" with APPDATA. Templates without either
// token are returned unchanged.
func ExpandPath(template string, env envx.Provider) string {
	if env == nil {
		env = envx.OS{}
	}
	out := template
	if strings.HasPrefix(out, homeToken) {
		home := env.Getenv("HOME")
		if home == "" {
			home = env.Getenv("USERPROFILE")
		}
		out = home + strings.TrimPrefix(out, homeToken)
	}
	if strings.Contains(out, appDataToken) {
		out = strings.ReplaceAll(out, appDataToken, env.Getenv("APPDATA"))
	}
	return out
}
