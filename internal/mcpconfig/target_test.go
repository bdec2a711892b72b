package mcpconfig

import (
	"errors"
	"testing"

	"whatsappmcp/internal/envx"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		target   Target
		platform Platform
		want     string
	}{
		{Claude, Windows, `%APPDATA%\Claude\claude_desktop_config.json`},
		{Claude, Darwin, "~/Library/Application Support/Claude/claude_desktop_config.json"},
		{Claude, Linux, "~/.config/Claude/claude_desktop_config.json"},
		{Cursor, Linux, "~/.cursor/mcp.json"},
		{Cursor, Windows, `%APPDATA%\.cursor\mcp.json`},
	}
	for _, tt := range tests {
		got, err := ResolveConfigPath(tt.target, tt.platform)
		if err != nil {
			t.Fatalf("ResolveConfigPath(%s, %s): %v", tt.target, tt.platform, err)
		}
		if got != tt.want {
			t.Fatalf("ResolveConfigPath(%s, %s) = %q, want %q", tt.target, tt.platform, got, tt.want)
		}
	}
}

func TestResolveConfigPathUnsupportedPlatform(t *testing.T) {
	_, err := ResolveConfigPath(Claude, Platform("plan9"))
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
	var upe *UnsupportedPlatformError
	if !errors.As(err, &upe) || upe.Platform != "plan9" || upe.Target != Claude {
		t.Fatalf("unexpected error value %#v", err)
	}
}

func TestParseTarget(t *testing.T) {
	if got, err := ParseTarget(" Cursor "); err != nil || got != Cursor {
		t.Fatalf("ParseTarget(Cursor) = %q, %v", got, err)
	}
	if _, err := ParseTarget("bogus"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestTargetFlagValue(t *testing.T) {
	target := Claude
	if err := target.Set("bogus"); err == nil {
		t.Fatal("expected Set to reject bogus")
	}
	if target != Claude {
		t.Fatalf("rejected Set changed the value to %q", target)
	}
	if err := target.Set("cursor"); err != nil {
		t.Fatal(err)
	}
	if target.String() != "cursor" {
		t.Fatalf("got %q, want cursor", target.String())
	}
}

func TestCurrentPlatform(t *testing.T) {
	if CurrentPlatform("windows") != Windows {
		t.Fatal("windows should map to win32")
	}
	if CurrentPlatform("darwin") != Darwin {
		t.Fatal("darwin should map to darwin")
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		env      envx.Map
		want     string
	}{
		{
			name:     "home",
			template: "~/.cursor/mcp.json",
			env:      envx.Map{"HOME": "/home/alice"},
			want:     "/home/alice/.cursor/mcp.json",
		},
		{
			name:     "userprofile fallback",
			template: "~/.cursor/mcp.json",
			env:      envx.Map{"USERPROFILE": `C:\Users\Bob`},
			want:     `C:\Users\Bob/.cursor/mcp.json`,
		},
		{
			name:     "appdata",
			template: `%APPDATA%\Claude\x.json`,
			env:      envx.Map{"APPDATA": `C:\Users\Bob\AppData\Roaming`},
			want:     `C:\Users\Bob\AppData\Roaming\Claude\x.json`,
		},
		{
			name:     "tilde only at start",
			template: "/srv/~backup/%APPDATA%x",
			env:      envx.Map{"HOME": "/home/alice", "APPDATA": "A"},
			want:     "/srv/~backup/Ax",
		},
		{
			name:     "no tokens",
			template: "/etc/claude.json",
			env:      envx.Map{"HOME": "/home/alice", "APPDATA": "A"},
			want:     "/etc/claude.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.template, tt.env); got != tt.want {
				t.Fatalf("ExpandPath(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
