package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPlainPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty line uses default", input: "\n", want: "/usr/local/bin/uv"},
		{name: "eof uses default", input: "", want: "/usr/local/bin/uv"},
		{name: "answer is trimmed", input: "  /opt/bin/uv \n", want: "/opt/bin/uv"},
		{name: "answer without newline", input: "/home/me/.local/bin/uv", want: "/home/me/.local/bin/uv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := PathPrompt{
				Label:   "Path to uv executable:",
				Default: "/usr/local/bin/uv",
				In:      strings.NewReader(tt.input),
				Out:     &out,
			}
			got, err := p.Ask()
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "Path to uv executable:") {
				t.Fatalf("label not printed: %q", out.String())
			}
		})
	}
}

func TestPathPromptModelKeys(t *testing.T) {
	m := newPathPromptModel("uv", "/usr/local/bin/uv")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(pathPromptModel)
	if m.input.Value() != "/usr/local/bin/uv" {
		t.Fatalf("tab should fill the default, got %q", m.input.Value())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(pathPromptModel)
	if !m.done || cmd == nil {
		t.Fatal("enter should finish the prompt")
	}
	if m.View() != "" {
		t.Fatalf("finished prompt should render nothing, got %q", m.View())
	}
}

func TestPathPromptModelCancel(t *testing.T) {
	m := newPathPromptModel("uv", "/usr/local/bin/uv")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(pathPromptModel).cancelled {
		t.Fatal("esc should cancel")
	}
}

func TestDetectModeNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if got := DetectMode(&buf, false, false); got != ModePlain {
		t.Fatalf("got %v, want ModePlain", got)
	}
	if got := DetectMode(&buf, false, true); got != ModeJSON {
		t.Fatalf("got %v, want ModeJSON", got)
	}
}
