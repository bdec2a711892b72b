package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user aborts a prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// PathPrompt asks for a filesystem path, offering Default when the answer is
// left empty.
type PathPrompt struct {
	Label   string
	Default string
	In      io.Reader
	Out     io.Writer
	// Interactive selects the bubbletea text input; otherwise a single line
	// is read from In.
	Interactive bool
}

// Ask runs the prompt and returns the chosen value.
func (p PathPrompt) Ask() (string, error) {
	if p.Interactive {
		return p.askTUI()
	}
	return p.askPlain()
}

func (p PathPrompt) askPlain() (string, error) {
	fmt.Fprintf(p.Out, "%s %s ", p.Label, DetailStyle.Render("("+p.Default+")"))
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.Out)
	}
	return answerOrDefault(line, p.Default), nil
}

func (p PathPrompt) askTUI() (string, error) {
	model := newPathPromptModel(p.Label, p.Default)
	opts := []tea.ProgramOption{tea.WithOutput(p.Out)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	finalModel, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m := finalModel.(pathPromptModel)
	if m.cancelled {
		return "", ErrPromptCancelled
	}
	return answerOrDefault(m.input.Value(), p.Default), nil
}

func answerOrDefault(answer, def string) string {
	if v := strings.TrimSpace(answer); v != "" {
		return v
	}
	return def
}

type pathPromptModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPathPromptModel(label, def string) pathPromptModel {
	input := textinput.New()
	input.Placeholder = def
	input.CharLimit = 4096
	input.Focus()
	return pathPromptModel{label: label, input: input}
}

func (m pathPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pathPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab":
			if m.input.Value() == "" {
				m.input.SetValue(m.input.Placeholder)
				m.input.CursorEnd()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pathPromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(DetailStyle.Render("enter to accept, tab to edit the default, esc to cancel"))
	b.WriteString("\n")
	return b.String()
}
