package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// PromptModel wraps bubbles/textinput with validation
type PromptModel struct {
	Input     textinput.Model
	Prompt    string
	Validator func(string) error

	value     string
	cancelled bool
	err       string
}

// NewPrompt creates a prompt with an optional prefilled value
func NewPrompt(prompt, placeholder, initial string, validator func(string) error) PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.CharLimit = 256
	ti.Focus()
	return PromptModel{
		Input:     ti,
		Prompt:    prompt,
		Validator: validator,
	}
}

// Init implements tea.Model
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.Validator != nil {
				if err := m.Validator(m.Input.Value()); err != nil {
					m.err = err.Error()
					return m, nil
				}
			}
			m.value = m.Input.Value()
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	// Clear error when user types
	m.err = ""

	return m, cmd
}

// View implements tea.Model
func (m PromptModel) View() string {
	content := promptStyle.Render(m.Prompt+": ") + m.Input.View() + "\n"
	if m.err != "" {
		content += errorStyle.Render("Error: "+m.err) + "\n"
	}
	content += hintStyle.Render("[enter] confirm  [esc] cancel")
	return content + "\n"
}

// Ask runs a one-off prompt and returns the confirmed value.
func Ask(prompt, placeholder, initial string, validator func(string) error) (string, error) {
	p := tea.NewProgram(NewPrompt(prompt, placeholder, initial, validator))
	out, err := p.Run()
	if err != nil {
		return "", err
	}
	final, ok := out.(PromptModel)
	if !ok || final.cancelled {
		return "", ErrCancelled
	}
	return final.value, nil
}

// ValidateDir requires an existing directory.
func ValidateDir(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
