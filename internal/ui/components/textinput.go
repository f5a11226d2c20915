package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and app styling.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a labelled text input. Secret inputs echo bullets.
func NewTextInput(label, placeholder, value string, secret bool) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 256
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	return TextInput{Model: ti, Label: label}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input on one line.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Width(10).Foreground(theme.TextDim).Render(t.Label)
	if t.Model.Focused() {
		label = lipgloss.NewStyle().Width(10).Foreground(theme.Primary).Bold(true).Render(t.Label)
	}
	return label + " " + t.Model.View()
}

// Value returns the input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
