package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recallkit/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for free-text answers. Once locked it
// ignores key input and shows a marker with the submission outcome.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	locked   bool
	accepted bool
}

// NewTextInput creates a new styled text input. charLimit of zero means
// unlimited.
func NewTextInput(placeholder string, charLimit, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	if maxWidth > 0 {
		ti.SetWidth(maxWidth)
	}
	ti.Focus()

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.locked {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.locked {
		if t.accepted {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the input holds only whitespace.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Lock freezes the input and records whether the submission was accepted.
func (t *TextInput) Lock(accepted bool) {
	t.locked = true
	t.accepted = accepted
	t.Model.Blur()
}

// Locked reports whether the input has been submitted.
func (t TextInput) Locked() bool {
	return t.locked
}

// Reset clears the value and unlocks the input for the next answer.
func (t *TextInput) Reset() tea.Cmd {
	t.locked = false
	t.accepted = false
	t.Model.Reset()
	return t.Model.Focus()
}
