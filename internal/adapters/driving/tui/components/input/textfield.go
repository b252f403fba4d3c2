// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
)

// labelWidth keeps labels of a form aligned.
const labelWidth = 14

// TextField wraps a bubbles textinput with a label.
type TextField struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTextField creates an unfocused text field.
func NewTextField(s *styles.Styles, label, placeholder string) *TextField {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return &TextField{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
}

// Init initialises the field.
func (f *TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *TextField) Update(msg tea.Msg) (*TextField, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input.
func (f *TextField) View() string {
	labelStyle := f.styles.Subtitle
	if f.Focused() {
		labelStyle = f.styles.Focused
	}
	label := labelStyle.Width(labelWidth).Render(f.label)
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Label returns the field label.
func (f *TextField) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *TextField) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *TextField) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *TextField) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *TextField) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *TextField) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the total width of the field.
func (f *TextField) SetWidth(width int) {
	f.width = width
	inputWidth := width - labelWidth - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *TextField) Width() int {
	return f.width
}

// Reset clears the input.
func (f *TextField) Reset() {
	f.textinput.Reset()
}
