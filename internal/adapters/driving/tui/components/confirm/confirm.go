// Package confirm provides a blocking yes/no prompt for the TUI.
// While a prompt is visible the owning view routes every key to it.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
)

// Answer is the outcome of a key press on a visible prompt.
type Answer int

// Possible answers.
const (
	// Pending means the key did not answer the prompt.
	Pending Answer = iota
	// Yes confirms.
	Yes
	// No declines.
	No
)

// Dialog is a yes/no prompt.
type Dialog struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	message string
	visible bool
}

// New creates a hidden dialog.
func New(s *styles.Styles, km *keymap.KeyMap) *Dialog {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Dialog{styles: s, keymap: km}
}

// Show displays the prompt with message.
func (d *Dialog) Show(message string) {
	d.message = message
	d.visible = true
}

// Hide removes the prompt.
func (d *Dialog) Hide() {
	d.message = ""
	d.visible = false
}

// Visible reports whether the prompt is shown.
func (d *Dialog) Visible() bool {
	return d.visible
}

// Message returns the prompt text.
func (d *Dialog) Message() string {
	return d.message
}

// Answer interprets a key press. A Yes or No hides the dialog.
func (d *Dialog) Answer(msg tea.KeyMsg) Answer {
	if !d.visible {
		return Pending
	}
	switch {
	case keymap.Matches(msg.String(), d.keymap.Confirm):
		d.Hide()
		return Yes
	case keymap.Matches(msg.String(), d.keymap.Decline):
		d.Hide()
		return No
	default:
		return Pending
	}
}

// View renders the prompt, or nothing when hidden.
func (d *Dialog) View() string {
	if !d.visible {
		return ""
	}
	return d.styles.Border.Padding(0, 1).Render(
		d.styles.Warning.Render(d.message) + d.styles.Muted.Render("  [y/n]"),
	)
}
