package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDialog_HiddenByDefault(t *testing.T) {
	d := New(nil, nil)

	assert.False(t, d.Visible())
	assert.Empty(t, d.View())
	assert.Equal(t, Pending, d.Answer(key("y")))
}

func TestDialog_Answers(t *testing.T) {
	tests := []struct {
		key  string
		want Answer
	}{
		{"y", Yes},
		{"Y", Yes},
		{"enter", Yes},
		{"n", No},
		{"N", No},
		{"esc", No},
		{"x", Pending},
		{"3", Pending},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := New(nil, nil)
			d.Show("Rate Fargo 4 stars?")

			got := d.Answer(key(tt.key))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == Pending, d.Visible())
		})
	}
}

func TestDialog_View(t *testing.T) {
	d := New(nil, nil)
	d.Show("Submit feedback for 2 items?")

	assert.Equal(t, "Submit feedback for 2 items?", d.Message())
	assert.Contains(t, d.View(), "Submit feedback for 2 items?")
	assert.Contains(t, d.View(), "[y/n]")

	d.Hide()
	assert.Empty(t, d.Message())
}
