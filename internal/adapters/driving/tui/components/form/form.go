// Package form provides the search form component.
// The form edits a working copy of the page's controls; Snapshot hands the
// query builder an independent FormState.
package form

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// optionWindow is how many options of a select are drawn at once.
const optionWindow = 6

var fieldLabels = map[string]string{
	domain.FieldTitle:    "Title",
	domain.FieldOverview: "Overview",
	domain.FieldGenre:    "Genre",
	domain.FieldActors:   "Actors",
	domain.FieldRating:   "Boost rating",
	domain.FieldVotes:    "Boost votes",
}

// Form is the search form.
type Form struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	genres   []string
	actors   []string
	state    domain.FormState
	fields   map[int]*input.TextField
	cursor   map[int]int
	focus    int
	advanced bool
	width    int
}

// New creates a form offering the given genres and actors.
func New(s *styles.Styles, km *keymap.KeyMap, genres, actors []string) *Form {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if len(genres) == 0 {
		genres = domain.DefaultGenres
	}
	f := &Form{
		styles: s,
		keymap: km,
		genres: append([]string(nil), genres...),
		actors: append([]string(nil), actors...),
		width:  80,
	}
	f.Reset()
	return f
}

// Reset restores every control to its default and focuses the first one.
func (f *Form) Reset() {
	f.state = domain.DefaultForm(f.genres, f.actors)
	f.fields = make(map[int]*input.TextField)
	f.cursor = make(map[int]int)
	for i, c := range f.state.Controls {
		if c.Kind == domain.ControlText || c.Kind == domain.ControlNumber {
			field := input.NewTextField(f.styles, label(c), "")
			field.SetWidth(f.width)
			f.fields[i] = field
		}
	}
	f.focus = 0
	f.applyFocus()
}

// Init returns the cursor blink command of the focused field.
func (f *Form) Init() tea.Cmd {
	if field, ok := f.fields[f.focus]; ok {
		return field.Init()
	}
	return nil
}

// Update handles a key press on the focused control.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if field, ok := f.fields[f.focus]; ok {
			_, cmd := field.Update(msg)
			return f, cmd
		}
		return f, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, f.keymap.Advanced):
		f.ToggleAdvanced()
		return f, nil
	case keymap.Matches(k, f.keymap.NextField):
		f.move(1)
		return f, nil
	case keymap.Matches(k, f.keymap.PrevField):
		f.move(-1)
		return f, nil
	}

	if field, ok := f.fields[f.focus]; ok {
		_, cmd := field.Update(msg)
		return f, cmd
	}

	c := &f.state.Controls[f.focus]
	switch {
	case keymap.Matches(k, f.keymap.Toggle):
		f.toggle(c)
	case k == "left" || k == "h":
		f.shiftCursor(c, -1)
	case k == "right" || k == "l":
		f.shiftCursor(c, 1)
	}
	return f, nil
}

// Snapshot returns an independent copy of the current control state.
func (f *Form) Snapshot() domain.FormState {
	controls := make([]domain.Control, len(f.state.Controls))
	for i, c := range f.state.Controls {
		if field, ok := f.fields[i]; ok {
			c.Value = field.Value()
		}
		if c.Options != nil {
			opts := make([]domain.Option, len(c.Options))
			copy(opts, c.Options)
			c.Options = opts
		}
		controls[i] = c
	}
	return domain.FormState{Controls: controls}
}

// ToggleAdvanced shows or hides the boost controls.
// Hidden boost controls keep their state and still take part in the query.
func (f *Form) ToggleAdvanced() {
	f.advanced = !f.advanced
	if !f.advanced && f.state.Controls[f.focus].Boost {
		visible := f.visible()
		f.focus = visible[len(visible)-1]
		f.applyFocus()
	}
}

// Advanced reports whether the boost controls are shown.
func (f *Form) Advanced() bool {
	return f.advanced
}

// Focus returns the index of the focused control.
func (f *Form) Focus() int {
	return f.focus
}

// SetValue sets a text control by field name.
func (f *Form) SetValue(name, value string) {
	for i, c := range f.state.Controls {
		if c.Name == name {
			if field, ok := f.fields[i]; ok {
				field.SetValue(value)
				return
			}
		}
	}
}

// SetWidth sets the rendering width.
func (f *Form) SetWidth(width int) {
	f.width = width
	for _, field := range f.fields {
		field.SetWidth(width)
	}
}

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder
	for _, i := range f.visible() {
		c := f.state.Controls[i]
		if field, ok := f.fields[i]; ok {
			b.WriteString(field.View())
			b.WriteString("\n")
			continue
		}
		b.WriteString(f.renderControl(i, c))
		b.WriteString("\n")
	}
	if !f.advanced {
		b.WriteString(f.styles.Muted.Render("ctrl+a: boost options"))
		b.WriteString("\n")
	}
	return b.String()
}

func (f *Form) renderControl(i int, c domain.Control) string {
	focused := i == f.focus
	name := label(c)
	if c.Kind == domain.ControlRadio {
		name += " match"
	}
	labelStyle := f.styles.Subtitle
	if focused {
		labelStyle = f.styles.Focused
	}
	head := labelStyle.Width(14).Render(name)

	var body string
	switch c.Kind {
	case domain.ControlCheckbox:
		body = checkbox(c.Checked)
	case domain.ControlRadio:
		parts := make([]string, len(c.Options))
		for j, opt := range c.Options {
			mark := "( )"
			if opt.Selected {
				mark = "(•)"
			}
			parts[j] = mark + " " + opt.Label
		}
		body = strings.Join(parts, "  ")
	case domain.ControlMultiSelect:
		body = f.renderOptions(i, c, focused)
	}
	if focused {
		body = f.styles.Selected.Render(body)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, head, body)
}

func (f *Form) renderOptions(i int, c domain.Control, focused bool) string {
	if len(c.Options) == 0 {
		return f.styles.Muted.Render("(none configured)")
	}
	cur := f.cursor[i]
	start := cur - optionWindow/2
	if start > len(c.Options)-optionWindow {
		start = len(c.Options) - optionWindow
	}
	if start < 0 {
		start = 0
	}
	end := start + optionWindow
	if end > len(c.Options) {
		end = len(c.Options)
	}

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, "‹")
	}
	for j := start; j < end; j++ {
		opt := c.Options[j]
		text := checkbox(opt.Selected) + " " + opt.Label
		if focused && j == cur {
			text = f.styles.Focused.Render(text)
		}
		parts = append(parts, text)
	}
	if end < len(c.Options) {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}

func (f *Form) toggle(c *domain.Control) {
	switch c.Kind {
	case domain.ControlCheckbox:
		c.Checked = !c.Checked
	case domain.ControlMultiSelect:
		if len(c.Options) == 0 {
			return
		}
		cur := f.cursor[f.focus]
		c.Options[cur].Selected = !c.Options[cur].Selected
	case domain.ControlRadio:
		f.shiftCursor(c, 1)
	}
}

// shiftCursor moves the option cursor of a select, or the choice of a radio.
func (f *Form) shiftCursor(c *domain.Control, delta int) {
	n := len(c.Options)
	if n == 0 {
		return
	}
	switch c.Kind {
	case domain.ControlMultiSelect:
		cur := f.cursor[f.focus] + delta
		if cur < 0 {
			cur = 0
		}
		if cur >= n {
			cur = n - 1
		}
		f.cursor[f.focus] = cur
	case domain.ControlRadio:
		chosen := 0
		for j, opt := range c.Options {
			if opt.Selected {
				chosen = j
			}
		}
		chosen = (chosen + delta + n) % n
		for j := range c.Options {
			c.Options[j].Selected = j == chosen
		}
	}
}

func (f *Form) move(delta int) {
	visible := f.visible()
	pos := 0
	for j, i := range visible {
		if i == f.focus {
			pos = j
		}
	}
	pos = (pos + delta + len(visible)) % len(visible)
	f.focus = visible[pos]
	f.applyFocus()
}

func (f *Form) applyFocus() {
	for i, field := range f.fields {
		if i == f.focus {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

func (f *Form) visible() []int {
	idx := make([]int, 0, len(f.state.Controls))
	for i, c := range f.state.Controls {
		if c.Boost && !f.advanced {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func label(c domain.Control) string {
	if l, ok := fieldLabels[c.Name]; ok {
		return l
	}
	return c.Name
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
