// Package list provides the result table component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/feedback"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/stars"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// Row is one rendered result with its interactive widgets.
type Row struct {
	Item   domain.ResultItem
	Stars  *stars.Widget
	Marker *feedback.Marker
}

// ResultTable displays a result set as a navigable table.
// Every Rebuild starts a new generation; asynchronous updates tagged with an
// older generation are discarded.
type ResultTable struct {
	rows       []*Row
	index      map[domain.DocID]int
	generation uint64
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewResultTable creates an empty table.
func NewResultTable(s *styles.Styles) *ResultTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultTable{
		index:  make(map[domain.DocID]int),
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the table.
func (t *ResultTable) Init() tea.Cmd {
	return nil
}

// Update handles table navigation messages.
func (t *ResultTable) Update(msg tea.Msg) (*ResultTable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			t.MoveUp()
		case "down", "j":
			t.MoveDown()
		}
	}
	return t, nil
}

// Rebuild replaces every row with the items of set, in order, and returns
// the new generation. Widgets start unrated and markers start neutral.
func (t *ResultTable) Rebuild(set domain.ResultSet) uint64 {
	t.generation++
	t.rows = make([]*Row, 0, len(set.Items))
	t.index = make(map[domain.DocID]int, len(set.Items))
	for _, item := range set.Items {
		if _, dup := t.index[item.DocID]; dup {
			continue
		}
		t.index[item.DocID] = len(t.rows)
		t.rows = append(t.rows, &Row{
			Item:   item,
			Stars:  stars.New(item.DocID),
			Marker: feedback.NewMarker(item.DocID),
		})
	}
	t.selected = 0
	return t.generation
}

// Generation returns the current generation.
func (t *ResultTable) Generation() uint64 {
	return t.generation
}

// Row returns the row of the given item in the current generation.
func (t *ResultTable) Row(id domain.DocID) (*Row, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// ApplyAverage resolves the initial average of one row.
// It reports false when the update is stale or the row cannot take it.
func (t *ResultTable) ApplyAverage(gen uint64, id domain.DocID, avg float64) bool {
	if gen != t.generation {
		return false
	}
	row, ok := t.Row(id)
	if !ok {
		return false
	}
	if err := row.Stars.Resolve(avg); err != nil {
		return false
	}
	row.Item.AvgStars = avg
	return true
}

// FailAverage records a failed average lookup on one row.
// It reports false when the update is stale or the row already has an average.
func (t *ResultTable) FailAverage(gen uint64, id domain.DocID, err error) bool {
	if gen != t.generation {
		return false
	}
	row, ok := t.Row(id)
	if !ok {
		return false
	}
	return row.Stars.ResolveFailed(err) == nil
}

// ApplyRating completes or fails the pending submission of one row.
// It reports false when the update is stale or no submission is pending.
func (t *ResultTable) ApplyRating(gen uint64, id domain.DocID, avg float64, submitErr error) bool {
	if gen != t.generation {
		return false
	}
	row, ok := t.Row(id)
	if !ok {
		return false
	}
	if submitErr != nil {
		return row.Stars.Fail(submitErr) == nil
	}
	if err := row.Stars.Complete(avg); err != nil {
		return false
	}
	row.Item.AvgStars = avg
	return true
}

// DocIDs returns the identifiers of the current rows in display order.
func (t *ResultTable) DocIDs() []domain.DocID {
	ids := make([]domain.DocID, len(t.rows))
	for i, row := range t.rows {
		ids[i] = row.Item.DocID
	}
	return ids
}

// Marks returns the marks of every marked row in display order.
func (t *ResultTable) Marks() []domain.FeedbackMark {
	marks := make([]domain.FeedbackMark, 0, len(t.rows))
	for _, row := range t.rows {
		if row.Marker.IsMarked() {
			marks = append(marks, row.Marker.Mark())
		}
	}
	return marks
}

// ClearMarks resets every marker to neutral.
func (t *ResultTable) ClearMarks() {
	for _, row := range t.rows {
		row.Marker.Reset()
	}
}

// SelectedRow returns the selected row, or nil if the table is empty.
func (t *ResultTable) SelectedRow() *Row {
	if len(t.rows) == 0 || t.selected < 0 || t.selected >= len(t.rows) {
		return nil
	}
	return t.rows[t.selected]
}

// Selected returns the index of the selected row.
func (t *ResultTable) Selected() int {
	return t.selected
}

// MoveUp moves selection up.
func (t *ResultTable) MoveUp() {
	if t.selected > 0 {
		t.selected--
	}
}

// MoveDown moves selection down.
func (t *ResultTable) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
	}
}

// SetDimensions sets the component dimensions.
func (t *ResultTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}

// Count returns the number of rows.
func (t *ResultTable) Count() int {
	return len(t.rows)
}

// IsEmpty returns whether the table has no rows.
func (t *ResultTable) IsEmpty() bool {
	return len(t.rows) == 0
}

// View renders the table.
func (t *ResultTable) View() string {
	if len(t.rows) == 0 {
		return t.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(t.rows)*2+2)
	lines = append(lines, t.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(t.rows))), "")

	// Each row takes two lines.
	visibleCount := (t.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}
	start := 0
	if t.selected >= visibleCount {
		start = t.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, t.renderRow(i, t.rows[i]))
	}
	return strings.Join(lines, "\n")
}

func (t *ResultTable) renderRow(index int, row *Row) string {
	indicator := "  "
	if index == t.selected {
		indicator = "> "
	}

	title := row.Item.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := t.width - 36
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len([]rune(title)) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen-3]) + "..."
	}

	text := fmt.Sprintf("%s%-*s", indicator, maxTitleLen, title)
	if index == t.selected {
		text = t.styles.Selected.Render(text)
	} else {
		text = t.styles.Normal.Render(text)
	}
	titleLine := text + "  " + row.Stars.View(t.styles) + "  " + row.Marker.View(t.styles)

	meta := strings.TrimSpace(fmt.Sprintf("%s %s  %s", row.Item.Runtime, row.Item.Certificate, strings.Join(row.Item.Genres, ", ")))
	if err := row.Stars.Err(); err != nil {
		return titleLine + "\n" + t.styles.Error.Render("    rating failed: "+err.Error())
	}
	if err := row.Stars.LoadErr(); err != nil {
		return titleLine + "\n" + t.styles.Error.Render("    average unavailable: "+err.Error())
	}
	return titleLine + "\n" + t.styles.Muted.Render("    "+meta)
}
