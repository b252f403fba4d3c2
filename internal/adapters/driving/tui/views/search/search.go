// Package search provides the main search view for the TUI: the query form,
// the result table with its star and feedback widgets, and the rating prompt.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/form"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/core/services"
)

// Services groups the driving ports the search view calls.
type Services struct {
	Search   driving.SearchService
	Rating   driving.RatingService
	Feedback driving.FeedbackService
}

// promptKind says what a visible confirmation prompt will send.
type promptKind int

const (
	promptRating promptKind = iota
	promptFeedback
)

// pendingPrompt ties a visible confirmation prompt to the table generation
// it was raised for. docID is set for rating prompts only.
type pendingPrompt struct {
	kind       promptKind
	generation uint64
	docID      domain.DocID
}

// View represents the search view with form, result table and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *form.Form
	table     *list.ResultTable
	statusbar *status.Bar
	dialog    *confirm.Dialog

	services Services
	ctx      context.Context

	width     int
	height    int
	ready     bool
	err       error
	focusForm bool // true = form mode (editing), false = results mode (navigating)
	pending   *pendingPrompt
	inFlight  bool
}

// NewView creates a new search view. Genres and actors populate the form's
// facet selects.
func NewView(s *styles.Styles, km *keymap.KeyMap, svc Services, genres, actors []string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		form:      form.New(s, km, genres, actors),
		table:     list.NewResultTable(s),
		statusbar: status.NewBar(s, km),
		dialog:    confirm.New(s, km),
		services:  svc,
		ctx:       context.Background(),
		width:     80,
		height:    24,
		focusForm: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.form.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		return v, v.handleSearchCompleted(msg)

	case messages.AverageLoaded:
		if msg.Err != nil {
			if v.table.FailAverage(msg.Generation, msg.DocID, msg.Err) {
				v.statusbar.SetMessage(fmt.Sprintf("Average rating unavailable for %s: %v", msg.DocID, msg.Err))
			}
			return v, nil
		}
		v.table.ApplyAverage(msg.Generation, msg.DocID, msg.Avg)
		return v, nil

	case messages.RatingSubmitted:
		v.handleRatingSubmitted(msg)
		return v, nil

	case messages.FeedbackSubmitted:
		return v, v.handleFeedbackSubmitted(msg)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.focusForm {
		var cmd tea.Cmd
		v.form, cmd = v.form.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.dialog.Visible() {
		return v.handleDialogKey(msg)
	}
	if v.focusForm {
		return v.handleFormKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		if v.inFlight {
			return v, nil
		}
		q, err := services.BuildQuery(v.form.Snapshot())
		if err != nil {
			v.setError(err)
			return v, nil
		}
		v.err = nil
		v.inFlight = true
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage("")
		return v, v.performSearch(q)

	case msg.Type == tea.KeyEsc:
		if !v.table.IsEmpty() {
			v.showResults()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.table.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.table.MoveDown()
	case keymap.Matches(k, v.keymap.Rate):
		n, _ := strconv.Atoi(k)
		v.selectRating(n)
	case keymap.Matches(k, v.keymap.Like):
		if row := v.table.SelectedRow(); row != nil {
			row.Marker.ToggleLike()
		}
	case keymap.Matches(k, v.keymap.Dislike):
		if row := v.table.SelectedRow(); row != nil {
			row.Marker.ToggleDislike()
		}
	case keymap.Matches(k, v.keymap.Refresh):
		v.refresh()
	case keymap.Matches(k, v.keymap.Select):
		if row := v.table.SelectedRow(); row != nil {
			location := domain.DetailLocation(row.Item.DocID)
			return v, func() tea.Msg {
				return messages.DetailRequested{Location: location}
			}
		}
	case keymap.Matches(k, v.keymap.NewSearch), keymap.Matches(k, v.keymap.Back):
		v.showForm()
	}
	return v, nil
}

func (v *View) handleDialogKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	answer := v.dialog.Answer(msg)
	if answer == confirm.Pending || v.pending == nil {
		return v, nil
	}
	p := v.pending
	v.pending = nil
	v.statusbar.SetState(status.StateResults)

	if p.kind == promptFeedback {
		return v, v.answerFeedback(p, answer)
	}

	row, ok := v.table.Row(p.docID)
	if !ok || p.generation != v.table.Generation() {
		return v, nil
	}
	if answer == confirm.No {
		_ = row.Stars.Decline()
		return v, nil
	}

	id, stars, err := row.Stars.Confirm()
	if err != nil {
		v.setError(err)
		return v, nil
	}
	v.statusbar.SetState(status.StateSubmitting)
	v.statusbar.SetMessage("Sending rating...")
	return v, v.submitRating(p.generation, id, stars)
}

// selectRating opens the confirmation prompt for the selected row.
func (v *View) selectRating(stars int) {
	row := v.table.SelectedRow()
	if row == nil {
		return
	}
	if err := row.Stars.Select(stars); err != nil {
		v.statusbar.SetMessage("Rating already in progress")
		return
	}
	v.pending = &pendingPrompt{kind: promptRating, generation: v.table.Generation(), docID: row.Item.DocID}
	v.dialog.Show(fmt.Sprintf("Rate %q %d of %d stars?", row.Item.Title, stars, domain.StarCount))
	v.statusbar.SetState(status.StateConfirm)
}

// refresh asks to send the current marks as relevance feedback.
func (v *View) refresh() {
	if v.inFlight {
		return
	}
	marks := v.table.Marks()
	if len(marks) == 0 {
		v.statusbar.SetMessage("Mark results with l or d first")
		return
	}
	v.pending = &pendingPrompt{kind: promptFeedback, generation: v.table.Generation()}
	v.dialog.Show(fmt.Sprintf("Send feedback for %d marked %s?", len(marks), plural(len(marks), "result")))
	v.statusbar.SetState(status.StateConfirm)
}

// answerFeedback sends the marks as they are when the prompt is accepted.
// Declining leaves every mark in place.
func (v *View) answerFeedback(p *pendingPrompt, answer confirm.Answer) tea.Cmd {
	if answer != confirm.Yes || p.generation != v.table.Generation() || v.inFlight {
		return nil
	}
	marks := v.table.Marks()
	if len(marks) == 0 {
		return nil
	}
	v.inFlight = true
	v.statusbar.SetState(status.StateSubmitting)
	v.statusbar.SetMessage("Refreshing results...")
	return v.submitFeedback(marks)
}

// performSearch executes a search and returns the result set.
func (v *View) performSearch(q domain.Query) tea.Cmd {
	svc := v.services.Search
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Err: ErrNoSearchService}
		}
		set, err := svc.Search(ctx, q)
		return messages.SearchCompleted{Set: set, Err: err}
	}
}

// fetchAverages issues one average request per row, tagged with gen.
func (v *View) fetchAverages(gen uint64) tea.Cmd {
	svc := v.services.Rating
	if svc == nil {
		return nil
	}
	ctx := v.ctx
	ids := v.table.DocIDs()
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, func() tea.Msg {
			avg, err := svc.Average(ctx, id)
			return messages.AverageLoaded{Generation: gen, DocID: id, Avg: avg, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// submitRating sends one rating and reports the server's new average.
func (v *View) submitRating(gen uint64, id domain.DocID, stars int) tea.Cmd {
	svc := v.services.Rating
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.RatingSubmitted{Generation: gen, DocID: id, Err: ErrNoRatingService}
		}
		avg, err := svc.Submit(ctx, id, stars)
		return messages.RatingSubmitted{Generation: gen, DocID: id, Avg: avg, Err: err}
	}
}

// submitFeedback builds a batch from marks and sends it.
func (v *View) submitFeedback(marks []domain.FeedbackMark) tea.Cmd {
	svc := v.services.Feedback
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.FeedbackSubmitted{Err: ErrNoFeedbackService}
		}
		batch, conflicts, err := svc.BuildBatch(ctx, marks)
		if err != nil {
			return messages.FeedbackSubmitted{Conflicts: conflicts, Err: err}
		}
		set, err := svc.Submit(ctx, batch)
		return messages.FeedbackSubmitted{Set: set, Conflicts: conflicts, Err: err}
	}
}

// handleSearchCompleted replaces the table. A failed search keeps the
// previous results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) tea.Cmd {
	v.inFlight = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return nil
	}
	v.err = nil
	v.statusbar.SetMessage("")
	cmd := v.replaceResults(msg.Set)
	v.showResults()
	return cmd
}

func (v *View) handleRatingSubmitted(msg messages.RatingSubmitted) {
	if !v.table.ApplyRating(msg.Generation, msg.DocID, msg.Avg, msg.Err) {
		return
	}
	if msg.Err != nil {
		v.setError(fmt.Errorf("rating not saved: %w", msg.Err))
		return
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("Rating saved")
}

func (v *View) handleFeedbackSubmitted(msg messages.FeedbackSubmitted) tea.Cmd {
	v.inFlight = false
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrInvalidInput) && len(msg.Conflicts) > 0 {
			v.statusbar.SetState(status.StateResults)
			v.statusbar.SetMessage(conflictNote(len(msg.Conflicts)) + "; nothing to send")
			return nil
		}
		v.setError(msg.Err)
		return nil
	}
	v.err = nil
	cmd := v.replaceResults(msg.Set)
	note := "Results refreshed"
	if len(msg.Conflicts) > 0 {
		note += "; " + conflictNote(len(msg.Conflicts))
	}
	v.statusbar.SetMessage(note)
	return cmd
}

// replaceResults rebuilds the table and starts the average requests.
func (v *View) replaceResults(set domain.ResultSet) tea.Cmd {
	gen := v.table.Rebuild(set)
	v.pending = nil
	v.dialog.Hide()
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(v.table.Count())
	return v.fetchAverages(gen)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func conflictNote(n int) string {
	if n == 1 {
		return "1 item marked both ways was ignored"
	}
	return fmt.Sprintf("%d items marked both ways were ignored", n)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) showResults() {
	v.focusForm = false
	v.statusbar.SetState(status.StateResults)
}

func (v *View) showForm() {
	v.focusForm = true
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Sercha Media"), "")

	if v.focusForm {
		sections = append(sections, v.form.View())
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if !v.focusForm || !v.table.IsEmpty() {
		sections = append(sections, v.table.View())
	}

	if v.dialog.Visible() {
		sections = append(sections, "", v.dialog.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.form.SetWidth(width)
	v.table.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Form returns the search form.
func (v *View) Form() *form.Form {
	return v.form
}

// Table returns the result table.
func (v *View) Table() *list.ResultTable {
	return v.table
}

// Dialog returns the rating prompt.
func (v *View) Dialog() *confirm.Dialog {
	return v.dialog
}

// StatusBar returns the status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// FormFocused returns whether the form has focus.
func (v *View) FormFocused() bool {
	return v.focusForm
}

// CapturesKeys reports whether printable keys belong to the view, so the
// application must not treat them as global shortcuts.
func (v *View) CapturesKeys() bool {
	return v.focusForm || v.dialog.Visible()
}

// Reset returns the view to an empty form.
func (v *View) Reset() {
	v.focusForm = true
	v.form.Reset()
	v.table.Rebuild(domain.ResultSet{})
	v.pending = nil
	v.dialog.Hide()
	v.inFlight = false
	v.err = nil
	v.statusbar.Clear()
}
