// Package stars provides the per-row star rating widget.
//
// The widget always displays the average rating, never the submitted vote.
// Selecting a position only asks for confirmation; the vote is sent after
// Confirm and the display changes when the server average arrives.
package stars

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// State is a position in the widget's state machine.
type State int

// Widget states.
const (
	// StateUnrated has no average yet; placeholders are shown.
	StateUnrated State = iota
	// StateAwaitingConfirmation holds a selected position until the user answers.
	StateAwaitingConfirmation
	// StateSubmitting has a vote in flight.
	StateSubmitting
	// StateSettled shows a known average.
	StateSettled
	// StateCancelled is the outcome of declining; it displays like the prior state.
	StateCancelled
)

// String returns the string representation.
func (s State) String() string {
	switch s {
	case StateUnrated:
		return "unrated"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateSubmitting:
		return "submitting"
	case StateSettled:
		return "settled"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Glyphs used to draw star positions.
const (
	GlyphFull        = "★"
	GlyphHalf        = "⯪"
	GlyphEmpty       = "☆"
	GlyphPlaceholder = "·"
)

// Widget is the star rating state machine of one result row.
type Widget struct {
	docID   domain.DocID
	state   State
	prior   State // Unrated or Settled; restored by Decline and Fail
	avg     float64
	pending int
	err     error
	loadErr error
}

// New creates a widget for the given item in the Unrated state.
func New(id domain.DocID) *Widget {
	return &Widget{docID: id, state: StateUnrated, prior: StateUnrated}
}

// DocID returns the item the widget rates.
func (w *Widget) DocID() domain.DocID {
	return w.docID
}

// State returns the current state.
func (w *Widget) State() State {
	return w.state
}

// Average returns the displayed average.
func (w *Widget) Average() float64 {
	return w.avg
}

// Pending returns the selected position while awaiting confirmation or submitting.
func (w *Widget) Pending() int {
	return w.pending
}

// Err returns the last submission failure.
func (w *Widget) Err() error {
	return w.err
}

// LoadErr returns the failure of the initial average lookup, if any.
func (w *Widget) LoadErr() error {
	return w.loadErr
}

// HasAverage reports whether an average has arrived.
func (w *Widget) HasAverage() bool {
	return w.prior == StateSettled
}

// Resolve applies the initial average. It is accepted in every state until
// an average has been applied, so a user may select a star before the row's
// average arrives. A late initial average never overwrites a submission result.
func (w *Widget) Resolve(avg float64) error {
	if w.HasAverage() {
		return w.invalid("resolve")
	}
	w.avg = avg
	w.loadErr = nil
	w.prior = StateSettled
	if w.state == StateUnrated || w.state == StateCancelled {
		w.state = StateSettled
	}
	return nil
}

// ResolveFailed records that the initial average could not be loaded.
// The state is unchanged and placeholders stay until an average arrives.
func (w *Widget) ResolveFailed(err error) error {
	if w.HasAverage() {
		return w.invalid("resolve failed")
	}
	w.loadErr = err
	return nil
}

// Select moves to AwaitingConfirmation with a position of 1..5.
func (w *Widget) Select(stars int) error {
	if !domain.ValidStars(stars) {
		return fmt.Errorf("select %d: %w", stars, domain.ErrInvalidRating)
	}
	switch w.state {
	case StateUnrated, StateSettled, StateCancelled:
		w.pending = stars
		w.err = nil
		w.state = StateAwaitingConfirmation
		return nil
	default:
		return w.invalid("select")
	}
}

// Confirm moves to Submitting and returns what must be sent.
func (w *Widget) Confirm() (domain.DocID, int, error) {
	if w.state != StateAwaitingConfirmation {
		return "", 0, w.invalid("confirm")
	}
	w.state = StateSubmitting
	return w.docID, w.pending, nil
}

// Decline abandons the selection. The display is unchanged.
func (w *Widget) Decline() error {
	if w.state != StateAwaitingConfirmation {
		return w.invalid("decline")
	}
	w.pending = 0
	w.state = StateCancelled
	return nil
}

// Complete settles on the average returned by the server.
func (w *Widget) Complete(avg float64) error {
	if w.state != StateSubmitting {
		return w.invalid("complete")
	}
	w.avg = avg
	w.pending = 0
	w.prior = StateSettled
	w.state = StateSettled
	return nil
}

// Fail abandons the submission and returns to the last settled display.
func (w *Widget) Fail(err error) error {
	if w.state != StateSubmitting {
		return w.invalid("fail")
	}
	w.err = err
	w.pending = 0
	w.state = w.prior
	return nil
}

// Fills returns the fill of each star position for the displayed average.
func (w *Widget) Fills() [domain.StarCount]domain.StarFill {
	return domain.StarFills(w.avg)
}

// View renders the widget. Until an average arrives placeholders are drawn.
func (w *Widget) View(s *styles.Styles) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var b strings.Builder
	if !w.HasAverage() {
		b.WriteString(s.StarEmpty.Render(strings.Repeat(GlyphPlaceholder, domain.StarCount)))
	} else {
		b.WriteString(Render(s, w.avg))
	}

	switch w.state {
	case StateAwaitingConfirmation:
		b.WriteString(s.Warning.Render(fmt.Sprintf(" rate %d?", w.pending)))
	case StateSubmitting:
		b.WriteString(s.Muted.Render(fmt.Sprintf(" sending %d…", w.pending)))
	case StateUnrated, StateSettled, StateCancelled:
	}
	return b.String()
}

// Render draws a static star display for avg.
func Render(s *styles.Styles, avg float64) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var b strings.Builder
	for _, f := range domain.StarFills(avg) {
		switch f {
		case domain.StarFull:
			b.WriteString(s.StarFilled.Render(GlyphFull))
		case domain.StarHalf:
			b.WriteString(s.StarFilled.Render(GlyphHalf))
		default:
			b.WriteString(s.StarEmpty.Render(GlyphEmpty))
		}
	}
	return b.String()
}

func (w *Widget) invalid(event string) error {
	return fmt.Errorf("%s in state %s: %w", event, w.state, domain.ErrInvalidTransition)
}
