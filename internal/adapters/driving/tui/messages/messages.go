// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// SearchCompleted carries the result set of a form submission.
type SearchCompleted struct {
	Set domain.ResultSet
	Err error
}

// AverageLoaded carries one row's initial average rating.
// Generation identifies the table rebuild that requested it.
type AverageLoaded struct {
	Generation uint64
	DocID      domain.DocID
	Avg        float64
	Err        error
}

// RatingSubmitted carries the server average after a star rating was sent.
type RatingSubmitted struct {
	Generation uint64
	DocID      domain.DocID
	Avg        float64
	Err        error
}

// FeedbackSubmitted carries the re-ranked set after a relevance-feedback batch.
type FeedbackSubmitted struct {
	Set       domain.ResultSet
	Conflicts []domain.DocID
	Err       error
}

// DetailRequested asks to open the detail view at a navigation location
// such as "detail?docID=2".
type DetailRequested struct {
	Location string
}

// DetailLoaded carries the projection of the cached set for one item.
type DetailLoaded struct {
	DocID  domain.DocID
	Detail domain.Detail
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the form and results view.
	ViewSearch ViewType = iota
	// ViewDetail shows one cached item and its related items.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
