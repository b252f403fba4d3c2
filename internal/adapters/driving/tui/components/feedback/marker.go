// Package feedback provides the per-row like/dislike marker.
// Toggling a mark is local; marks are only sent as part of a relevance
// feedback batch.
package feedback

import (
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// Marker holds the two independent toggles of one row.
type Marker struct {
	docID    domain.DocID
	liked    bool
	disliked bool
}

// NewMarker creates a neutral marker for the given item.
func NewMarker(id domain.DocID) *Marker {
	return &Marker{docID: id}
}

// ToggleLike flips the like mark.
func (m *Marker) ToggleLike() {
	m.liked = !m.liked
}

// ToggleDislike flips the dislike mark.
func (m *Marker) ToggleDislike() {
	m.disliked = !m.disliked
}

// Mark returns the marker state.
func (m *Marker) Mark() domain.FeedbackMark {
	return domain.FeedbackMark{DocID: m.docID, Liked: m.liked, Disliked: m.disliked}
}

// IsMarked reports whether either toggle is on.
func (m *Marker) IsMarked() bool {
	return m.liked || m.disliked
}

// Reset returns the marker to neutral.
func (m *Marker) Reset() {
	m.liked = false
	m.disliked = false
}

// View renders the toggles as "+ -", highlighting the active ones.
func (m *Marker) View(s *styles.Styles) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if m.Mark().Disposition() == domain.DispositionConflict {
		return s.Conflict.Render("+ -")
	}
	like := s.Muted.Render("+")
	if m.liked {
		like = s.Liked.Render("+")
	}
	dislike := s.Muted.Render("-")
	if m.disliked {
		dislike = s.Disliked.Render("-")
	}
	return like + " " + dislike
}
