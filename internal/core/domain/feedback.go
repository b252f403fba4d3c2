package domain

import "slices"

// Star rating bounds for single-item rating feedback.
const (
	MinStars = 1
	MaxStars = 5
)

// ValidStars reports whether n is an acceptable star rating.
func ValidStars(n int) bool {
	return n >= MinStars && n <= MaxStars
}

// Disposition is the relevance judgement a row's marks amount to.
type Disposition string

// Available dispositions.
const (
	DispositionNone     Disposition = "none"
	DispositionLike     Disposition = "like"
	DispositionDislike  Disposition = "dislike"
	DispositionConflict Disposition = "conflict"
)

// FeedbackMark is the ephemeral like/dislike state of one result row.
// It lives only as long as the rendered list and is cleared after a
// successful batch submission.
type FeedbackMark struct {
	DocID    DocID
	Liked    bool
	Disliked bool
}

// Disposition resolves the two toggles into one judgement.
func (m FeedbackMark) Disposition() Disposition {
	switch {
	case m.Liked && m.Disliked:
		return DispositionConflict
	case m.Liked:
		return DispositionLike
	case m.Disliked:
		return DispositionDislike
	default:
		return DispositionNone
	}
}

// RelevanceFeedbackBatch is the payload of a relevance-feedback submission.
// A DocID appears in at most one of the two sets.
type RelevanceFeedbackBatch struct {
	Relevant    []DocID               `json:"relevants"`
	NonRelevant []DocID               `json:"non-relevants"`
	Fields      map[string]FieldValue `json:"fields"`
}

// IsEmpty reports whether the batch carries no judgements.
func (b RelevanceFeedbackBatch) IsEmpty() bool {
	return len(b.Relevant) == 0 && len(b.NonRelevant) == 0
}

// Contains reports whether id is judged in either set.
func (b RelevanceFeedbackBatch) Contains(id DocID) bool {
	return slices.Contains(b.Relevant, id) || slices.Contains(b.NonRelevant, id)
}
