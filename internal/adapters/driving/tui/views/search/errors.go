package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoRatingService indicates that no rating service was provided.
	ErrNoRatingService = errors.New("rating service is required")

	// ErrNoFeedbackService indicates that no feedback service was provided.
	ErrNoFeedbackService = errors.New("feedback service is required")
)
