package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingRatingService is returned when the rating service is not provided.
var ErrMissingRatingService = errors.New("tui: rating service is required")

// ErrMissingFeedbackService is returned when the feedback service is not provided.
var ErrMissingFeedbackService = errors.New("tui: feedback service is required")

// ErrMissingDetailService is returned when the detail service is not provided.
var ErrMissingDetailService = errors.New("tui: detail service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
