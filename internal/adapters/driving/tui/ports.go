// Package tui provides an interactive terminal user interface for sercha-media.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries and caches the session's query and results.
	Search driving.SearchService

	// Rating fetches and submits star ratings.
	Rating driving.RatingService

	// Feedback builds and submits relevance feedback batches.
	Feedback driving.FeedbackService

	// Detail projects the cached results into the detail view.
	Detail driving.DetailService

	// Settings supplies the form's genre and actor options. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	rating driving.RatingService,
	feedback driving.FeedbackService,
	detail driving.DetailService,
) *Ports {
	return &Ports{
		Search:   search,
		Rating:   rating,
		Feedback: feedback,
		Detail:   detail,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Rating == nil {
		return ErrMissingRatingService
	}
	if p.Feedback == nil {
		return ErrMissingFeedbackService
	}
	if p.Detail == nil {
		return ErrMissingDetailService
	}
	return nil
}

// formOptions returns the genres and actors the search form offers.
// Without settings the built-in genre list is used and no actors are offered.
func (p *Ports) formOptions() (genres, actors []string) {
	genres = domain.DefaultGenres
	if p.Settings == nil {
		return genres, nil
	}
	settings, err := p.Settings.Get()
	if err != nil || settings == nil {
		return genres, nil
	}
	if len(settings.Form.Genres) > 0 {
		genres = settings.Form.Genres
	}
	return genres, settings.Form.Actors
}
