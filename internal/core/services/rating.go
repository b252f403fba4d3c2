package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure RatingService implements the interface.
var _ driving.RatingService = (*RatingService)(nil)

// RatingService handles average lookups and single-item rating submission.
type RatingService struct {
	backend driven.SearchBackend
}

// NewRatingService creates a new rating service.
func NewRatingService(backend driven.SearchBackend) *RatingService {
	return &RatingService{backend: backend}
}

// Average returns the current mean star rating of one item.
// An item nobody has rated yet averages 0.
func (s *RatingService) Average(ctx context.Context, id domain.DocID) (float64, error) {
	if id.IsZero() {
		return 0, fmt.Errorf("average rating: empty docID: %w", domain.ErrInvalidInput)
	}

	averages, err := s.backend.AverageRatings(ctx, id)
	if err != nil {
		logger.Warn("Average rating for %s failed: %v", id, err)
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return averages[id], nil
}

// Submit records a rating of 1..5 stars and returns the new mean reported
// by the backend. A receipt without an ok status is a transport failure.
func (s *RatingService) Submit(ctx context.Context, id domain.DocID, stars int) (float64, error) {
	if id.IsZero() {
		return 0, fmt.Errorf("submit rating: empty docID: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidStars(stars) {
		return 0, fmt.Errorf("submit rating: %d stars: %w", stars, domain.ErrInvalidRating)
	}

	logger.Debug("Submitting %d stars for %s", stars, id)
	receipt, err := s.backend.SubmitRating(ctx, id, stars)
	if err != nil {
		logger.Error("Rating %s failed: %v", id, err)
		return 0, fmt.Errorf("submit rating: %w", err)
	}
	if !receipt.Accepted() {
		logger.Error("Rating %s rejected with status %q", id, receipt.Status)
		return 0, fmt.Errorf("submit rating: status %q: %w", receipt.Status, domain.ErrTransportFailure)
	}

	logger.Debug("New average for %s: %.2f", id, receipt.AvgStars)
	return receipt.AvgStars, nil
}
