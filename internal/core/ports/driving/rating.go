package driving

import (
	"context"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// RatingService handles single-item star rating feedback.
type RatingService interface {
	// Average returns the current mean star rating of one item.
	Average(ctx context.Context, id domain.DocID) (float64, error)

	// Submit records a rating of 1..5 stars and returns the new mean.
	Submit(ctx context.Context, id domain.DocID, stars int) (float64, error)
}
