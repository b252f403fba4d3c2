package driven

import (
	"context"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// SearchBackend is the request/response contract of the search service.
// Implementations wrap every network or decoding failure in domain.ErrTransportFailure
// and never retry.
type SearchBackend interface {
	// Search runs a query and returns the matches in rank order.
	Search(ctx context.Context, q domain.Query) ([]domain.ResultItem, error)

	// AverageRatings returns the current mean star rating of each requested item.
	// Items without ratings may be absent from the map.
	AverageRatings(ctx context.Context, ids ...domain.DocID) (map[domain.DocID]float64, error)

	// SubmitRating records one star rating and returns the updated mean.
	SubmitRating(ctx context.Context, id domain.DocID, stars int) (domain.RatingReceipt, error)

	// SubmitRelevanceFeedback sends a relevance-feedback batch and returns the re-ranked matches.
	SubmitRelevanceFeedback(ctx context.Context, batch domain.RelevanceFeedbackBatch) ([]domain.ResultItem, error)
}
