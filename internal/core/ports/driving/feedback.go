package driving

import (
	"context"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// FeedbackService handles batched relevance feedback.
type FeedbackService interface {
	// BuildBatch turns the current row marks into a batch carrying the cached
	// query's fields. Rows marked both ways are excluded and returned as conflicts.
	BuildBatch(ctx context.Context, marks []domain.FeedbackMark) (domain.RelevanceFeedbackBatch, []domain.DocID, error)

	// Submit sends the batch and returns the re-ranked set, which replaces the cached one.
	Submit(ctx context.Context, batch domain.RelevanceFeedbackBatch) (domain.ResultSet, error)
}
