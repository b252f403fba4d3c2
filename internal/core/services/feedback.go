package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService accumulates like/dislike marks into relevance-feedback
// batches and owns the session cache writes for feedback responses.
type FeedbackService struct {
	backend driven.SearchBackend
	session *SessionCache
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(backend driven.SearchBackend, session *SessionCache) *FeedbackService {
	return &FeedbackService{
		backend: backend,
		session: session,
	}
}

// BuildBatch scans the marks in row order. Liked rows become relevant,
// disliked rows non-relevant. A row marked both ways is excluded from both
// sets, logged as conflicting feedback and returned in the conflicts slice.
// The batch carries the cached query's fields only, never its filters or boosts.
func (s *FeedbackService) BuildBatch(
	ctx context.Context, marks []domain.FeedbackMark,
) (domain.RelevanceFeedbackBatch, []domain.DocID, error) {
	q, err := s.session.Query(ctx)
	if err != nil {
		return domain.RelevanceFeedbackBatch{}, nil, fmt.Errorf("build feedback batch: %w", err)
	}

	batch := domain.RelevanceFeedbackBatch{
		Relevant:    []domain.DocID{},
		NonRelevant: []domain.DocID{},
		Fields:      q.CloneFields(),
	}
	var conflicts []domain.DocID
	seen := make(map[domain.DocID]bool, len(marks))

	for _, m := range marks {
		if m.DocID.IsZero() || seen[m.DocID] {
			continue
		}
		switch m.Disposition() {
		case domain.DispositionLike:
			batch.Relevant = append(batch.Relevant, m.DocID)
		case domain.DispositionDislike:
			batch.NonRelevant = append(batch.NonRelevant, m.DocID)
		case domain.DispositionConflict:
			conflicts = append(conflicts, m.DocID)
			logger.Warn("%v: %s marked both relevant and non-relevant, excluded", domain.ErrConflictingFeedback, m.DocID)
		case domain.DispositionNone:
			continue
		}
		seen[m.DocID] = true
	}

	logger.Debug("Feedback batch: %d relevant, %d non-relevant, %d conflicts",
		len(batch.Relevant), len(batch.NonRelevant), len(conflicts))
	return batch, conflicts, nil
}

// Submit sends the batch and caches the re-ranked set it returns,
// tagged with the session's query.
func (s *FeedbackService) Submit(ctx context.Context, batch domain.RelevanceFeedbackBatch) (domain.ResultSet, error) {
	logger.Section("Relevance Feedback")
	if batch.IsEmpty() {
		return domain.ResultSet{}, fmt.Errorf("submit feedback: no items marked: %w", domain.ErrInvalidInput)
	}

	items, err := s.backend.SubmitRelevanceFeedback(ctx, batch)
	if err != nil {
		logger.Error("Relevance feedback failed: %v", err)
		return domain.ResultSet{}, fmt.Errorf("submit feedback: %w", err)
	}
	logger.Debug("Received %d re-ranked results", len(items))

	q, err := s.session.Query(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		q = domain.Query{Fields: batch.Fields}.Clone()
	} else if err != nil {
		return domain.ResultSet{}, fmt.Errorf("submit feedback: %w", err)
	}

	set := domain.ResultSet{Query: q, Items: items}
	if set.Items == nil {
		set.Items = []domain.ResultItem{}
	}
	if err := s.session.StoreResults(ctx, set); err != nil {
		return domain.ResultSet{}, fmt.Errorf("submit feedback: %w", err)
	}
	return set, nil
}
