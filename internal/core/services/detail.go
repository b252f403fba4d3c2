package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure DetailService implements the interface.
var _ driving.DetailService = (*DetailService)(nil)

// DetailService is a read-only projection of the cached result set.
type DetailService struct {
	session *SessionCache
}

// NewDetailService creates a new detail service.
func NewDetailService(session *SessionCache) *DetailService {
	return &DetailService{session: session}
}

// Detail returns the cached item with the given id as the primary item and
// every other cached item, in list order, as related.
func (s *DetailService) Detail(ctx context.Context, id domain.DocID) (domain.Detail, error) {
	set, err := s.session.Results(ctx)
	if err != nil {
		logger.Debug("Detail %s: no cached results: %v", id, err)
		return domain.Detail{}, fmt.Errorf("detail %s: %w", id, err)
	}

	primary, related, ok := set.Partition(id)
	if !ok {
		logger.Debug("Detail %s: not in %d cached results", id, set.Len())
		return domain.Detail{}, fmt.Errorf("detail %s: %w", id, domain.ErrNotFound)
	}
	return domain.Detail{Primary: primary, Related: related}, nil
}
