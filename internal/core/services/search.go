package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService submits queries to the backend and owns the session cache
// writes for search responses.
type SearchService struct {
	backend driven.SearchBackend
	session *SessionCache
}

// NewSearchService creates a new search service.
func NewSearchService(backend driven.SearchBackend, session *SessionCache) *SearchService {
	return &SearchService{
		backend: backend,
		session: session,
	}
}

// Search caches the query, runs it and caches the resulting set.
// The query is cached before the request goes out so that relevance
// feedback on the returned list resubmits exactly these fields.
func (s *SearchService) Search(ctx context.Context, q domain.Query) (domain.ResultSet, error) {
	logger.Section("Search")
	q = q.Clone()
	logger.Debug("Fields: %v", q.FieldNames())
	logger.Debug("Genre: %s %v, Actors: %s %v",
		q.GenreFilter.Operator, q.GenreFilter.Values, q.ActorFilter.Operator, q.ActorFilter.Values)

	if err := s.session.StoreQuery(ctx, q); err != nil {
		return domain.ResultSet{}, fmt.Errorf("search: %w", err)
	}

	items, err := s.backend.Search(ctx, q)
	if err != nil {
		logger.Error("Search failed: %v", err)
		return domain.ResultSet{}, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Received %d results", len(items))

	set := domain.ResultSet{Query: q, Items: items}
	if set.Items == nil {
		set.Items = []domain.ResultItem{}
	}
	if err := s.session.StoreResults(ctx, set); err != nil {
		return domain.ResultSet{}, fmt.Errorf("search: %w", err)
	}
	return set, nil
}

// LastQuery returns the query of the current session.
func (s *SearchService) LastQuery(ctx context.Context) (domain.Query, error) {
	return s.session.Query(ctx)
}
