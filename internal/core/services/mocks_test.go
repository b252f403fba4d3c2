package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
)

// mockBackend implements driven.SearchBackend for testing.
type mockBackend struct {
	mu sync.Mutex

	items     []domain.ResultItem
	searchErr error

	averages   map[domain.DocID]float64
	averageErr error

	receipt   domain.RatingReceipt
	rateErr   error
	feedback  []domain.ResultItem
	feedErr   error
	lastQuery domain.Query
	lastBatch *domain.RelevanceFeedbackBatch
	lastStars int
	calls     int
}

var _ driven.SearchBackend = (*mockBackend)(nil)

func (m *mockBackend) Search(_ context.Context, q domain.Query) ([]domain.ResultItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.items, nil
}

func (m *mockBackend) AverageRatings(_ context.Context, _ ...domain.DocID) (map[domain.DocID]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.averageErr != nil {
		return nil, m.averageErr
	}
	return m.averages, nil
}

func (m *mockBackend) SubmitRating(_ context.Context, _ domain.DocID, stars int) (domain.RatingReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastStars = stars
	if m.rateErr != nil {
		return domain.RatingReceipt{}, m.rateErr
	}
	return m.receipt, nil
}

func (m *mockBackend) SubmitRelevanceFeedback(
	_ context.Context, batch domain.RelevanceFeedbackBatch,
) ([]domain.ResultItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastBatch = &batch
	if m.feedErr != nil {
		return nil, m.feedErr
	}
	return m.feedback, nil
}

// failingSessionStore fails every call with err.
type failingSessionStore struct {
	err error
}

var _ driven.SessionStore = (*failingSessionStore)(nil)

func (f *failingSessionStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingSessionStore) Put(context.Context, string, []byte) error   { return f.err }
func (f *failingSessionStore) Clear(context.Context) error                 { return f.err }
func (f *failingSessionStore) Close() error                                { return nil }

func sampleItems() []domain.ResultItem {
	return []domain.ResultItem{
		{DocID: "1", Title: "Breaking Bad", Genres: []string{"Crime", "Drama"}, Actors: []string{"Bryan Cranston"}, AvgStars: 4.5},
		{DocID: "2", Title: "Better Call Saul", Genres: []string{"Crime"}, Actors: []string{"Bob Odenkirk"}, AvgStars: 4},
		{DocID: "3", Title: "The Wire", Genres: []string{"Crime"}, Actors: []string{"Dominic West"}},
	}
}

func sampleQuery() domain.Query {
	return domain.Query{
		Fields: map[string]domain.FieldValue{
			domain.FieldTitle:    domain.TextValue("bad"),
			domain.FieldOverview: domain.TextValue(""),
		},
		GenreFilter: domain.FacetFilter{Operator: domain.OperatorOr, Values: []string{"Crime"}},
		ActorFilter: domain.FacetFilter{Operator: domain.OperatorAnd, Values: []string{}},
		Boost:       map[string]float64{domain.FieldRating: 1, domain.FieldVotes: 0},
	}
}
