package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

func newFeedbackFixture(t *testing.T, backend *mockBackend) (*FeedbackService, *SessionCache) {
	t.Helper()
	cache := NewSessionCache(memory.NewSessionStore())
	require.NoError(t, cache.StoreQuery(context.Background(), sampleQuery()))
	return NewFeedbackService(backend, cache), cache
}

func TestFeedbackService_BuildBatch(t *testing.T) {
	svc, _ := newFeedbackFixture(t, &mockBackend{})
	marks := []domain.FeedbackMark{
		{DocID: "1", Liked: true},
		{DocID: "2", Disliked: true},
		{DocID: "3"},
		{DocID: "4", Liked: true},
	}

	batch, conflicts, err := svc.BuildBatch(context.Background(), marks)

	require.NoError(t, err)
	assert.Equal(t, []domain.DocID{"1", "4"}, batch.Relevant)
	assert.Equal(t, []domain.DocID{"2"}, batch.NonRelevant)
	assert.Empty(t, conflicts)
	assert.Equal(t, sampleQuery().Fields, batch.Fields)
}

func TestFeedbackService_BuildBatch_ConflictsExcluded(t *testing.T) {
	svc, _ := newFeedbackFixture(t, &mockBackend{})
	marks := []domain.FeedbackMark{
		{DocID: "1", Liked: true, Disliked: true},
		{DocID: "2", Liked: true},
	}

	batch, conflicts, err := svc.BuildBatch(context.Background(), marks)

	require.NoError(t, err)
	assert.Equal(t, []domain.DocID{"1"}, conflicts)
	assert.False(t, batch.Contains("1"))
	assert.Equal(t, []domain.DocID{"2"}, batch.Relevant)
	assert.Empty(t, batch.NonRelevant)
}

func TestFeedbackService_BuildBatch_RelevantAndNonRelevantDisjoint(t *testing.T) {
	svc, _ := newFeedbackFixture(t, &mockBackend{})
	marks := []domain.FeedbackMark{
		{DocID: "1", Liked: true},
		{DocID: "1", Disliked: true},
		{DocID: "2", Disliked: true},
		{DocID: "", Liked: true},
	}

	batch, _, err := svc.BuildBatch(context.Background(), marks)

	require.NoError(t, err)
	for _, id := range batch.Relevant {
		assert.NotContains(t, batch.NonRelevant, id)
	}
	assert.Equal(t, []domain.DocID{"1"}, batch.Relevant)
	assert.Equal(t, []domain.DocID{"2"}, batch.NonRelevant)
}

func TestFeedbackService_BuildBatch_FieldsOnly(t *testing.T) {
	svc, _ := newFeedbackFixture(t, &mockBackend{})

	batch, _, err := svc.BuildBatch(context.Background(), []domain.FeedbackMark{{DocID: "1", Liked: true}})

	require.NoError(t, err)
	assert.NotContains(t, batch.Fields, domain.FieldGenre)
	assert.NotContains(t, batch.Fields, "boost")
	assert.Len(t, batch.Fields, len(sampleQuery().Fields))
}

func TestFeedbackService_BuildBatch_NoCachedQuery(t *testing.T) {
	svc := NewFeedbackService(&mockBackend{}, NewSessionCache(memory.NewSessionStore()))

	_, _, err := svc.BuildBatch(context.Background(), []domain.FeedbackMark{{DocID: "1", Liked: true}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeedbackService_Submit(t *testing.T) {
	reranked := []domain.ResultItem{{DocID: "3"}, {DocID: "1"}}
	backend := &mockBackend{feedback: reranked}
	svc, cache := newFeedbackFixture(t, backend)
	batch := domain.RelevanceFeedbackBatch{
		Relevant:    []domain.DocID{"1"},
		NonRelevant: []domain.DocID{},
		Fields:      sampleQuery().Fields,
	}

	set, err := svc.Submit(context.Background(), batch)

	require.NoError(t, err)
	assert.Equal(t, reranked, set.Items)
	assert.Equal(t, sampleQuery(), set.Query)
	require.NotNil(t, backend.lastBatch)
	assert.Equal(t, batch, *backend.lastBatch)

	cached, err := cache.Results(context.Background())
	require.NoError(t, err)
	assert.Equal(t, set, cached)
}

func TestFeedbackService_Submit_EmptyBatchRejected(t *testing.T) {
	backend := &mockBackend{}
	svc, _ := newFeedbackFixture(t, backend)

	_, err := svc.Submit(context.Background(), domain.RelevanceFeedbackBatch{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, backend.calls)
}

func TestFeedbackService_Submit_FailureLeavesCacheUntouched(t *testing.T) {
	backend := &mockBackend{feedErr: domain.ErrTransportFailure}
	svc, cache := newFeedbackFixture(t, backend)
	previous := domain.ResultSet{Query: sampleQuery(), Items: sampleItems()}
	require.NoError(t, cache.StoreResults(context.Background(), previous))

	_, err := svc.Submit(context.Background(), domain.RelevanceFeedbackBatch{Relevant: []domain.DocID{"1"}})

	assert.ErrorIs(t, err, domain.ErrTransportFailure)
	cached, err := cache.Results(context.Background())
	require.NoError(t, err)
	assert.Equal(t, previous, cached)
}

func TestFeedbackService_Submit_WithoutCachedQueryUsesBatchFields(t *testing.T) {
	backend := &mockBackend{feedback: sampleItems()}
	svc := NewFeedbackService(backend, NewSessionCache(memory.NewSessionStore()))
	fields := map[string]domain.FieldValue{domain.FieldTitle: domain.TextValue("x")}

	set, err := svc.Submit(context.Background(), domain.RelevanceFeedbackBatch{
		NonRelevant: []domain.DocID{"2"},
		Fields:      fields,
	})

	require.NoError(t, err)
	assert.Equal(t, fields, set.Query.Fields)
}
