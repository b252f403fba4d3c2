package detail

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// MockDetailService implements driving.DetailService for testing.
type MockDetailService struct {
	DetailFunc func(ctx context.Context, id domain.DocID) (domain.Detail, error)
}

func (m *MockDetailService) Detail(ctx context.Context, id domain.DocID) (domain.Detail, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	return domain.Detail{}, domain.ErrNotFound
}

func testDetail() domain.Detail {
	return domain.Detail{
		Primary: domain.ResultItem{
			DocID: "0", Title: "Breaking Bad", Runtime: "(2008–2013)", Certificate: "18",
			Genres: []string{"Crime", "Drama"}, Actors: []string{"Bryan Cranston", "Aaron Paul"},
			Rating: 9.5, Votes: 1552311, Overview: "A chemistry teacher turns to crime.", AvgStars: 3.5,
		},
		Related: []domain.ResultItem{
			{DocID: "1", Title: "Fargo", Actors: []string{"Billy Bob Thornton"}, Votes: 12345, Poster: "https://img/fargo.jpg"},
			{DocID: "2", Title: "Sherlock", Votes: 900},
		},
	}
}

func loaded(t *testing.T) *View {
	t.Helper()
	svc := &MockDetailService{DetailFunc: func(_ context.Context, id domain.DocID) (domain.Detail, error) {
		if id == "0" {
			return testDetail(), nil
		}
		return domain.Detail{}, fmt.Errorf("detail %s: %w", id, domain.ErrNotFound)
	}}
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 40)
	v.Update(v.Load("0")())
	require.NotNil(t, v.Detail())
	return v
}

func TestNewView_NilSafe(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_LoadWithoutService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Load("7")()

	assert.ErrorIs(t, msg.(messages.DetailLoaded).Err, ErrNoDetailService)
}

func TestView_LoadRendersPrimaryAndRelated(t *testing.T) {
	v := loaded(t)

	assert.False(t, v.Loading())
	view := v.View()
	assert.Contains(t, view, "Breaking Bad")
	assert.Contains(t, view, "3.5")
	assert.Contains(t, view, "1,552,311 votes")
	assert.Contains(t, view, "Related (2)")
	assert.Contains(t, view, "Fargo")
	assert.Contains(t, view, "Billy Bob Thornton")
	assert.Contains(t, view, "12,345 votes")
	assert.Contains(t, view, "https://img/fargo.jpg")
	assert.Contains(t, view, "900 votes")
}

func TestView_ShowsLoadingUntilResult(t *testing.T) {
	v := NewView(nil, nil, &MockDetailService{})
	v.SetDimensions(80, 24)

	_ = v.Load("0")

	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading")
}

func TestView_NotFoundEmptyState(t *testing.T) {
	v := NewView(nil, nil, &MockDetailService{})
	v.SetDimensions(80, 24)

	v.Update(v.Load("42")())

	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Nil(t, v.Detail())
	assert.Contains(t, v.View(), "Nothing to show")
	assert.Contains(t, v.View(), "42")
}

func TestView_IgnoresResultForEarlierLoad(t *testing.T) {
	v := loaded(t)
	first := v.Load("1")
	_ = v.Load("0")

	v.Update(first())

	assert.True(t, v.Loading())
	assert.Equal(t, domain.DocID("0"), v.DocID())
}

func TestView_NavigateRelated(t *testing.T) {
	v := loaded(t)

	item, ok := v.SelectedRelated()
	require.True(t, ok)
	assert.Equal(t, domain.DocID("1"), item.DocID)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	item, _ = v.SelectedRelated()
	assert.Equal(t, domain.DocID("2"), item.DocID)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	item, _ = v.SelectedRelated()
	assert.Equal(t, domain.DocID("1"), item.DocID)
}

func TestView_EnterRequestsRelatedDetail(t *testing.T) {
	v := loaded(t)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.DetailRequested{Location: "detail?docID=2"}, cmd())
}

func TestView_EnterWithoutRelated(t *testing.T) {
	v := NewView(nil, nil, &MockDetailService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_EscReturnsToSearch(t *testing.T) {
	v := loaded(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_NoRelatedItems(t *testing.T) {
	svc := &MockDetailService{DetailFunc: func(_ context.Context, _ domain.DocID) (domain.Detail, error) {
		return domain.Detail{Primary: domain.ResultItem{DocID: "0", Title: "Solo"}, Related: []domain.ResultItem{}}, nil
	}}
	v := NewView(nil, nil, svc)
	v.SetDimensions(80, 24)

	v.Update(v.Load("0")())

	assert.Contains(t, v.View(), "No related items")
}
