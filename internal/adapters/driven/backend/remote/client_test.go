package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/wire"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/", Timeout: 5 * time.Second})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
	assert.Equal(t, "closed", c.BreakerState())
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wire.PathSearch, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req wire.SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		q, err := req.Query()
		assert.NoError(t, err)
		assert.Equal(t, "breaking", q.Text(domain.FieldTitle))
		assert.Equal(t, []string{"Crime"}, q.GenreFilter.Values)

		_, _ = io.WriteString(w, `[
			{"docID": 2, "Series_Title": "Breaking Bad", "Genre": ["Crime", "Drama"],
			 "Actors": ["Bryan Cranston"], "IMDB_Rating": 9.5, "No_of_Votes": 1552311},
			{"docID": 7, "Series_Title": "Better Call Saul"}
		]`)
	})

	items, err := c.Search(context.Background(), domain.Query{
		Fields:      map[string]domain.FieldValue{domain.FieldTitle: domain.TextValue("breaking")},
		GenreFilter: domain.FacetFilter{Operator: domain.OperatorOr, Values: []string{"Crime"}},
	})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.DocID("2"), items[0].DocID)
	assert.Equal(t, "Breaking Bad", items[0].Title)
	assert.Equal(t, 1552311, items[0].Votes)
	assert.Equal(t, "Bryan Cranston", items[0].LeadActor())
	assert.Equal(t, domain.DocID("7"), items[1].DocID)
}

func TestClient_Search_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	items, err := c.Search(context.Background(), domain.Query{})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_AverageRatings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, wire.PathRatings, r.URL.Path)
		assert.Equal(t, []string{"2", "abc"}, r.URL.Query()[domain.DocIDParam])
		_, _ = io.WriteString(w, `{"2": 4.25}`)
	})

	avgs, err := c.AverageRatings(context.Background(), "2", "abc")

	require.NoError(t, err)
	assert.Equal(t, map[domain.DocID]float64{"2": 4.25}, avgs)
}

func TestClient_AverageRatings_NoIDs(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	avgs, err := c.AverageRatings(context.Background())

	require.NoError(t, err)
	assert.Empty(t, avgs)
	assert.Zero(t, calls.Load())
}

func TestClient_SubmitRating(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"docID": 2, "stars": 4}`, string(body))
		_, _ = io.WriteString(w, `{"status": "ok", "avgStars": 3.5}`)
	})

	receipt, err := c.SubmitRating(context.Background(), "2", 4)

	require.NoError(t, err)
	assert.True(t, receipt.Accepted())
	assert.InDelta(t, 3.5, receipt.AvgStars, 1e-9)
}

func TestClient_SubmitRelevanceFeedback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wire.PathFeedback, r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"relevants":[1],"non-relevants":[3],"fields":{"Series_Title":"x"}}`, string(body))
		_, _ = io.WriteString(w, `[{"docID": 1}, {"docID": 5}]`)
	})

	items, err := c.SubmitRelevanceFeedback(context.Background(), domain.RelevanceFeedbackBatch{
		Relevant:    []domain.DocID{"1"},
		NonRelevant: []domain.DocID{"3"},
		Fields:      map[string]domain.FieldValue{domain.FieldTitle: domain.TextValue("x")},
	})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.DocID("5"), items[1].DocID)
}

func TestClient_FailuresAreTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"bad request", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{not json`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.SubmitRating(context.Background(), "1", 3)

			assert.ErrorIs(t, err, domain.ErrTransportFailure)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	c := NewClient(Config{BaseURL: url, Timeout: time.Second})

	_, err := c.Search(context.Background(), domain.Query{})

	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL, FailureThreshold: 2, OpenTimeout: time.Minute})

	for i := 0; i < 4; i++ {
		_, err := c.Search(context.Background(), domain.Query{})
		assert.ErrorIs(t, err, domain.ErrTransportFailure)
	}

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "open", c.BreakerState())
}

func TestClient_ClientErrorsDoNotOpenBreaker(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL, FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, _ = c.Search(context.Background(), domain.Query{})
	}

	assert.Equal(t, "closed", c.BreakerState())
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, retryAfter("3"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate(" abc\n", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "h...", truncate("héllo", 2))
	assert.Equal(t, "hé...", truncate("héllo", 3))
	assert.True(t, utf8.ValidString(truncate("★★★★★", 4)))
}
