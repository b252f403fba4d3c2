package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.SearchBackend = (*Backend)(nil)

// rating is the running mean of the stars given to one item.
type rating struct {
	avg float64
	n   int
}

// add folds stars into the mean and returns the new mean.
func (r *rating) add(stars int) float64 {
	r.avg = (r.avg*float64(r.n) + float64(stars)) / float64(r.n+1)
	r.n++
	return r.avg
}

// Backend is an in-process driven.SearchBackend over a fixed catalogue.
type Backend struct {
	mu      sync.RWMutex
	items   []domain.ResultItem
	index   map[domain.DocID]int
	ratings map[domain.DocID]*rating
	vectors *vectorSpace
}

// NewBackend creates a backend serving items in the given order.
func NewBackend(items []domain.ResultItem) *Backend {
	b := &Backend{
		items:   slices.Clone(items),
		index:   make(map[domain.DocID]int, len(items)),
		ratings: make(map[domain.DocID]*rating),
	}
	texts := make([]string, len(items))
	for i, item := range b.items {
		b.index[item.DocID] = i
		texts[i] = item.Title + " " + item.Overview
	}
	b.vectors = newVectorSpace(texts)
	return b
}

// Len returns the catalogue size.
func (b *Backend) Len() int {
	return len(b.items)
}

// Search returns the items matching q ordered by score.
// Title and overview are case-insensitive phrase matches; empty text matches
// everything. Boosted fields add weight*value to the score, with vote counts
// taken on a log scale.
func (b *Backend) Search(_ context.Context, q domain.Query) ([]domain.ResultItem, error) {
	title := strings.ToLower(strings.TrimSpace(q.Text(domain.FieldTitle)))
	overview := strings.ToLower(strings.TrimSpace(q.Text(domain.FieldOverview)))

	b.mu.RLock()
	defer b.mu.RUnlock()

	type scored struct {
		item  domain.ResultItem
		score float64
	}
	var hits []scored
	for _, item := range b.items {
		if title != "" && !strings.Contains(strings.ToLower(item.Title), title) {
			continue
		}
		if overview != "" && !strings.Contains(strings.ToLower(item.Overview), overview) {
			continue
		}
		if !matchFacet(q.GenreFilter, item.Genres) || !matchFacet(q.ActorFilter, item.Actors) {
			continue
		}
		hits = append(hits, scored{item: b.withAverage(item), score: boostScore(q.Boost, item)})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	items := make([]domain.ResultItem, len(hits))
	for i, h := range hits {
		items[i] = h.item
	}
	logger.Debug("memory backend: %d of %d items match", len(items), len(b.items))
	return items, nil
}

// matchFacet applies f to an item's values. An empty filter matches everything.
func matchFacet(f domain.FacetFilter, values []string) bool {
	if f.IsEmpty() {
		return true
	}
	has := func(want string) bool {
		return slices.ContainsFunc(values, func(v string) bool { return strings.EqualFold(v, want) })
	}
	if f.Operator == domain.OperatorAnd {
		for _, want := range f.Values {
			if !has(want) {
				return false
			}
		}
		return true
	}
	return slices.ContainsFunc(f.Values, has)
}

func boostScore(boost map[string]float64, item domain.ResultItem) float64 {
	var score float64
	for field, weight := range boost {
		switch field {
		case domain.FieldRating:
			score += weight * item.Rating
		case domain.FieldVotes:
			score += weight * math.Log10(1+float64(item.Votes))
		}
	}
	return score
}

// AverageRatings returns the mean stars of every known identifier.
// Unrated items report 0; unknown identifiers are omitted.
func (b *Backend) AverageRatings(_ context.Context, ids ...domain.DocID) (map[domain.DocID]float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[domain.DocID]float64, len(ids))
	for _, id := range ids {
		if _, ok := b.index[id]; !ok {
			continue
		}
		out[id] = b.average(id)
	}
	return out, nil
}

// SubmitRating folds stars into the item's running mean.
func (b *Backend) SubmitRating(_ context.Context, id domain.DocID, stars int) (domain.RatingReceipt, error) {
	if !domain.ValidStars(stars) {
		return domain.RatingReceipt{}, fmt.Errorf("stars %d: %w", stars, domain.ErrInvalidRating)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.index[id]; !ok {
		return domain.RatingReceipt{}, fmt.Errorf("rate %s: %w", id, domain.ErrNotFound)
	}
	r, ok := b.ratings[id]
	if !ok {
		r = &rating{}
		b.ratings[id] = r
	}
	avg := r.add(stars)
	logger.Debug("memory backend: %s rated %d, mean %.2f over %d", id, stars, avg, r.n)
	return domain.RatingReceipt{Status: domain.RatingStatusOK, AvgStars: avg}, nil
}

// SubmitRelevanceFeedback re-ranks the catalogue with Rocchio's algorithm.
// The query vector comes from the batch's title and overview fields; items
// with no positive similarity to the moved query are dropped.
func (b *Backend) SubmitRelevanceFeedback(
	_ context.Context, batch domain.RelevanceFeedbackBatch,
) ([]domain.ResultItem, error) {
	q := domain.Query{Fields: batch.Fields}
	text := q.Text(domain.FieldTitle) + " " + q.Text(domain.FieldOverview)

	b.mu.RLock()
	defer b.mu.RUnlock()

	moved := rocchio(b.vectors.query(text), b.docVectors(batch.Relevant), b.docVectors(batch.NonRelevant))

	type scored struct {
		pos   int
		score float64
	}
	var hits []scored
	for i, v := range b.vectors.docs {
		if s := cosine(moved, v); s > 0 {
			hits = append(hits, scored{pos: i, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	items := make([]domain.ResultItem, len(hits))
	for i, h := range hits {
		items[i] = b.withAverage(b.items[h.pos])
	}
	logger.Debug("memory backend: feedback re-ranked %d items", len(items))
	return items, nil
}

// docVectors returns the vectors of the known identifiers among ids.
func (b *Backend) docVectors(ids []domain.DocID) []vector {
	out := make([]vector, 0, len(ids))
	for _, id := range ids {
		if pos, ok := b.index[id]; ok {
			out = append(out, b.vectors.docs[pos])
		}
	}
	return out
}

// withAverage returns item with its current mean rating (caller holds lock).
func (b *Backend) withAverage(item domain.ResultItem) domain.ResultItem {
	item.AvgStars = b.average(item.DocID)
	item.Genres = slices.Clone(item.Genres)
	item.Actors = slices.Clone(item.Actors)
	return item
}

func (b *Backend) average(id domain.DocID) float64 {
	if r, ok := b.ratings[id]; ok {
		return r.avg
	}
	return 0
}
