// Package wire defines the JSON request and response bodies exchanged with
// the search backend. The remote client encodes them and the development
// server decodes them, so both sides share one definition.
package wire

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// Endpoint paths relative to the backend base URL.
const (
	PathSearch   = "/search"
	PathRatings  = "/ratings"
	PathFeedback = "/feedback"
)

// Keys inside the search request's fields object.
const (
	KeyFields = "fields"
	KeyBoost  = "boost"
)

// SearchRequest is the body of POST /search. Facet filters and boosts travel
// inside the fields object next to the plain field values.
type SearchRequest struct {
	Fields map[string]json.RawMessage `json:"fields"`
}

// NewSearchRequest encodes q in the backend's nested shape:
//
//	{"fields": {"Series_Title": "...", "Genre": {"op": "OR", "values": [...]},
//	            "Actors": {...}, "boost": {"IMDB_Rating": 1}}}
func NewSearchRequest(q domain.Query) (SearchRequest, error) {
	fields := make(map[string]json.RawMessage, len(q.Fields)+3)
	for name, v := range q.Fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return SearchRequest{}, fmt.Errorf("encode field %s: %w", name, err)
		}
		fields[name] = raw
	}

	extras := []struct {
		key   string
		value any
	}{
		{domain.FieldGenre, q.GenreFilter.Clone()},
		{domain.FieldActors, q.ActorFilter.Clone()},
		{KeyBoost, boostOrEmpty(q.Boost)},
	}
	for _, e := range extras {
		raw, err := json.Marshal(e.value)
		if err != nil {
			return SearchRequest{}, fmt.Errorf("encode %s: %w", e.key, err)
		}
		fields[e.key] = raw
	}
	return SearchRequest{Fields: fields}, nil
}

// Query decodes the request back into a domain query. A missing facet
// object yields an empty OR filter and a facet without "op" defaults to OR.
// Boost weights may be numbers or booleans (true is weight 1).
func (r SearchRequest) Query() (domain.Query, error) {
	q := domain.Query{
		Fields:      map[string]domain.FieldValue{},
		GenreFilter: domain.FacetFilter{Operator: domain.OperatorOr, Values: []string{}},
		ActorFilter: domain.FacetFilter{Operator: domain.OperatorOr, Values: []string{}},
		Boost:       map[string]float64{},
	}

	for name, raw := range r.Fields {
		var err error
		switch name {
		case domain.FieldGenre:
			q.GenreFilter, err = decodeFacet(raw)
		case domain.FieldActors:
			q.ActorFilter, err = decodeFacet(raw)
		case KeyBoost:
			q.Boost, err = decodeBoost(raw)
		default:
			var v domain.FieldValue
			err = v.UnmarshalJSON(raw)
			q.Fields[name] = v
		}
		if err != nil {
			return domain.Query{}, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	return q, nil
}

func boostOrEmpty(b map[string]float64) map[string]float64 {
	if b == nil {
		return map[string]float64{}
	}
	return b
}

func decodeFacet(raw json.RawMessage) (domain.FacetFilter, error) {
	var f domain.FacetFilter
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.FacetFilter{}, err
	}
	if f.Operator == "" {
		f.Operator = domain.OperatorOr
	}
	if !f.Operator.IsValid() {
		return domain.FacetFilter{}, fmt.Errorf("operator %q: %w", f.Operator, domain.ErrInvalidInput)
	}
	return f.Clone(), nil
}

func decodeBoost(raw json.RawMessage) (map[string]float64, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	boost := make(map[string]float64, len(values))
	for name, v := range values {
		v = bytes.TrimSpace(v)
		switch string(v) {
		case "true":
			boost[name] = 1
		case "false":
			boost[name] = 0
		default:
			w, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return nil, fmt.Errorf("boost %s: %w", name, domain.ErrInvalidInput)
			}
			boost[name] = w
		}
	}
	return boost, nil
}

// RatingRequest is the body of POST /ratings.
type RatingRequest struct {
	DocID domain.DocID `json:"docID"`
	Stars int          `json:"stars"`
}

// RatingResponse is the answer to POST /ratings.
type RatingResponse = domain.RatingReceipt

// AveragesResponse is the answer to GET /ratings?docID=..: docID to mean stars.
// Identifiers without ratings may be absent.
type AveragesResponse map[string]float64

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest = domain.RelevanceFeedbackBatch

// ErrorResponse is the body of every non-2xx answer from the development server.
type ErrorResponse struct {
	Error string `json:"error"`
}
