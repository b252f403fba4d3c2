package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// FacetOperator joins the values of a facet filter.
type FacetOperator string

// Available facet operators.
const (
	// OperatorOr matches items having any of the values.
	OperatorOr FacetOperator = "OR"

	// OperatorAnd matches items having all of the values.
	OperatorAnd FacetOperator = "AND"
)

// IsValid returns true if the operator is recognised.
func (o FacetOperator) IsValid() bool {
	return o == OperatorOr || o == OperatorAnd
}

// String returns the string representation.
func (o FacetOperator) String() string {
	return string(o)
}

// FacetFilter restricts results to items whose facet matches Values under Operator.
// A filter with no values matches everything.
type FacetFilter struct {
	Operator FacetOperator `json:"op"`
	Values   []string      `json:"values"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f FacetFilter) IsEmpty() bool {
	return len(f.Values) == 0
}

// Clone returns a deep copy.
func (f FacetFilter) Clone() FacetFilter {
	values := slices.Clone(f.Values)
	if values == nil {
		values = []string{}
	}
	return FacetFilter{Operator: f.Operator, Values: values}
}

// FieldKind identifies the type held by a FieldValue.
type FieldKind string

// Available field kinds.
const (
	FieldKindText FieldKind = "text"
	FieldKindList FieldKind = "list"
	FieldKindBool FieldKind = "bool"
)

// FieldValue is the value of one query field: a string, a list of strings or a boolean.
type FieldValue struct {
	Kind FieldKind
	Text string
	List []string
	Bool bool
}

// TextValue returns a text field value.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: FieldKindText, Text: s}
}

// ListValue returns a list field value.
func ListValue(values ...string) FieldValue {
	if values == nil {
		values = []string{}
	}
	return FieldValue{Kind: FieldKindList, List: values}
}

// BoolValue returns a boolean field value.
func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: FieldKindBool, Bool: b}
}

// String renders the value for display.
func (v FieldValue) String() string {
	switch v.Kind {
	case FieldKindList:
		return fmt.Sprint(v.List)
	case FieldKindBool:
		return fmt.Sprint(v.Bool)
	default:
		return v.Text
	}
}

// MarshalJSON encodes the value as a bare JSON string, array or boolean.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldKindList:
		list := v.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	case FieldKindBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON decodes a bare JSON string, array or boolean.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("field value: empty: %w", ErrInvalidInput)
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = ListValue(list...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	default:
		return fmt.Errorf("field value: unexpected token %q: %w", data, ErrInvalidInput)
	}
	return nil
}

// Query is a structured search request.
// It is built once per submission and treated as immutable afterwards;
// use Clone when handing it across component boundaries.
type Query struct {
	// Fields maps each value-bearing control name to its value.
	Fields map[string]FieldValue `json:"fields"`

	// GenreFilter is always present, even with no values.
	GenreFilter FacetFilter `json:"genre"`

	// ActorFilter is always present, even with no values.
	ActorFilter FacetFilter `json:"actors"`

	// Boost maps a field name to its ranking weight.
	Boost map[string]float64 `json:"boost"`
}

// Clone returns a deep copy of the query.
func (q Query) Clone() Query {
	fields := make(map[string]FieldValue, len(q.Fields))
	for name, v := range q.Fields {
		if v.Kind == FieldKindList {
			v.List = slices.Clone(v.List)
		}
		fields[name] = v
	}
	boost := maps.Clone(q.Boost)
	if boost == nil {
		boost = map[string]float64{}
	}
	return Query{
		Fields:      fields,
		GenreFilter: q.GenreFilter.Clone(),
		ActorFilter: q.ActorFilter.Clone(),
		Boost:       boost,
	}
}

// CloneFields returns a copy of the query's fields only.
// Relevance feedback resubmits these without filters or boosts.
func (q Query) CloneFields() map[string]FieldValue {
	return q.Clone().Fields
}

// FieldNames returns the field names in sorted order.
func (q Query) FieldNames() []string {
	return slices.Sorted(maps.Keys(q.Fields))
}

// Text returns the text value of field name, or "" if it is absent or not text.
func (q Query) Text(name string) string {
	v, ok := q.Fields[name]
	if !ok || v.Kind != FieldKindText {
		return ""
	}
	return v.Text
}
