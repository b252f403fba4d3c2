package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// DocIDParam is the navigation parameter that carries a DocID into the detail view.
const DocIDParam = "docID"

// detailPath is the location the related-items list links to.
const detailPath = "detail"

// DocID is the opaque identifier of one searchable item.
// It is never derived client-side: values come from the backend and
// round-trip through storage and navigation parameters unchanged.
type DocID string

// String returns the identifier text.
func (id DocID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id DocID) IsZero() bool {
	return id == ""
}

// MarshalJSON writes numeric identifiers as JSON numbers and everything else
// as JSON strings, so identifiers keep the shape the backend sent them in.
func (id DocID) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(id)) && isNumberLiteral(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *DocID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("docID: %w", err)
		}
		*id = DocID(s)
		return nil
	}
	if !isNumberLiteral(string(data)) {
		return fmt.Errorf("docID: unexpected token %q: %w", data, ErrInvalidInput)
	}
	*id = DocID(data)
	return nil
}

// isNumberLiteral reports whether s is a JSON number literal.
func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil && n.String() == s
}

// DetailLocation returns the navigation location of the detail view for id.
func DetailLocation(id DocID) string {
	return detailPath + "?" + url.Values{DocIDParam: []string{id.String()}}.Encode()
}

// ParseLocation extracts the DocID from a navigation location such as
// "detail?docID=42". A bare identifier is accepted as-is.
func ParseLocation(location string) (DocID, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("empty location: %w", ErrInvalidInput)
	}
	if !strings.ContainsAny(location, "?=") {
		return DocID(location), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parsing location %q: %w", location, ErrInvalidInput)
	}
	query := u.Query()
	if !query.Has(DocIDParam) && u.RawQuery == "" {
		// "docID=42" without a leading "?"
		query, err = url.ParseQuery(location)
		if err != nil {
			return "", fmt.Errorf("parsing location %q: %w", location, ErrInvalidInput)
		}
	}
	id := query.Get(DocIDParam)
	if id == "" {
		return "", fmt.Errorf("location %q has no %s: %w", location, DocIDParam, ErrInvalidInput)
	}
	return DocID(id), nil
}
