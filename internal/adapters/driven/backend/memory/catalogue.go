package memory

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

//go:embed catalogue.json
var sampleCatalogue []byte

// SampleCatalogue returns the embedded sample catalogue.
func SampleCatalogue() []domain.ResultItem {
	items, err := decodeCatalogue(sampleCatalogue)
	if err != nil {
		panic(fmt.Sprintf("embedded catalogue: %v", err))
	}
	return items
}

// LoadCatalogue reads a JSON array of catalogue records.
func LoadCatalogue(r io.Reader) ([]domain.ResultItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return decodeCatalogue(data)
}

// LoadCatalogueFile reads a catalogue from path.
func LoadCatalogueFile(path string) ([]domain.ResultItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return LoadCatalogue(f)
}

func decodeCatalogue(data []byte) ([]domain.ResultItem, error) {
	var items []domain.ResultItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	seen := make(map[domain.DocID]bool, len(items))
	for i, item := range items {
		if item.DocID.IsZero() {
			return nil, fmt.Errorf("catalogue record %d has no docID: %w", i, domain.ErrInvalidInput)
		}
		if seen[item.DocID] {
			return nil, fmt.Errorf("duplicate docID %s: %w", item.DocID, domain.ErrInvalidInput)
		}
		seen[item.DocID] = true
	}
	return items, nil
}
