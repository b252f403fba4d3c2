package driving

import (
	"context"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// DetailService projects the cached result set into a detail view.
// It never calls the backend.
type DetailService interface {
	// Detail returns the item with the given id and the other cached items.
	// Returns domain.ErrNotFound if no set is cached or the id is not in it.
	Detail(ctx context.Context, id domain.DocID) (domain.Detail, error)
}
