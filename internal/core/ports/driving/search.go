package driving

import (
	"context"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search caches the query, runs it and caches the resulting set.
	Search(ctx context.Context, q domain.Query) (domain.ResultSet, error)

	// LastQuery returns the query of the current session.
	// Returns domain.ErrNotFound if nothing has been searched yet.
	LastQuery(ctx context.Context) (domain.Query, error)
}
