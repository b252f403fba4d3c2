// Package domain defines the core entities for sercha-media.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FormState: A snapshot of the search form controls
//   - Query: The structured search request built from a FormState
//   - ResultItem / ResultSet: Matched series and the ordered set that holds them
//   - FeedbackMark / RelevanceFeedbackBatch: Implicit relevance feedback
//   - Detail: The projection rendered by the detail view
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
