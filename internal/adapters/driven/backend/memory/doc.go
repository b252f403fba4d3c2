// Package memory provides an in-process search backend over a fixed
// catalogue. It backs the development server and tests.
//
// Queries follow the production engine's semantics: title and overview are
// phrase matches, facet values are joined with the facet's operator, and
// boosts add the boosted numeric fields to the score. Ratings keep a running
// mean per item. Relevance feedback re-ranks the catalogue with Rocchio's
// algorithm over TF-IDF vectors of title and overview.
package memory
