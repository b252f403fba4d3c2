// Package services implements the driving port interfaces.
// Services contain the core logic of the search page: building queries
// from form snapshots, caching the last query and result set for the
// session, rating and relevance feedback, and the detail projection.
//
// Services are pure Go and only talk to infrastructure through driven ports.
package services
