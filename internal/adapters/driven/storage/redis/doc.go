// Package redis provides a Redis-backed implementation of the session store.
//
// Each session is one Redis hash keyed by the session id, with one field per
// cache slot. Every write refreshes the hash's TTL, so an idle session expires
// on its own.
package redis
