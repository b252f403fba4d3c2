// Package sqlite provides a SQLite-based implementation of the session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Separate CLI invocations that share a
// session id read and write the same rows, which lets "search" and "detail" run as
// two processes against one session cache.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-media/data/session.db
//
// # Thread Safety
//
// All operations are thread-safe. Each slot write is a single upsert, so a
// reader sees either the previous value or the new one.
package sqlite
