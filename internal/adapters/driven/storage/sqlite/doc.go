// Package sqlite provides a SQLite-backed implementation of the
// DocumentStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Documents and their
// embedding vectors live in a single table so a save is atomic: both the
// text and the vector become visible together or not at all.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Embedding vectors are stored as little-endian
// float32 BLOBs.
//
// # Data Location
//
// By default, the database is stored at ~/.matcha/data/documents.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
