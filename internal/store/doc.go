// Package store persists sessions, transcript segments, physiology events,
// and insights in SQLite. It is the single synchronization point between the
// capture producers, the REST façade, and the insight pipeline.
//
// The Store holds one process-lifetime connection pool opened in WAL mode
// with a bounded busy timeout. Every operation commits independently as a
// single statement, so independent producers may append concurrently and a
// crash mid-pipeline leaves the database in a valid (if incomplete) state.
// Writers that still conflict after the busy timeout surface a storage error
// rather than retrying indefinitely.
//
// Treat this package as the single source of truth for persistence
// semantics; when you add a column, add a migration alongside it.
package store
