// Package cache stores the last outcome of every check so that recently
// passing checks can be skipped.
//
// Entries are keyed by check identity (category and id), never by the content
// a check inspects; the TTL is the only invalidation signal. Freshness is
// decided at read time by IsFresh, and a failing outcome is never fresh, so a
// stale failure cannot mask a fix and a fresh failure is always re-run.
//
// Two stores are provided. FileStore keeps one JSON file per key in a
// directory scoped to the working tree; deleting that directory is always
// safe. MemoryStore keeps entries for the lifetime of the process and backs
// long-running modes and tests.
package cache
