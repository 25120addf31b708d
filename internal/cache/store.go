package cache

import (
	"time"

	"testctl/internal/check"
)

// Store persists check outcomes. Implementations must tolerate concurrent Put
// calls for distinct keys.
type Store interface {
	// Get returns the entry for key and whether one exists.
	Get(key check.Key) (Entry, bool, error)
	// Put records outcome for key at now, replacing any prior entry.
	Put(key check.Key, outcome Outcome, diagnostic string, now time.Time) error
	// Clear drops every entry.
	Clear() error
}

// Lister is implemented by stores that can enumerate their entries.
type Lister interface {
	Entries() ([]Entry, error)
}
