package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"testctl/internal/check"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	items *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore returns an empty in-memory store. Items never expire on their
// own and no janitor goroutine is started; freshness is decided by IsFresh.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
	}
}

// Get returns the entry for key.
func (s *MemoryStore) Get(key check.Key) (Entry, bool, error) {
	v, found := s.items.Get(key.String())
	if !found {
		return Entry{}, false, nil
	}
	return v.(Entry), true, nil
}

// Put replaces the entry for key.
func (s *MemoryStore) Put(key check.Key, outcome Outcome, diagnostic string, now time.Time) error {
	s.items.Set(key.String(), Entry{
		Key:        key,
		Outcome:    outcome,
		RecordedAt: now,
		TTLSeconds: int64(s.ttl / time.Second),
		Diagnostic: diagnostic,
	}, gocache.NoExpiration)
	return nil
}

// Clear drops every entry.
func (s *MemoryStore) Clear() error {
	s.items.Flush()
	return nil
}

// Entries lists entries sorted by category and id.
func (s *MemoryStore) Entries() ([]Entry, error) {
	items := s.items.Items()
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, item.Object.(Entry))
	}
	sortEntries(entries)
	return entries, nil
}

var _ Store = (*MemoryStore)(nil)
var _ Lister = (*MemoryStore)(nil)
