package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"testctl/internal/check"
)

const (
	cacheDirName  = "testctl-cache"
	entrySuffix   = ".json"
	tempPrefix    = ".entry-"
	dirPermission = 0o755
)

// For mocking in tests
var osGetwd = os.Getwd

// FileStore keeps one JSON document per check in a directory.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore returns a store rooted at dir. ttl is recorded alongside each
// entry for inspection; it does not affect reads.
func NewFileStore(dir string, ttl time.Duration) *FileStore {
	if dir == "" {
		dir = DefaultDir()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{dir: dir, ttl: ttl}
}

// DefaultDir returns the cache directory for the current working tree:
// $TMPDIR/testctl-cache/<hash of the working directory>.
func DefaultDir() string {
	wd, err := osGetwd()
	if err != nil {
		wd = "."
	}
	if abs, err := filepath.Abs(wd); err == nil {
		wd = abs
	}
	sum := sha256.Sum256([]byte(wd))
	return filepath.Join(os.TempDir(), cacheDirName, hex.EncodeToString(sum[:])[:12])
}

// Dir exposes the cache directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the entry for key. A missing file is not an error.
func (s *FileStore) Get(key check.Key) (Entry, bool, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	if entry.Key != key {
		return Entry{}, false, fmt.Errorf("cache entry %s holds key %s", key, entry.Key)
	}
	return entry, true, nil
}

// Put writes the entry through a temporary file and a rename so readers never
// observe a partially written document.
func (s *FileStore) Put(key check.Key, outcome Outcome, diagnostic string, now time.Time) error {
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	entry := Entry{
		Key:        key,
		Outcome:    outcome,
		RecordedAt: now,
		TTLSeconds: int64(s.ttl / time.Second),
		Diagnostic: diagnostic,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create cache entry %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.pathFor(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store cache entry %s: %w", key, err)
	}
	return nil
}

// Clear removes the cache directory.
func (s *FileStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", s.dir, err)
	}
	return nil
}

// Entries lists every readable entry sorted by category and id. Unreadable
// files are skipped.
func (s *FileStore) Entries() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list cache directory: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), entrySuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err == nil {
			entries = append(entries, entry)
		}
	}

	sortEntries(entries)
	return entries, nil
}

func (s *FileStore) pathFor(key check.Key) string {
	sum := sha256.Sum256([]byte(key.Category + "\x00" + key.ID))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+entrySuffix)
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key.Category != entries[j].Key.Category {
			return entries[i].Key.Category < entries[j].Key.Category
		}
		return entries[i].Key.ID < entries[j].Key.ID
	})
}

var _ Store = (*FileStore)(nil)
var _ Lister = (*FileStore)(nil)
