package cache

import (
	"time"

	"testctl/internal/check"
)

// DefaultTTL is the freshness window used when none is configured.
const DefaultTTL = 5 * time.Minute

// Outcome is the recorded result of a check run.
type Outcome string

const (
	// OutcomePass records a passing run
	OutcomePass Outcome = "pass"
	// OutcomeFail records a failing run
	OutcomeFail Outcome = "fail"
)

// OutcomeOf maps a pass/fail flag onto an Outcome.
func OutcomeOf(passed bool) Outcome {
	if passed {
		return OutcomePass
	}
	return OutcomeFail
}

// Entry is the cached outcome of one check.
type Entry struct {
	Key        check.Key `json:"key"`
	Outcome    Outcome   `json:"outcome"`
	RecordedAt time.Time `json:"recordedAt"`
	// TTLSeconds is the freshness window in force when the entry was written.
	// Freshness is always evaluated against the caller's current TTL.
	TTLSeconds int64  `json:"ttlSeconds"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// IsFresh reports whether entry may be reused instead of running the check:
// the outcome must be a pass recorded less than ttl before now.
func IsFresh(entry Entry, now time.Time, ttl time.Duration) bool {
	if entry.Outcome != OutcomePass {
		return false
	}
	return now.Sub(entry.RecordedAt) < ttl
}

// Age returns how long ago the entry was recorded.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.RecordedAt)
}
