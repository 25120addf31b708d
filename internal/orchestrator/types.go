package orchestrator

import (
	"time"

	"testctl/internal/check"
)

// Status is the per-invocation outcome of a check.
type Status string

const (
	// StatusRanPass indicates the check ran and passed
	StatusRanPass Status = "PASSED"
	// StatusRanFail indicates the check ran and failed, or could not be invoked
	StatusRanFail Status = "FAILED"
	// StatusSkippedFromCache indicates a fresh passing result was reused
	StatusSkippedFromCache Status = "CACHED"
)

// Options control a single invocation.
type Options struct {
	// ForceAll runs every selected check regardless of cache state
	ForceAll bool
	// ClearCache drops the whole cache before planning
	ClearCache bool
	// Sequential runs the run-set one check at a time in registration order
	Sequential bool
}

// Result is the final outcome of one check in one invocation.
type Result struct {
	Category    string `json:"category"`
	ID          string `json:"id"`
	Independent bool   `json:"independent"`
	Status      Status `json:"status"`
	// Diagnostic is the check's explanation, or the invocation failure
	Diagnostic string `json:"diagnostic,omitempty"`
	// InvocationError is true when the check could not be invoked or timed out
	InvocationError bool          `json:"invocationError,omitempty"`
	Duration        time.Duration `json:"duration"`
	// CachedAt is when the reused result was recorded, for skipped checks
	CachedAt *time.Time `json:"cachedAt,omitempty"`
}

// Key returns the identity of the check the result belongs to.
func (r Result) Key() check.Key {
	return check.Key{Category: r.Category, ID: r.ID}
}

// Failed reports whether the check ran and failed.
func (r Result) Failed() bool {
	return r.Status == StatusRanFail
}

func newResult(def check.Definition) Result {
	return Result{
		Category:    def.Category,
		ID:          def.ID,
		Independent: def.Independent,
	}
}
