package reporting

import (
	"testctl/internal/orchestrator"
)

// OverallStatus is the verdict of a whole invocation.
type OverallStatus string

const (
	// StatusOK means no check ran and failed
	StatusOK OverallStatus = "OK"
	// StatusFailed means at least one check ran and failed
	StatusFailed OverallStatus = "FAILED"
)

// Failure describes one failed check.
type Failure struct {
	Category        string `json:"category"`
	ID              string `json:"id"`
	Diagnostic      string `json:"diagnostic"`
	InvocationError bool   `json:"invocationError,omitempty"`
}

// Summary aggregates the results of one invocation.
type Summary struct {
	Status  OverallStatus `json:"status"`
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	// Failures are in registry order
	Failures []Failure            `json:"failures"`
	Results  []orchestrator.Result `json:"results"`
}

// Summarize builds the summary of results. It depends only on its input, so
// the same results always produce the same summary.
func Summarize(results []orchestrator.Result) Summary {
	s := Summary{
		Status:   StatusOK,
		Total:    len(results),
		Failures: []Failure{},
		Results:  make([]orchestrator.Result, len(results)),
	}
	copy(s.Results, results)

	for _, r := range results {
		switch r.Status {
		case orchestrator.StatusRanPass:
			s.Passed++
		case orchestrator.StatusSkippedFromCache:
			s.Skipped++
		case orchestrator.StatusRanFail:
			s.Failed++
			s.Failures = append(s.Failures, Failure{
				Category:        r.Category,
				ID:              r.ID,
				Diagnostic:      r.Diagnostic,
				InvocationError: r.InvocationError,
			})
		}
	}

	if s.Failed > 0 {
		s.Status = StatusFailed
	}
	return s
}

// OK reports whether no check failed.
func (s Summary) OK() bool {
	return s.Status == StatusOK
}

// ExitCode is 0 when the summary is OK and 1 otherwise.
func (s Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}
