package reporting

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats understood by New.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Reporter renders a summary.
type Reporter interface {
	Report(summary Summary) error
}

// New returns the reporter for format.
func New(format string, out io.Writer, verbose bool) (Reporter, error) {
	switch format {
	case "", FormatTable:
		return NewConsoleReporter(out, verbose), nil
	case FormatJSON:
		return NewJSONReporter(out), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %s or %s)", format, FormatTable, FormatJSON)
	}
}

// JSONReporter writes the summary as indented JSON for machine consumption.
type JSONReporter struct {
	out io.Writer
}

// NewJSONReporter creates a JSON reporter writing to out.
func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

// Report encodes the summary.
func (r *JSONReporter) Report(summary Summary) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
