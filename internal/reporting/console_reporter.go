package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"

	"testctl/internal/color"
	"testctl/internal/orchestrator"
)

// maxDetailWidth bounds the detail column; the failures section prints full
// diagnostics.
const maxDetailWidth = 60

// ConsoleReporter renders a summary as a table followed by the failures and a
// totals line.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool
	palette color.Palette
}

// NewConsoleReporter creates a console reporter writing to out. Diagnostics of
// passing and cached checks are shown only when verbose is set.
func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{
		out:     out,
		verbose: verbose,
		palette: color.NewPalette(out),
	}
}

// Report renders the summary.
func (r *ConsoleReporter) Report(summary Summary) error {
	var b strings.Builder

	if len(summary.Results) > 0 {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"CATEGORY", "CHECK", "RESULT", "DURATION", "DETAIL"})
		for _, res := range summary.Results {
			t.AppendRow(table.Row{
				res.Category,
				res.ID,
				r.formatStatus(res.Status),
				r.formatDuration(res),
				r.formatDetail(res),
			})
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(summary.Failures) > 0 {
		b.WriteString("\n")
		b.WriteString(r.palette.Header.Render("Failures"))
		b.WriteString("\n")
		for _, f := range summary.Failures {
			fmt.Fprintf(&b, "\n%s %s:%s\n", r.palette.Fail.Render("✗"), f.Category, f.ID)
			for _, line := range strings.Split(f.Diagnostic, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(r.formatTotals(summary))
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *ConsoleReporter) formatStatus(status orchestrator.Status) string {
	switch status {
	case orchestrator.StatusRanPass:
		return r.palette.Pass.Render(string(status))
	case orchestrator.StatusRanFail:
		return r.palette.Fail.Render(string(status))
	case orchestrator.StatusSkippedFromCache:
		return r.palette.Cached.Render(string(status))
	default:
		return string(status)
	}
}

func (r *ConsoleReporter) formatDuration(res orchestrator.Result) string {
	if res.Status == orchestrator.StatusSkippedFromCache {
		return r.palette.Muted.Render("-")
	}
	return res.Duration.Round(time.Millisecond).String()
}

func (r *ConsoleReporter) formatDetail(res orchestrator.Result) string {
	detail := res.Diagnostic
	switch {
	case res.Status == orchestrator.StatusRanFail:
	case !r.verbose:
		return ""
	case res.Status == orchestrator.StatusSkippedFromCache && res.CachedAt != nil:
		recorded := "recorded " + res.CachedAt.Format(time.RFC3339)
		if detail == "" {
			detail = recorded
		} else {
			detail = recorded + ": " + detail
		}
	}

	if i := strings.IndexByte(detail, '\n'); i >= 0 {
		detail = detail[:i]
	}
	return runewidth.Truncate(detail, maxDetailWidth, "...")
}

func (r *ConsoleReporter) formatTotals(s Summary) string {
	counts := fmt.Sprintf("%d passed, %d failed, %d cached (%d checks)", s.Passed, s.Failed, s.Skipped, s.Total)
	if s.OK() {
		return counts + ": " + r.palette.Pass.Render(string(s.Status))
	}
	return counts + ": " + r.palette.Fail.Render(string(s.Status))
}
