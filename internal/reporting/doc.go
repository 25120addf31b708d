// Package reporting aggregates check results into a Summary and renders it.
//
// Summarize is pure: the summary depends only on the results passed in, in
// their given order, so completion order inside the executor never shows up
// in a report. The overall status is OK exactly when no check ran and failed;
// ExitCode maps it to the process exit code.
//
// Two reporters are provided:
//   - ConsoleReporter: a table of every check, a failures section with full
//     diagnostics, and a totals line
//   - JSONReporter: the summary as indented JSON
//
// SaveReport additionally persists a summary as a uniquely named JSON file.
package reporting
