// Package check defines the checks testctl can run and the registry that
// holds them.
//
// A check is a single named verification unit belonging to a category, such
// as "infrastructure", "health", "api" or "integration". Categories are flat
// and open-ended: any name used by a registered check is a valid selector.
//
// # Invocation contract
//
// Every check carries an Invoker. The orchestrator calls Invoke with a context
// bounded by the configured timeout and never inspects which concrete variant
// it holds. Invoke reports one of two things:
//
//   - a Verdict, when the check ran and decided pass or fail on its own
//   - an error, when the mechanism itself failed (the subprocess could not be
//     started, a client could not be built, the deadline expired)
//
// Both failure kinds end up as a failed result; the error kind is labelled as
// an invocation error in the report.
//
// # Registry
//
// The Registry is built once at startup and never mutated. ListChecks resolves
// category selectors in registration order so reports are reproducible, and
// rejects unknown categories with a NoSuchCategoryError before anything runs.
package check
