// Package orchestrator decides which checks must run, runs them, and merges
// their results with cached ones.
//
// # Planning
//
// For every selected check the planner consults the result cache once. A check
// whose last recorded outcome is a pass younger than the TTL is reported as
// skipped from cache; everything else (no entry, an expired or failing entry,
// an unreadable entry, or a forced run) joins the run-set. All cache reads
// happen during planning, before any worker starts.
//
// # Execution
//
// The run-set is split by the independence flag of each check:
//
//  1. Independent checks run on a bounded worker pool.
//  2. After the pool drains, dependent checks run one at a time in
//     registration order.
//
// In sequential mode the whole run-set runs one at a time in registration
// order. Every invocation is bounded by a timeout; a check that overruns is
// recorded as failed and its worker is released even if the check ignores its
// context. Each outcome is written to the cache as soon as the check finishes.
// Nothing is retried.
//
// Dependent checks always run, even when an earlier check failed.
package orchestrator
