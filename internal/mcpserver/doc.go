// Package mcpserver exposes testctl over the Model Context Protocol so that
// AI assistants and editors can list, run and reset checks.
//
// The server speaks MCP over stdio and provides three tools:
//
//   - testctl_list_checks: registered checks, optionally filtered by category
//   - testctl_run_checks: run checks with the usual cache rules and return the
//     summary as JSON; "force" clears the cache first
//   - testctl_clear_cache: drop every cached result
//
// Runs are serialized. An unknown category is returned as a tool error and
// nothing is executed.
package mcpserver
