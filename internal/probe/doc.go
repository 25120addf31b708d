// Package probe provides the concrete check variants of testctl and builds a
// check.Registry from configuration.
//
//   - Command runs a subprocess. Exit code 0 passes; the last 20 lines of
//     combined output become the diagnostic.
//   - HTTP sends a request with a go-cleanhttp client and compares the status
//     code and, optionally, a body substring.
//   - TCP dials an address.
//   - Kube lists pods by label selector with client-go and requires all of
//     them to be running and ready.
//
// A probe returns an error only when the mechanism itself broke: the command
// could not start, the request could not be built, the Kubernetes client could
// not be configured, or the context expired. Everything the probed system
// answers, including refused connections, is a failing verdict.
package probe
