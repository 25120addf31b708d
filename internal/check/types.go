package check

import (
	"context"
	"fmt"
)

// Verdict is what a check decided about the thing it inspects.
type Verdict struct {
	// Passed is true when the check succeeded
	Passed bool `json:"passed"`
	// Diagnostic is a short human-readable explanation, optional on pass
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Pass returns a passing verdict with an optional diagnostic.
func Pass(diagnostic string) Verdict {
	return Verdict{Passed: true, Diagnostic: diagnostic}
}

// Fail returns a failing verdict with a formatted diagnostic.
func Fail(format string, args ...interface{}) Verdict {
	return Verdict{Passed: false, Diagnostic: fmt.Sprintf(format, args...)}
}

// Invoker is the external action behind a check. Implementations must not
// require interactive input and must be safe to call concurrently with
// unrelated checks.
type Invoker interface {
	Invoke(ctx context.Context) (Verdict, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context) (Verdict, error)

// Invoke calls f(ctx).
func (f InvokerFunc) Invoke(ctx context.Context) (Verdict, error) {
	return f(ctx)
}

// Definition describes a registered check. It is immutable after registration.
type Definition struct {
	// ID is unique within Category
	ID string
	// Category groups checks that are selected together
	Category string
	// Independent checks have no ordering dependency and may run concurrently
	Independent bool
	// Description is shown by listings
	Description string
	// Kind names the invoker variant (command, http, tcp, kube) for listings only
	Kind string
	// Invoker performs the check
	Invoker Invoker
}

// Key returns the identity of the check.
func (d Definition) Key() Key {
	return Key{Category: d.Category, ID: d.ID}
}

// Key identifies a check across the registry and the result cache.
type Key struct {
	Category string `json:"category"`
	ID       string `json:"id"`
}

// String renders the key as "category:id".
func (k Key) String() string {
	return k.Category + ":" + k.ID
}
