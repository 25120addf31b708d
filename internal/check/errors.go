package check

import (
	"errors"
	"fmt"
	"strings"
)

// NoSuchCategoryError is returned when a requested category has no
// registered checks.
type NoSuchCategoryError struct {
	Category string
	// Known lists the registered categories, for the error message
	Known []string
}

func (e *NoSuchCategoryError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown category %q", e.Category)
	}
	return fmt.Sprintf("unknown category %q (known categories: %s)", e.Category, strings.Join(e.Known, ", "))
}

// IsNoSuchCategory reports whether err is or wraps a NoSuchCategoryError.
func IsNoSuchCategory(err error) bool {
	var target *NoSuchCategoryError
	return errors.As(err, &target)
}

// InvocationError marks an infrastructure fault while invoking a check, as
// opposed to the check reporting failure.
type InvocationError struct {
	Key Key
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invocation error: %v", e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
