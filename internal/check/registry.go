package check

import (
	"fmt"
)

// Registry holds check definitions in registration order.
type Registry struct {
	checks     []Definition
	categories []string
	byCategory map[string][]int
}

// NewRegistry validates and registers defs in the given order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		checks:     make([]Definition, 0, len(defs)),
		byCategory: make(map[string][]int),
	}

	seen := make(map[Key]bool, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("check in category %q has no id", def.Category)
		}
		if def.Category == "" {
			return nil, fmt.Errorf("check %q has no category", def.ID)
		}
		if def.Invoker == nil {
			return nil, fmt.Errorf("check %s has no invoker", def.Key())
		}
		if seen[def.Key()] {
			return nil, fmt.Errorf("check %s is registered more than once", def.Key())
		}
		seen[def.Key()] = true

		if _, ok := r.byCategory[def.Category]; !ok {
			r.categories = append(r.categories, def.Category)
		}
		r.byCategory[def.Category] = append(r.byCategory[def.Category], len(r.checks))
		r.checks = append(r.checks, def)
	}

	return r, nil
}

// ListChecks returns the checks registered under any of the given categories,
// each exactly once, in registration order. An empty selection returns every
// check. A category with no registered checks yields a NoSuchCategoryError.
func (r *Registry) ListChecks(categories []string) ([]Definition, error) {
	if len(categories) == 0 {
		out := make([]Definition, len(r.checks))
		copy(out, r.checks)
		return out, nil
	}

	selected := make(map[string]bool, len(categories))
	for _, name := range categories {
		if _, ok := r.byCategory[name]; !ok {
			return nil, &NoSuchCategoryError{Category: name, Known: r.Categories()}
		}
		selected[name] = true
	}

	var out []Definition
	for _, def := range r.checks {
		if selected[def.Category] {
			out = append(out, def)
		}
	}
	return out, nil
}

// Categories returns the registered category names in first-registration order.
func (r *Registry) Categories() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.checks)
}
