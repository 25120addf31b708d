package orchestrator

import (
	"time"

	"testctl/internal/cache"
	"testctl/internal/check"
	"testctl/pkg/logging"
)

// Plan is the execution plan for one invocation.
type Plan struct {
	// Checks holds every selected check in registration order
	Checks []check.Definition
	// Cached holds the fresh entries that replace a run
	Cached map[check.Key]cache.Entry
	// Independent is the part of the run-set eligible for concurrent execution
	Independent []check.Definition
	// Dependent is the part of the run-set that must run strictly in order
	Dependent []check.Definition
}

// RunSet returns every check that must execute, in registration order.
func (p Plan) RunSet() []check.Definition {
	out := make([]check.Definition, 0, len(p.Independent)+len(p.Dependent))
	for _, def := range p.Checks {
		if _, cached := p.Cached[def.Key()]; !cached {
			out = append(out, def)
		}
	}
	return out
}

// BuildPlan partitions checks into cache hits and the run-set. A check is a
// cache hit only when forceAll is false and its entry is fresh at now.
func BuildPlan(checks []check.Definition, store cache.Store, forceAll bool, now time.Time, ttl time.Duration) Plan {
	plan := Plan{
		Checks: checks,
		Cached: make(map[check.Key]cache.Entry),
	}

	for _, def := range checks {
		if !forceAll {
			entry, found, err := store.Get(def.Key())
			switch {
			case err != nil:
				logging.Warn("Planner", "Ignoring unreadable cache entry for %s: %v", def.Key(), err)
			case found && cache.IsFresh(entry, now, ttl):
				logging.Debug("Planner", "Reusing result for %s recorded %s ago", def.Key(), entry.Age(now).Round(time.Second))
				plan.Cached[def.Key()] = entry
				continue
			case found:
				logging.Debug("Planner", "Cached %s result for %s is not reusable", entry.Outcome, def.Key())
			}
		}

		if def.Independent {
			plan.Independent = append(plan.Independent, def)
		} else {
			plan.Dependent = append(plan.Dependent, def)
		}
	}

	return plan
}
