package orchestrator

import (
	"context"
	"fmt"
	"time"

	"testctl/internal/cache"
	"testctl/internal/check"
	"testctl/pkg/logging"
)

// Config holds the collaborators and policy knobs of an Orchestrator.
type Config struct {
	Registry *check.Registry
	Store    cache.Store
	// TTL is the freshness window for cached passing results
	TTL time.Duration
	// Timeout bounds each check invocation
	Timeout time.Duration
	// Workers caps concurrency in the independent phase
	Workers int
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// Orchestrator resolves category selections into checks, plans them against
// the cache and executes the run-set.
type Orchestrator struct {
	registry *check.Registry
	store    cache.Store
	executor *Executor
	ttl      time.Duration
	now      func() time.Time
}

// New creates an orchestrator. Registry and Store are required.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("orchestrator requires a check registry")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("orchestrator requires a cache store")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	return &Orchestrator{
		registry: cfg.Registry,
		store:    cfg.Store,
		executor: NewExecutor(cfg.Store, ExecutorConfig{
			Timeout: cfg.Timeout,
			Workers: cfg.Workers,
			Now:     now,
		}),
		ttl: ttl,
		now: now,
	}, nil
}

// Registry returns the check registry.
func (o *Orchestrator) Registry() *check.Registry {
	return o.registry
}

// Store returns the result cache.
func (o *Orchestrator) Store() cache.Store {
	return o.store
}

// Run executes the checks of the given categories (all when empty) and returns
// one result per selected check in registration order. Unknown categories
// fail with a check.NoSuchCategoryError before anything runs.
func (o *Orchestrator) Run(ctx context.Context, categories []string, opts Options) ([]Result, error) {
	checks, err := o.registry.ListChecks(categories)
	if err != nil {
		return nil, err
	}

	if opts.ClearCache {
		if err := o.store.Clear(); err != nil {
			logging.Warn("Orchestrator", "Failed to clear cache: %v", err)
		}
	}

	return o.Schedule(ctx, checks, opts), nil
}

// Schedule plans checks against the cache, executes the run-set and merges the
// outcomes with cache hits in the order of checks.
func (o *Orchestrator) Schedule(ctx context.Context, checks []check.Definition, opts Options) []Result {
	now := o.now()
	plan := BuildPlan(checks, o.store, opts.ForceAll, now, o.ttl)

	logging.Info("Orchestrator", "Selected %d checks: %d cached, %d independent, %d dependent",
		len(plan.Checks), len(plan.Cached), len(plan.Independent), len(plan.Dependent))

	ran := make(map[check.Key]Result, len(plan.Checks)-len(plan.Cached))
	for _, r := range o.executor.Execute(ctx, plan, opts.Sequential) {
		ran[r.Key()] = r
	}

	results := make([]Result, 0, len(plan.Checks))
	for _, def := range plan.Checks {
		if entry, ok := plan.Cached[def.Key()]; ok {
			results = append(results, cachedResult(def, entry))
			continue
		}
		results = append(results, ran[def.Key()])
	}
	return results
}

func cachedResult(def check.Definition, entry cache.Entry) Result {
	result := newResult(def)
	result.Status = StatusSkippedFromCache
	result.Diagnostic = entry.Diagnostic
	recordedAt := entry.RecordedAt
	result.CachedAt = &recordedAt
	return result
}
