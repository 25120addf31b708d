package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"testctl/internal/cache"
	"testctl/internal/check"
	"testctl/pkg/logging"
)

// DefaultTimeout bounds a single check invocation when none is configured.
const DefaultTimeout = 60 * time.Second

// DefaultWorkers returns the default size of the independent-phase pool.
func DefaultWorkers() int {
	return 2 * runtime.GOMAXPROCS(0)
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	// Timeout bounds each check invocation
	Timeout time.Duration
	// Workers caps concurrent checks in the independent phase
	Workers int
	// Now supplies the timestamps recorded in the cache
	Now func() time.Time
}

// Executor runs the run-set of a Plan and records every outcome.
type Executor struct {
	store   cache.Store
	timeout time.Duration
	workers int
	now     func() time.Time
}

// NewExecutor creates an executor writing outcomes to store.
func NewExecutor(store cache.Store, cfg ExecutorConfig) *Executor {
	e := &Executor{
		store:   store,
		timeout: cfg.Timeout,
		workers: cfg.Workers,
		now:     cfg.Now,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if e.workers <= 0 {
		e.workers = DefaultWorkers()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Execute runs the plan's run-set and returns one result per executed check
// in execution-phase order. Cached checks are not touched.
func (e *Executor) Execute(ctx context.Context, plan Plan, sequential bool) []Result {
	if sequential {
		return e.runSequential(ctx, plan.RunSet())
	}

	results := e.runParallel(ctx, plan.Independent)
	// The independent phase has fully drained at this point.
	return append(results, e.runSequential(ctx, plan.Dependent)...)
}

func (e *Executor) runSequential(ctx context.Context, defs []check.Definition) []Result {
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		results = append(results, e.runOne(ctx, def))
	}
	return results
}

// runParallel executes checks on a bounded worker pool and returns results in
// the order of defs.
func (e *Executor) runParallel(ctx context.Context, defs []check.Definition) []Result {
	if len(defs) == 0 {
		return nil
	}

	type job struct {
		index int
		def   check.Definition
	}
	type indexedResult struct {
		index  int
		result Result
	}

	jobChan := make(chan job, len(defs))
	resultChan := make(chan indexedResult, len(defs))

	for i, def := range defs {
		jobChan <- job{index: i, def: def}
	}
	close(jobChan)

	numWorkers := e.workers
	if numWorkers > len(defs) {
		numWorkers = len(defs)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for j := range jobChan {
				logging.Debug("Executor", "Worker %d running %s", workerID, j.def.Key())
				resultChan <- indexedResult{index: j.index, result: e.runOne(ctx, j.def)}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, len(defs))
	for r := range resultChan {
		results[r.index] = r.result
	}
	return results
}

// runOne invokes a single check, records its outcome in the cache and returns
// the result.
func (e *Executor) runOne(ctx context.Context, def check.Definition) Result {
	result := newResult(def)

	start := time.Now()
	verdict, err := e.invoke(ctx, def)
	result.Duration = time.Since(start)

	switch {
	case err != nil:
		result.Status = StatusRanFail
		result.InvocationError = true
		result.Diagnostic = e.describeInvocationError(err)
	case verdict.Passed:
		result.Status = StatusRanPass
		result.Diagnostic = verdict.Diagnostic
	default:
		result.Status = StatusRanFail
		result.Diagnostic = verdict.Diagnostic
	}

	outcome := cache.OutcomeOf(result.Status == StatusRanPass)
	if err := e.store.Put(def.Key(), outcome, result.Diagnostic, e.now()); err != nil {
		logging.Error("Executor", err, "Failed to record result for %s", def.Key())
	}

	logging.Debug("Executor", "%s finished: %s in %s", def.Key(), result.Status, result.Duration.Round(time.Millisecond))
	return result
}

// invoke calls the check under the configured timeout. The caller stops
// waiting when the deadline passes, even if the invoker does not return.
func (e *Executor) invoke(ctx context.Context, def check.Definition) (check.Verdict, error) {
	checkCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type reply struct {
		verdict check.Verdict
		err     error
	}
	done := make(chan reply, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("check panicked: %v", r)}
			}
		}()
		verdict, err := def.Invoker.Invoke(checkCtx)
		done <- reply{verdict: verdict, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return check.Verdict{}, &check.InvocationError{Key: def.Key(), Err: r.err}
		}
		if !r.verdict.Passed && errors.Is(checkCtx.Err(), context.DeadlineExceeded) {
			// The check gave up because its deadline passed.
			return check.Verdict{}, &check.InvocationError{Key: def.Key(), Err: checkCtx.Err()}
		}
		return r.verdict, nil
	case <-checkCtx.Done():
		return check.Verdict{}, &check.InvocationError{Key: def.Key(), Err: checkCtx.Err()}
	}
}

func (e *Executor) describeInvocationError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("invocation error: timed out after %s", e.timeout)
	case errors.Is(err, context.Canceled):
		return "invocation error: cancelled"
	default:
		return err.Error()
	}
}
