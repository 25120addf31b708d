package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"testctl/internal/cache"
	"testctl/internal/check"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// callLog records invocation order across checks.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.list() {
		if c == name {
			n++
		}
	}
	return n
}

// fakeCheck builds check definitions with scripted behaviour.
type fakeCheck struct {
	category    string
	id          string
	independent bool
	pass        bool
	diagnostic  string
	delay       time.Duration
	err         error
	before      func()
}

func (f fakeCheck) definition(log *callLog) check.Definition {
	key := check.Key{Category: f.category, ID: f.id}
	return check.Definition{
		ID:          f.id,
		Category:    f.category,
		Independent: f.independent,
		Invoker: check.InvokerFunc(func(ctx context.Context) (check.Verdict, error) {
			if f.before != nil {
				f.before()
			}
			if f.delay > 0 {
				select {
				case <-time.After(f.delay):
				case <-ctx.Done():
					return check.Verdict{}, ctx.Err()
				}
			}
			if log != nil {
				log.add(key.String())
			}
			if f.err != nil {
				return check.Verdict{}, f.err
			}
			return check.Verdict{Passed: f.pass, Diagnostic: f.diagnostic}, nil
		}),
	}
}

func registryOf(t *testing.T, log *callLog, checks ...fakeCheck) *check.Registry {
	t.Helper()
	defs := make([]check.Definition, 0, len(checks))
	for _, c := range checks {
		defs = append(defs, c.definition(log))
	}
	r, err := check.NewRegistry(defs...)
	require.NoError(t, err)
	return r
}

func newTestOrchestrator(t *testing.T, registry *check.Registry, store cache.Store, clock *fakeClock) *Orchestrator {
	t.Helper()
	o, err := New(Config{
		Registry: registry,
		Store:    store,
		TTL:      5 * time.Minute,
		Timeout:  2 * time.Second,
		Workers:  4,
		Now:      clock.Now,
	})
	require.NoError(t, err)
	return o
}

func statuses(results []Result) map[string]Status {
	out := make(map[string]Status, len(results))
	for _, r := range results {
		out[r.Key().String()] = r.Status
	}
	return out
}

func resultKeys(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Key().String())
	}
	return out
}

// inFlight tracks concurrent executions.
type inFlight struct {
	current atomic.Int32
	max     atomic.Int32
}

func (f *inFlight) enter() {
	n := f.current.Add(1)
	for {
		m := f.max.Load()
		if n <= m || f.max.CompareAndSwap(m, n) {
			return
		}
	}
}

func (f *inFlight) leave() {
	f.current.Add(-1)
}
