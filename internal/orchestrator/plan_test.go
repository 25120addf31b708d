package orchestrator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"testctl/internal/cache"
	"testctl/internal/check"
)

// mockStore is a testify mock of cache.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(key check.Key) (cache.Entry, bool, error) {
	args := m.Called(key)
	return args.Get(0).(cache.Entry), args.Bool(1), args.Error(2)
}

func (m *mockStore) Put(key check.Key, outcome cache.Outcome, diagnostic string, now time.Time) error {
	args := m.Called(key, outcome, diagnostic, now)
	return args.Error(0)
}

func (m *mockStore) Clear() error {
	return m.Called().Error(0)
}

func TestBuildPlan(t *testing.T) {
	clock := newFakeClock()
	now := clock.Now()
	ttl := 5 * time.Minute

	registry := registryOf(t, nil,
		fakeCheck{category: "infrastructure", id: "ping", independent: true, pass: true},
		fakeCheck{category: "infrastructure", id: "disk", independent: true, pass: true},
		fakeCheck{category: "api", id: "health", independent: true, pass: true},
		fakeCheck{category: "api", id: "contract", pass: true},
		fakeCheck{category: "api", id: "schema", pass: true},
	)
	checks, err := registry.ListChecks(nil)
	require.NoError(t, err)

	store := cache.NewMemoryStore(ttl)
	// fresh pass: reusable
	require.NoError(t, store.Put(check.Key{Category: "infrastructure", ID: "ping"}, cache.OutcomePass, "", now.Add(-time.Minute)))
	// expired pass: must run
	require.NoError(t, store.Put(check.Key{Category: "infrastructure", ID: "disk"}, cache.OutcomePass, "", now.Add(-10*time.Minute)))
	// fresh failure: must run
	require.NoError(t, store.Put(check.Key{Category: "api", ID: "health"}, cache.OutcomeFail, "503", now.Add(-time.Second)))
	// fresh pass on a dependent check: reusable
	require.NoError(t, store.Put(check.Key{Category: "api", ID: "schema"}, cache.OutcomePass, "", now.Add(-time.Second)))

	t.Run("uses cache", func(t *testing.T) {
		plan := BuildPlan(checks, store, false, now, ttl)

		assert.Len(t, plan.Checks, 5)
		assert.Len(t, plan.Cached, 2)
		assert.Contains(t, plan.Cached, check.Key{Category: "infrastructure", ID: "ping"})
		assert.Contains(t, plan.Cached, check.Key{Category: "api", ID: "schema"})
		assert.Equal(t, []string{"infrastructure:disk", "api:health"}, keysOf(plan.Independent))
		assert.Equal(t, []string{"api:contract"}, keysOf(plan.Dependent))
		assert.Equal(t, []string{"infrastructure:disk", "api:health", "api:contract"}, keysOf(plan.RunSet()))
	})

	t.Run("force ignores cache", func(t *testing.T) {
		plan := BuildPlan(checks, store, true, now, ttl)

		assert.Empty(t, plan.Cached)
		assert.Equal(t, []string{"infrastructure:ping", "infrastructure:disk", "api:health"}, keysOf(plan.Independent))
		assert.Equal(t, []string{"api:contract", "api:schema"}, keysOf(plan.Dependent))
	})
}

func TestBuildPlan_StoreErrorIsMiss(t *testing.T) {
	registry := registryOf(t, nil, fakeCheck{category: "api", id: "health", independent: true, pass: true})
	checks, err := registry.ListChecks(nil)
	require.NoError(t, err)

	store := &mockStore{}
	store.On("Get", check.Key{Category: "api", ID: "health"}).
		Return(cache.Entry{}, false, errors.New("corrupt entry"))

	plan := BuildPlan(checks, store, false, time.Now(), time.Minute)

	assert.Empty(t, plan.Cached)
	assert.Equal(t, []string{"api:health"}, keysOf(plan.Independent))
	store.AssertExpectations(t)
}

func TestBuildPlan_ForceSkipsReads(t *testing.T) {
	registry := registryOf(t, nil, fakeCheck{category: "api", id: "health", independent: true, pass: true})
	checks, err := registry.ListChecks(nil)
	require.NoError(t, err)

	store := &mockStore{}
	plan := BuildPlan(checks, store, true, time.Now(), time.Minute)

	assert.Len(t, plan.RunSet(), 1)
	store.AssertNotCalled(t, "Get", mock.Anything)
}

func keysOf(defs []check.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Key().String())
	}
	return out
}
