package session_test

import (
	"sync"
	"testing"

	"github.com/aretw0/witgo/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestTracker_BeginIncrements(t *testing.T) {
	tr := session.NewTracker()

	g1 := tr.Begin("s1")
	g2 := tr.Begin("s1")
	assert.Equal(t, uint64(1), g1)
	assert.Equal(t, uint64(2), g2)

	// Independent sessions do not share counters.
	assert.Equal(t, uint64(1), tr.Begin("s2"))
}

func TestTracker_CurrentReflectsLatestRun(t *testing.T) {
	tr := session.NewTracker()

	_, ok := tr.Current("s1")
	assert.False(t, ok, "no run in flight yet")

	gen := tr.Begin("s1")
	cur, ok := tr.Current("s1")
	assert.True(t, ok)
	assert.Equal(t, gen, cur)

	newer := tr.Begin("s1")
	cur, _ = tr.Current("s1")
	assert.Equal(t, newer, cur, "older generation must no longer be current")
}

func TestTracker_EndIsGenerationGuarded(t *testing.T) {
	tr := session.NewTracker()

	old := tr.Begin("s1")
	newer := tr.Begin("s1")

	// Stale cleanup is a no-op; the newer run owns the entry.
	tr.End("s1", old)
	cur, ok := tr.Current("s1")
	assert.True(t, ok)
	assert.Equal(t, newer, cur)

	tr.End("s1", newer)
	_, ok = tr.Current("s1")
	assert.False(t, ok)
	assert.Zero(t, tr.Active())
}

func TestTracker_ConcurrentBegin(t *testing.T) {
	tr := session.NewTracker()

	const workers = 50
	var wg sync.WaitGroup
	gens := make([]uint64, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			gens[i] = tr.Begin("shared")
		}(i)
	}
	wg.Wait()

	// Every worker got a distinct generation and the highest one is current.
	seen := make(map[uint64]bool, workers)
	var max uint64
	for _, g := range gens {
		assert.False(t, seen[g], "generation %d handed out twice", g)
		seen[g] = true
		if g > max {
			max = g
		}
	}
	cur, ok := tr.Current("shared")
	assert.True(t, ok)
	assert.Equal(t, max, cur)
}
