package ids

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Monotonic(t *testing.T) {
	g := New()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	prev := g.NewString()
	for i := 0; i < 1000; i++ {
		next := g.NewString()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestGenerator_ConcurrentUnique(t *testing.T) {
	g := New()

	const n = 500
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			id := g.NewString()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(New().NewString()))
	assert.False(t, Valid("not-a-ulid"))
	assert.False(t, Valid(""))
}
