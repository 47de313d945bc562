package storage_feedback

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

const sessionID = model.SessionID("session-1")

func TestRecordSwipe(t *testing.T) {
	t.Parallel()

	t.Run("Should append new swipes in order", func(t *testing.T) {
		t.Parallel()

		store := New()

		assert.Equal(t, 1, store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike))
		assert.Equal(t, 2, store.RecordSwipe(sessionID, "Alice", 2, model.ActionDislike))
		assert.Equal(t, 3, store.RecordSwipe(sessionID, "Alice", 3, model.ActionSkip))

		records := store.UserSwipes(sessionID, "Alice")
		require.Len(t, records, 3)
		assert.Equal(t, model.MovieID(1), records[0].MovieID)
		assert.Equal(t, model.MovieID(2), records[1].MovieID)
		assert.Equal(t, model.MovieID(3), records[2].MovieID)
	})

	t.Run("Should overwrite repeated swipe in place", func(t *testing.T) {
		t.Parallel()

		store := New()
		store.RecordSwipe(sessionID, "Alice", 1, model.ActionDislike)
		store.RecordSwipe(sessionID, "Alice", 2, model.ActionLike)

		count := store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)

		assert.Equal(t, 2, count)
		records := store.UserSwipes(sessionID, "Alice")
		require.Len(t, records, 2)
		assert.Equal(t, model.MovieID(1), records[0].MovieID)
		assert.Equal(t, model.ActionLike, records[0].Action)
	})

	t.Run("Should isolate users and sessions", func(t *testing.T) {
		t.Parallel()

		store := New()
		store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)
		store.RecordSwipe(sessionID, "Bob", 2, model.ActionLike)
		store.RecordSwipe("other", "Alice", 3, model.ActionLike)

		assert.Equal(t, 1, store.SwipeCount(sessionID, "Alice"))
		assert.Equal(t, 1, store.SwipeCount(sessionID, "Bob"))
		assert.Equal(t, 1, store.SwipeCount("other", "Alice"))
		assert.Equal(t, 0, store.SwipeCount("other", "Bob"))
	})
}

func TestSeenFilms(t *testing.T) {
	t.Parallel()

	store := New()
	store.RecordSwipe(sessionID, "Alice", 5, model.ActionLike)
	store.RecordSwipe(sessionID, "Alice", 2, model.ActionSkip)
	store.RecordSwipe(sessionID, "Bob", 5, model.ActionDislike)
	store.RecordSwipe(sessionID, "Bob", 9, model.ActionLike)

	seen := store.SeenFilms(sessionID)

	assert.Equal(t, []model.MovieID{2, 5, 9}, seen)
	assert.Empty(t, store.SeenFilms("unknown"))
}

func TestSessionSwipes(t *testing.T) {
	t.Parallel()

	store := New()
	store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)

	snapshot := store.SessionSwipes(sessionID)
	snapshot["Alice"][0].Action = model.ActionDislike

	// the snapshot must not alias internal state
	records := store.UserSwipes(sessionID, "Alice")
	require.Len(t, records, 1)
	assert.Equal(t, model.ActionLike, records[0].Action)
}

func TestIsFeedbackReady(t *testing.T) {
	t.Parallel()

	store := New()
	store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)
	store.RecordSwipe(sessionID, "Alice", 2, model.ActionSkip)

	assert.False(t, store.IsFeedbackReady(sessionID, "Alice", 3))

	store.RecordSwipe(sessionID, "Alice", 3, model.ActionSkip)

	// skips count toward readiness
	assert.True(t, store.IsFeedbackReady(sessionID, "Alice", 3))
}

func TestStats(t *testing.T) {
	t.Parallel()

	store := New()
	store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)
	store.RecordSwipe(sessionID, "Alice", 2, model.ActionLike)
	store.RecordSwipe(sessionID, "Alice", 3, model.ActionDislike)
	store.RecordSwipe(sessionID, "Alice", 4, model.ActionSkip)

	stats := store.Stats(sessionID)

	require.Contains(t, stats, "Alice")
	assert.Equal(t, model.UserSwipeStats{Total: 4, Likes: 2, Dislikes: 1, Skips: 1}, stats["Alice"])
}

func TestClear(t *testing.T) {
	t.Parallel()

	store := New()
	store.RecordSwipe(sessionID, "Alice", 1, model.ActionLike)

	assert.True(t, store.Clear(sessionID))
	assert.False(t, store.Clear(sessionID))
	assert.Empty(t, store.UserSwipes(sessionID, "Alice"))
}

func TestSweep(t *testing.T) {
	t.Parallel()

	current := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(d)
	}

	store := New(
		WithMaxIdle(time.Hour),
		WithSweepEvery(2),
		WithClock(clock),
	)

	store.RecordSwipe("stale", "Alice", 1, model.ActionLike)
	advance(2 * time.Hour)

	// the second write hits the sweep boundary and drops stale state
	store.RecordSwipe("fresh", "Bob", 2, model.ActionLike)

	assert.Empty(t, store.UserSwipes("stale", "Alice"))
	assert.Len(t, store.UserSwipes("fresh", "Bob"), 1)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := New()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			for j := range 50 {
				store.RecordSwipe(sessionID, user, model.MovieID(j), model.ActionLike)
				store.SeenFilms(sessionID)
				store.Stats(sessionID)
			}
		}(i)
	}
	wg.Wait()

	stats := store.Stats(sessionID)
	require.Len(t, stats, 8)
	for _, us := range stats {
		assert.Equal(t, 50, us.Total)
	}
}
