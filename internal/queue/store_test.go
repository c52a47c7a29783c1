package queue

import (
	"fmt"
	"testing"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/database"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) QueueStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(teardown)

	// Queue entries reference players, so the referenced rows must exist.
	for i := 1; i <= 12; i++ {
		_, err := db.Exec("INSERT INTO players (id, name) VALUES (?, ?)", fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
	}
	return NewStore(db)
}

func TestEnqueueAndEntries(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, base))
	require.NoError(t, store.Enqueue("p2", games.ModeSmall, base.Add(time.Second)))
	require.NoError(t, store.Enqueue("p3", games.ModeSmall, base.Add(2*time.Second)))

	entries, err := store.Entries(games.ModeSmall)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, "p2", entries[1].PlayerID)
	assert.Equal(t, "p3", entries[2].PlayerID)
	assert.True(t, entries[0].EnqueuedAt.Equal(base))
}

func TestEnqueueDuplicate(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, now))

	err := store.Enqueue("p1", games.ModeSmall, now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyQueued)

	// The same player may wait for the other mode.
	assert.NoError(t, store.Enqueue("p1", games.ModeLarge, now))
}

func TestEntriesModeIsolation(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, now))
	require.NoError(t, store.Enqueue("p2", games.ModeLarge, now))

	entries, err := store.Entries(games.ModeSmall)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].PlayerID)
}

func TestRemove(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, now))
	require.NoError(t, store.Remove("p1", games.ModeSmall))

	queued, err := store.IsQueued("p1", games.ModeSmall)
	require.NoError(t, err)
	assert.False(t, queued)
}

func TestRemoveNotQueued(t *testing.T) {
	store := setupTestStore(t)

	err := store.Remove("ghost", games.ModeSmall)
	assert.ErrorIs(t, err, ErrNotQueued)
}

func TestRemoveAll(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, store.Enqueue(id, games.ModeSmall, now))
		now = now.Add(time.Second)
	}

	require.NoError(t, store.RemoveAll(games.ModeSmall, []string{"p1", "p2"}))

	entries, err := store.Entries(games.ModeSmall)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p3", entries[0].PlayerID)
}

func TestRemoveAllIsAtomic(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, now))

	// p2 is not queued, so the whole removal must roll back.
	err := store.RemoveAll(games.ModeSmall, []string{"p1", "p2"})
	require.Error(t, err)

	queued, err := store.IsQueued("p1", games.ModeSmall)
	require.NoError(t, err)
	assert.True(t, queued, "p1 should survive a failed RemoveAll")
}

func TestIsQueued(t *testing.T) {
	store := setupTestStore(t)

	queued, err := store.IsQueued("p1", games.ModeSmall)
	require.NoError(t, err)
	assert.False(t, queued)

	require.NoError(t, store.Enqueue("p1", games.ModeSmall, time.Now()))

	queued, err = store.IsQueued("p1", games.ModeSmall)
	require.NoError(t, err)
	assert.True(t, queued)
}
