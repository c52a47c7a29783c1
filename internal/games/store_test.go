package games

import (
	"testing"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameTestNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) GameStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(teardown)

	// Games reference fields, so the referenced rows must exist.
	for _, id := range []string{"field-1", "field-2"} {
		_, err := db.Exec("INSERT INTO fields (id, name, lat, lon, mode) VALUES (?, ?, 0, 0, 'BOTH')", id, id)
		require.NoError(t, err)
	}
	return New(db)
}

func testGame(fieldID string, start, end time.Time, status GameStatus) *Game {
	g := &Game{
		ID:        uuid.New().String(),
		Mode:      ModeSmall,
		FieldID:   fieldID,
		Start:     start,
		End:       end,
		Status:    status,
		CreatedAt: gameTestNow,
	}
	for i, team := range []Team{TeamA, TeamA, TeamB, TeamB} {
		g.Players = append(g.Players, GamePlayer{
			PlayerID: uuid.New().String(),
			Name:     []string{"Ana", "Ben", "Cara", "Dan"}[i],
			Team:     team,
		})
	}
	return g
}

func TestCreateAndGetGame(t *testing.T) {
	store := setupTestStore(t)
	game := testGame("field-1", gameTestNow.Add(time.Hour), gameTestNow.Add(2*time.Hour), StatusScheduled)

	require.NoError(t, store.CreateGame(game))

	got, err := store.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, got.ID)
	assert.Equal(t, ModeSmall, got.Mode)
	assert.Equal(t, "field-1", got.FieldID)
	assert.Equal(t, StatusScheduled, got.Status)
	assert.True(t, got.Start.Equal(game.Start))
	assert.True(t, got.End.Equal(game.End))
	require.Len(t, got.Players, 4)
	assert.Equal(t, game.Players[0].PlayerID, got.Players[0].PlayerID)
	assert.Equal(t, TeamB, got.Players[2].Team)
}

func TestGetGameNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetGame("missing")
	assert.ErrorContains(t, err, "game not found")
}

func TestBookedGames(t *testing.T) {
	store := setupTestStore(t)

	scheduled := testGame("field-1", gameTestNow.Add(time.Hour), gameTestNow.Add(2*time.Hour), StatusScheduled)
	inProgress := testGame("field-1", gameTestNow.Add(-30*time.Minute), gameTestNow.Add(30*time.Minute), StatusInProgress)
	ended := testGame("field-1", gameTestNow.Add(-3*time.Hour), gameTestNow.Add(-2*time.Hour), StatusEnded)
	otherField := testGame("field-2", gameTestNow.Add(time.Hour), gameTestNow.Add(2*time.Hour), StatusScheduled)
	for _, g := range []*Game{scheduled, inProgress, ended, otherField} {
		require.NoError(t, store.CreateGame(g))
	}

	intervals, err := store.BookedGames("field-1", gameTestNow.Add(-4*time.Hour), gameTestNow.Add(4*time.Hour))
	require.NoError(t, err)

	// Ended games no longer block the field; other fields are irrelevant.
	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].Start.Equal(inProgress.Start), "results ordered by start time")
	assert.True(t, intervals[1].Start.Equal(scheduled.Start))
}

func TestBookedGamesWindow(t *testing.T) {
	store := setupTestStore(t)

	game := testGame("field-1", gameTestNow.Add(time.Hour), gameTestNow.Add(2*time.Hour), StatusScheduled)
	require.NoError(t, store.CreateGame(game))

	// A window ending exactly at the game's start does not include it.
	intervals, err := store.BookedGames("field-1", gameTestNow, gameTestNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, intervals)

	intervals, err = store.BookedGames("field-1", gameTestNow, gameTestNow.Add(61*time.Minute))
	require.NoError(t, err)
	assert.Len(t, intervals, 1)
}

func TestUpdateStatus(t *testing.T) {
	store := setupTestStore(t)
	game := testGame("field-1", gameTestNow, gameTestNow.Add(time.Hour), StatusScheduled)
	require.NoError(t, store.CreateGame(game))

	require.NoError(t, store.UpdateStatus(game.ID, StatusInProgress))

	got, err := store.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
}

func TestDeleteGame(t *testing.T) {
	store := setupTestStore(t)
	game := testGame("field-1", gameTestNow, gameTestNow.Add(time.Hour), StatusScheduled)
	require.NoError(t, store.CreateGame(game))

	require.NoError(t, store.DeleteGame(game.ID))

	_, err := store.GetGame(game.ID)
	assert.ErrorContains(t, err, "game not found")

	// The roster rows are gone too, so the field is immediately free again.
	intervals, err := store.BookedGames("field-1", gameTestNow.Add(-time.Hour), gameTestNow.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestGamesForLifecycle(t *testing.T) {
	store := setupTestStore(t)

	active := testGame("field-1", gameTestNow, gameTestNow.Add(time.Hour), StatusScheduled)
	done := testGame("field-1", gameTestNow.Add(-2*time.Hour), gameTestNow.Add(-time.Hour), StatusEnded)
	require.NoError(t, store.CreateGame(active))
	require.NoError(t, store.CreateGame(done))

	pending, err := store.GamesForLifecycle()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, active.ID, pending[0].ID)
	assert.Len(t, pending[0].Players, 4)
}

func TestListGames(t *testing.T) {
	store := setupTestStore(t)

	first := testGame("field-1", gameTestNow, gameTestNow.Add(time.Hour), StatusScheduled)
	first.CreatedAt = gameTestNow.Add(-time.Hour)
	second := testGame("field-1", gameTestNow.Add(2*time.Hour), gameTestNow.Add(3*time.Hour), StatusScheduled)
	require.NoError(t, store.CreateGame(first))
	require.NoError(t, store.CreateGame(second))

	all, err := store.ListGames()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
}

func TestIntervalOverlaps(t *testing.T) {
	interval := Interval{Start: gameTestNow, End: gameTestNow.Add(time.Hour)}

	assert.True(t, interval.Overlaps(gameTestNow.Add(30*time.Minute), gameTestNow.Add(90*time.Minute)))
	assert.True(t, interval.Overlaps(gameTestNow.Add(-30*time.Minute), gameTestNow.Add(time.Minute)))
	// Touching endpoints do not overlap.
	assert.False(t, interval.Overlaps(gameTestNow.Add(time.Hour), gameTestNow.Add(2*time.Hour)))
	assert.False(t, interval.Overlaps(gameTestNow.Add(-time.Hour), gameTestNow))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("small")
	require.NoError(t, err)
	assert.Equal(t, ModeSmall, mode)

	mode, err = ParseMode(" LARGE ")
	require.NoError(t, err)
	assert.Equal(t, ModeLarge, mode)

	_, err = ParseMode("medium")
	assert.Error(t, err)
}
