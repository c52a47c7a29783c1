package fields

import (
	"testing"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/database"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestIndex(t *testing.T) FieldIndex {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(teardown)
	return New(db)
}

func seedCatalog(t *testing.T, index FieldIndex) {
	t.Helper()
	require.NoError(t, index.UpsertFields([]Field{
		{ID: "f-near", Name: "Near Pitch", Coordinate: geo.Coordinate{Lat: 40.01, Lon: -74.0}, Mode: FieldModeBoth},
		{ID: "f-mid", Name: "Mid Pitch", Coordinate: geo.Coordinate{Lat: 40.05, Lon: -74.0}, Mode: FieldModeSmall},
		{ID: "f-far", Name: "Far Pitch", Coordinate: geo.Coordinate{Lat: 41.0, Lon: -74.0}, Mode: FieldModeBoth},
	}))
}

func TestUpsertFieldsAndGetField(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	field, err := index.GetField("f-near")
	require.NoError(t, err)
	assert.Equal(t, "Near Pitch", field.Name)
	assert.Equal(t, FieldModeBoth, field.Mode)
	assert.InDelta(t, 40.01, field.Coordinate.Lat, 1e-9)

	// Upserting again with new data overwrites in place.
	require.NoError(t, index.UpsertFields([]Field{
		{ID: "f-near", Name: "Renamed Pitch", Coordinate: geo.Coordinate{Lat: 40.02, Lon: -74.0}, Mode: FieldModeLarge},
	}))
	field, err = index.GetField("f-near")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Pitch", field.Name)
	assert.Equal(t, FieldModeLarge, field.Mode)

	all, err := index.GetAllFields()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetFieldNotFound(t *testing.T) {
	index := setupTestIndex(t)

	_, err := index.GetField("missing")
	assert.ErrorContains(t, err, "field not found")
}

func TestFindNearby(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)
	center := geo.Coordinate{Lat: 40.0, Lon: -74.0}

	// ~0.01 deg lat is about 1.1km; f-far is over 100km away.
	nearby, err := index.FindNearby(center, 10, games.ModeSmall)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "f-near", nearby[0].ID, "results should be nearest first")
	assert.Equal(t, "f-mid", nearby[1].ID)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
}

func TestFindNearbyFiltersByMode(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)
	center := geo.Coordinate{Lat: 40.0, Lon: -74.0}

	// f-mid only supports small games.
	nearby, err := index.FindNearby(center, 10, games.ModeLarge)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "f-near", nearby[0].ID)
}

func TestFindNearbyRespectsRadius(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)
	center := geo.Coordinate{Lat: 40.0, Lon: -74.0}

	nearby, err := index.FindNearby(center, 2, games.ModeSmall)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "f-near", nearby[0].ID)
}

func TestAvailabilityLifecycle(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	slots := []Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Available: true},
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Available: false},
		{Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour), Available: true},
	}
	require.NoError(t, index.UpsertAvailability("f-near", AvailabilityDay{Date: "2025-06-01", Slots: slots}))

	days, err := index.AvailabilityDays("f-near", day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-06-01", days[0].Date)
	require.Len(t, days[0].Slots, 3)
	assert.True(t, days[0].Slots[0].Available)
	assert.False(t, days[0].Slots[1].Available)
	assert.True(t, days[0].Slots[0].Start.Equal(day.Add(9*time.Hour)))
}

func TestUpsertAvailabilityReplacesDay(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := AvailabilityDay{Date: "2025-06-01", Slots: []Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Available: true},
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Available: true},
	}}
	require.NoError(t, index.UpsertAvailability("f-near", first))

	second := AvailabilityDay{Date: "2025-06-01", Slots: []Slot{
		{Start: day.Add(14 * time.Hour), End: day.Add(15 * time.Hour), Available: true},
	}}
	require.NoError(t, index.UpsertAvailability("f-near", second))

	days, err := index.AvailabilityDays("f-near", day, day)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Slots, 1)
	assert.True(t, days[0].Slots[0].Start.Equal(day.Add(14*time.Hour)))
}

func TestConsumeSlot(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, index.UpsertAvailability("f-near", AvailabilityDay{Date: "2025-06-01", Slots: []Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Available: true},
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Available: true},
	}}))

	ref := SlotRef{FieldID: "f-near", Date: "2025-06-01", Index: 1}
	require.NoError(t, index.ConsumeSlot(ref))

	days, err := index.AvailabilityDays("f-near", day, day)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.True(t, days[0].Slots[0].Available, "untouched slot stays available")
	assert.False(t, days[0].Slots[1].Available, "consumed slot is gone")

	// A second consumer of the same slot must fail, not silently succeed.
	assert.ErrorIs(t, index.ConsumeSlot(ref), ErrSlotUnavailable)
}

func TestConsumeSlotMissing(t *testing.T) {
	index := setupTestIndex(t)

	err := index.ConsumeSlot(SlotRef{FieldID: "nope", Date: "2025-06-01", Index: 0})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestFieldModeSupports(t *testing.T) {
	assert.True(t, FieldModeBoth.Supports(games.ModeSmall))
	assert.True(t, FieldModeBoth.Supports(games.ModeLarge))
	assert.True(t, FieldModeSmall.Supports(games.ModeSmall))
	assert.False(t, FieldModeSmall.Supports(games.ModeLarge))
	assert.False(t, FieldModeLarge.Supports(games.ModeSmall))
	assert.True(t, FieldModeLarge.Supports(games.ModeLarge))
}
