package scheduler_test

import (
	"testing"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/Koshercash/Sports-Queue-sub000/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// colocatedPlayers returns players at the given coordinate so travel time is
// zero and earliest feasible start is now + the start buffer.
func colocatedPlayers(at geo.Coordinate, n int) []players.PlayerInfo {
	out := make([]players.PlayerInfo, n)
	for i := range out {
		out[i] = players.PlayerInfo{ID: string(rune('a' + i)), Coordinate: at}
	}
	return out
}

func dayWithSlots(date string, slots ...fields.Slot) fields.AvailabilityDay {
	return fields.AvailabilityDay{Date: date, Slots: slots}
}

func TestFindSlot_RadiusExpansion(t *testing.T) {
	origin := geo.Coordinate{Lat: 40, Lon: -74}
	field := fields.Field{ID: "f1", Name: "Far Field", Coordinate: origin, Mode: fields.FieldModeBoth}

	t.Run("stops at the first radius with a hit", func(t *testing.T) {
		index := fields.NewMock()
		index.FindNearbyFunc = func(center geo.Coordinate, radiusKm float64, mode games.Mode) ([]fields.Field, error) {
			if radiusKm >= 40 {
				return []fields.Field{field}, nil
			}
			return nil, nil
		}
		index.AvailabilityDaysFunc = func(fieldID string, from, to time.Time) ([]fields.AvailabilityDay, error) {
			return []fields.AvailabilityDay{
				dayWithSlots("2025-06-01", fields.Slot{Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Available: true}),
			}, nil
		}

		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())
		booking, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		require.NoError(t, err)
		assert.Equal(t, "f1", booking.Field.ID)

		// 10km and 20km miss, 40km hits, 80km is never tried.
		radii := make([]float64, len(index.FindNearbyCalls))
		for i, call := range index.FindNearbyCalls {
			radii[i] = call.RadiusKm
		}
		assert.Equal(t, []float64{10, 20, 40}, radii)
	})

	t.Run("gives up past the ceiling", func(t *testing.T) {
		index := fields.NewMock() // always empty
		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
		assert.Len(t, index.FindNearbyCalls, 4) // 10, 20, 40, 80
	})
}

func TestFindSlot_SlotConstraints(t *testing.T) {
	origin := geo.Coordinate{Lat: 40, Lon: -74}
	field := fields.Field{ID: "f1", Name: "Main Field", Coordinate: origin, Mode: fields.FieldModeBoth}

	newIndex := func(days ...fields.AvailabilityDay) *fields.MockIndex {
		index := fields.NewMock()
		index.FindNearbyFunc = func(geo.Coordinate, float64, games.Mode) ([]fields.Field, error) {
			return []fields.Field{field}, nil
		}
		index.AvailabilityDaysFunc = func(string, time.Time, time.Time) ([]fields.AvailabilityDay, error) {
			return days, nil
		}
		return index
	}

	t.Run("rejects slots before the earliest feasible start", func(t *testing.T) {
		// Players are co-located with the field, so feasible start is
		// now + 10min buffer. A slot at now+5min must be skipped in favor
		// of the next one.
		index := newIndex(dayWithSlots("2025-06-01",
			fields.Slot{Start: testNow.Add(5 * time.Minute), End: testNow.Add(65 * time.Minute), Available: true},
			fields.Slot{Start: testNow.Add(30 * time.Minute), End: testNow.Add(90 * time.Minute), Available: true},
		))
		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())

		booking, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.Add(30*time.Minute), booking.Start)
		assert.Equal(t, testNow.Add(90*time.Minute), booking.End)
		assert.Equal(t, 1, booking.SlotRef.Index)
	})

	t.Run("rejects unavailable slots", func(t *testing.T) {
		index := newIndex(dayWithSlots("2025-06-01",
			fields.Slot{Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Available: false},
		))
		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
	})

	t.Run("rejects slots beyond the horizon", func(t *testing.T) {
		index := newIndex(dayWithSlots("2025-06-01",
			fields.Slot{Start: testNow.Add(5 * time.Hour), End: testNow.Add(6 * time.Hour), Available: true},
		))
		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
	})

	t.Run("accounts for travel time", func(t *testing.T) {
		// Field ~55.6km north of the players: at 50km/h that is ~67 minutes
		// (rounded up), so feasible start is now+67m+10m. A slot at now+1h
		// is too early; the now+2h slot wins.
		farField := fields.Field{ID: "f1", Coordinate: geo.Coordinate{Lat: 40.5, Lon: -74}, Mode: fields.FieldModeBoth}
		index := fields.NewMock()
		index.FindNearbyFunc = func(geo.Coordinate, float64, games.Mode) ([]fields.Field, error) {
			return []fields.Field{farField}, nil
		}
		index.AvailabilityDaysFunc = func(string, time.Time, time.Time) ([]fields.AvailabilityDay, error) {
			return []fields.AvailabilityDay{dayWithSlots("2025-06-01",
				fields.Slot{Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Available: true},
				fields.Slot{Start: testNow.Add(2 * time.Hour), End: testNow.Add(3 * time.Hour), Available: true},
			)}, nil
		}
		s := scheduler.New(index, games.NewMock(), scheduler.DefaultConfig())

		booking, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.Add(2*time.Hour), booking.Start)
		assert.True(t, booking.MaxTravel >= 60*time.Minute)
	})
}

func TestFindSlot_ConflictChecks(t *testing.T) {
	origin := geo.Coordinate{Lat: 40, Lon: -74}
	field := fields.Field{ID: "f1", Coordinate: origin, Mode: fields.FieldModeBoth}

	newIndex := func() *fields.MockIndex {
		index := fields.NewMock()
		index.FindNearbyFunc = func(geo.Coordinate, float64, games.Mode) ([]fields.Field, error) {
			return []fields.Field{field}, nil
		}
		index.AvailabilityDaysFunc = func(string, time.Time, time.Time) ([]fields.AvailabilityDay, error) {
			return []fields.AvailabilityDay{dayWithSlots("2025-06-01",
				fields.Slot{Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Available: true},
			)}, nil
		}
		return index
	}

	t.Run("rejects overlap with a booked game", func(t *testing.T) {
		gameStore := games.NewMock()
		gameStore.BookedGamesFunc = func(string, time.Time, time.Time) ([]games.Interval, error) {
			return []games.Interval{{Start: testNow.Add(90 * time.Minute), End: testNow.Add(150 * time.Minute)}}, nil
		}
		s := scheduler.New(newIndex(), gameStore, scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
	})

	t.Run("rejects a preceding game closer than the gap", func(t *testing.T) {
		// Booked game ends 30 minutes before the candidate slot starts.
		gameStore := games.NewMock()
		gameStore.BookedGamesFunc = func(string, time.Time, time.Time) ([]games.Interval, error) {
			return []games.Interval{{Start: testNow.Add(-30 * time.Minute), End: testNow.Add(30 * time.Minute)}}, nil
		}
		s := scheduler.New(newIndex(), gameStore, scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
	})

	t.Run("rejects a following game closer than the gap", func(t *testing.T) {
		// Booked game starts 30 minutes after the candidate slot ends.
		gameStore := games.NewMock()
		gameStore.BookedGamesFunc = func(string, time.Time, time.Time) ([]games.Interval, error) {
			return []games.Interval{{Start: testNow.Add(150 * time.Minute), End: testNow.Add(210 * time.Minute)}}, nil
		}
		s := scheduler.New(newIndex(), gameStore, scheduler.DefaultConfig())

		_, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		assert.ErrorIs(t, err, scheduler.ErrNoSlotFound)
	})

	t.Run("accepts a game exactly one gap away", func(t *testing.T) {
		gameStore := games.NewMock()
		gameStore.BookedGamesFunc = func(string, time.Time, time.Time) ([]games.Interval, error) {
			// Ends exactly 60 minutes before the slot start.
			return []games.Interval{{Start: testNow.Add(-time.Hour), End: testNow}}, nil
		}
		s := scheduler.New(newIndex(), gameStore, scheduler.DefaultConfig())

		booking, err := s.FindSlot(colocatedPlayers(origin, 10), games.ModeSmall, time.Hour, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.Add(time.Hour), booking.Start)
	})
}
