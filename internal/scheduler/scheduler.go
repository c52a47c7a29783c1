// Package scheduler finds a venue and a conflict-free time slot for a
// matched player set.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/charmbracelet/log"
)

// ErrNoSlotFound is returned when no field and time slot satisfies the
// constraints within the search horizon.
var ErrNoSlotFound = errors.New("no field slot satisfies the scheduling constraints")

// Config holds the scheduling tunables.
type Config struct {
	// InitialRadiusKm is the starting field-search radius.
	InitialRadiusKm float64
	// MaxRadiusKm caps the expanding search; no radius beyond it is tried.
	MaxRadiusKm float64
	// TravelSpeedKmh is the assumed player travel speed.
	TravelSpeedKmh float64
	// StartBuffer is added after the worst travel time before a game can
	// start.
	StartBuffer time.Duration
	// GameGap is the minimum gap required between the candidate slot and any
	// adjacent booked game at the same field.
	GameGap time.Duration
	// Horizon bounds how far into the future slots are considered.
	Horizon time.Duration
}

// DefaultConfig returns the production scheduling constants.
func DefaultConfig() Config {
	return Config{
		InitialRadiusKm: 10,
		MaxRadiusKm:     80, // ~50 miles
		TravelSpeedKmh:  50,
		StartBuffer:     10 * time.Minute,
		GameGap:         60 * time.Minute,
		Horizon:         4 * time.Hour,
	}
}

// Booking is a selected venue and time slot.
type Booking struct {
	Field     fields.Field   `json:"field"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	SlotRef   fields.SlotRef `json:"slot_ref"`
	MaxTravel time.Duration  `json:"max_travel"`
}

// BookedGamesStore is the slice of game persistence the scheduler needs.
type BookedGamesStore interface {
	BookedGames(fieldID string, from, to time.Time) ([]games.Interval, error)
}

// Scheduler finds a field and slot for a matched player set.
type Scheduler struct {
	index fields.FieldIndex
	games BookedGamesStore
	cfg   Config
}

// New creates a Scheduler.
func New(index fields.FieldIndex, gameStore BookedGamesStore, cfg Config) *Scheduler {
	return &Scheduler{
		index: index,
		games: gameStore,
		cfg:   cfg,
	}
}

// FindSlot returns the first field and slot (in field-distance order, then
// day order, then slot order) that all players can reach in time and that
// conflicts with no booked game. Time is an input; FindSlot never consults
// the wall clock.
func (s *Scheduler) FindSlot(matched []players.PlayerInfo, mode games.Mode, duration time.Duration, now time.Time) (*Booking, error) {
	if len(matched) == 0 {
		return nil, fmt.Errorf("no players to schedule")
	}

	coords := make([]geo.Coordinate, len(matched))
	for i, p := range matched {
		coords[i] = p.Coordinate
	}
	center := geo.Centroid(coords)

	candidates, err := s.nearbyFields(center, mode)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		log.Info("No fields within search ceiling", "mode", mode, "center", center)
		return nil, ErrNoSlotFound
	}

	horizonEnd := now.Add(s.cfg.Horizon)
	for _, field := range candidates {
		maxTravel := s.maxTravelTime(matched, field)
		earliestStart := now.Add(maxTravel).Add(s.cfg.StartBuffer)

		booking, err := s.scanField(field, earliestStart, horizonEnd, duration, now)
		if err != nil {
			return nil, err
		}
		if booking != nil {
			booking.MaxTravel = maxTravel
			log.Info("Selected field slot",
				"fieldID", field.ID, "start", booking.Start, "end", booking.End, "maxTravel", maxTravel)
			return booking, nil
		}
	}
	return nil, ErrNoSlotFound
}

// nearbyFields runs the expanding-radius search: start at the initial radius,
// double until something is found or the ceiling is passed. The search stops
// at the first non-empty result.
func (s *Scheduler) nearbyFields(center geo.Coordinate, mode games.Mode) ([]fields.Field, error) {
	for radius := s.cfg.InitialRadiusKm; radius <= s.cfg.MaxRadiusKm; radius *= 2 {
		found, err := s.index.FindNearby(center, radius, mode)
		if err != nil {
			return nil, fmt.Errorf("field search failed at radius %.0fkm: %w", radius, err)
		}
		if len(found) > 0 {
			log.Debug("Field search hit", "radiusKm", radius, "fields", len(found))
			return found, nil
		}
	}
	return nil, nil
}

func (s *Scheduler) maxTravelTime(matched []players.PlayerInfo, field fields.Field) time.Duration {
	var max time.Duration
	for _, p := range matched {
		t := geo.TravelTime(p.Coordinate, field.Coordinate, s.cfg.TravelSpeedKmh)
		if t > max {
			max = t
		}
	}
	return max
}

// scanField walks the field's availability days inside the horizon and
// returns the first slot that is reachable, available, conflict-free, and
// leaves the required gap to adjacent booked games. Returns nil when the
// field has no usable slot.
func (s *Scheduler) scanField(field fields.Field, earliestStart, horizonEnd time.Time, duration time.Duration, now time.Time) (*Booking, error) {
	days, err := s.index.AvailabilityDays(field.ID, now, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("availability lookup failed for field %s: %w", field.ID, err)
	}

	for _, day := range days {
		for i, slot := range day.Slots {
			if !slot.Available {
				continue
			}
			if slot.Start.Before(earliestStart) {
				continue
			}
			if slot.Start.After(horizonEnd) {
				continue
			}

			end := slot.Start.Add(duration)
			ok, err := s.SlotClear(field.ID, slot.Start, end)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			return &Booking{
				Field: field,
				Start: slot.Start,
				End:   end,
				SlotRef: fields.SlotRef{
					FieldID: field.ID,
					Date:    day.Date,
					Index:   i,
				},
			}, nil
		}
	}
	return nil, nil
}

// SlotClear checks the candidate window against booked games: no overlap, and
// at least GameGap of clearance to the nearest booked game on both sides. It
// is exported so a committer can re-validate a booking right before making it
// visible; a slot picked during the search can be taken by a concurrent match
// on another mode before the commit runs.
func (s *Scheduler) SlotClear(fieldID string, start, end time.Time) (bool, error) {
	// Widen the query window by the gap so near-adjacent games are seen.
	booked, err := s.games.BookedGames(fieldID, start.Add(-s.cfg.GameGap), end.Add(s.cfg.GameGap))
	if err != nil {
		return false, fmt.Errorf("booked-games lookup failed for field %s: %w", fieldID, err)
	}

	for _, g := range booked {
		if g.Overlaps(start, end) {
			return false, nil
		}
		// Preceding game must end at least GameGap before our start.
		if !g.End.After(start) && g.End.Add(s.cfg.GameGap).After(start) {
			return false, nil
		}
		// Following game must start at least GameGap after our end.
		if !g.Start.Before(end) && g.Start.Before(end.Add(s.cfg.GameGap)) {
			return false, nil
		}
	}
	return true, nil
}
