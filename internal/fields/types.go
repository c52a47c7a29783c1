package fields

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
)

// ErrSlotUnavailable is returned when a slot to consume is missing or was
// already taken.
var ErrSlotUnavailable = errors.New("slot unavailable")

// store handles all database operations for the field catalog.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// FieldMode describes which game formats a field supports.
type FieldMode string

const (
	FieldModeSmall FieldMode = "SMALL"
	FieldModeLarge FieldMode = "LARGE"
	FieldModeBoth  FieldMode = "BOTH"
)

// Supports reports whether a field of this mode can host a game of the given
// mode.
func (f FieldMode) Supports(mode games.Mode) bool {
	switch f {
	case FieldModeBoth:
		return true
	case FieldModeSmall:
		return mode == games.ModeSmall
	case FieldModeLarge:
		return mode == games.ModeLarge
	default:
		return false
	}
}

// Field is a physical venue.
type Field struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Mode       FieldMode      `json:"mode"`
	// DistanceKm is filled in by FindNearby relative to the search center.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// Slot is a bookable time interval at a field.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// AvailabilityDay holds the ordered slots for one calendar day.
type AvailabilityDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Slots []Slot `json:"slots"`
}

// SlotRef identifies a specific slot in a field's calendar. The scheduler
// returns it so the caller can mark the slot consumed.
type SlotRef struct {
	FieldID string `json:"field_id"`
	Date    string `json:"date"`
	Index   int    `json:"index"`
}
