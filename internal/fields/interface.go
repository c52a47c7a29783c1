package fields

import (
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
)

// FieldIndex defines the queryable view of the field catalog and its
// availability calendars.
type FieldIndex interface {
	// FindNearby returns fields supporting the given mode within radiusKm of
	// center, nearest first.
	FindNearby(center geo.Coordinate, radiusKm float64, mode games.Mode) ([]Field, error)

	// GetField retrieves a field by ID.
	GetField(fieldID string) (*Field, error)

	// AvailabilityDays returns a field's availability days whose date falls
	// within [from, to], each with its slots in calendar order.
	AvailabilityDays(fieldID string, from, to time.Time) ([]AvailabilityDay, error)

	// ConsumeSlot marks the referenced slot unavailable. The scheduler never
	// calls this; consumption is the committing caller's responsibility.
	ConsumeSlot(ref SlotRef) error

	// UpsertFields inserts or updates catalog entries.
	UpsertFields(fields []Field) error

	// UpsertAvailability replaces a field's slots for one day.
	UpsertAvailability(fieldID string, day AvailabilityDay) error

	// GetAllFields returns the whole catalog.
	GetAllFields() ([]Field, error)
}
