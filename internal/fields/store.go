package fields

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/charmbracelet/log"
)

// New creates a new FieldIndex backed by the given database.
func New(db *sql.DB) FieldIndex {
	return &store{
		db: db,
	}
}

// FindNearby returns fields supporting the given mode within radiusKm of
// center, nearest first. The catalog is modest, so distance ordering is
// computed in Go rather than in SQL.
func (s *store) FindNearby(center geo.Coordinate, radiusKm float64, mode games.Mode) ([]Field, error) {
	all, err := s.GetAllFields()
	if err != nil {
		return nil, err
	}

	var nearby []Field
	for _, f := range all {
		if !f.Mode.Supports(mode) {
			continue
		}
		d := geo.Distance(center, f.Coordinate)
		if d > radiusKm {
			continue
		}
		f.DistanceKm = d
		nearby = append(nearby, f)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// GetField retrieves a field by ID.
func (s *store) GetField(fieldID string) (*Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, lat, lon, mode FROM fields WHERE id = ?", fieldID)
	field, err := scanField(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("field not found: %s", fieldID)
		}
		return nil, fmt.Errorf("failed to get field: %w", err)
	}
	return field, nil
}

// AvailabilityDays returns a field's availability days within [from, to].
func (s *store) AvailabilityDays(fieldID string, from, to time.Time) ([]AvailabilityDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT day, slot_index, start_time, end_time, available
		FROM field_slots
		WHERE field_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC, slot_index ASC
	`, fieldID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query field slots: %w", err)
	}
	defer rows.Close()

	var days []AvailabilityDay
	for rows.Next() {
		var day string
		var idx int
		var start, end int64
		var available bool
		if err := rows.Scan(&day, &idx, &start, &end, &available); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		slot := Slot{Start: time.Unix(start, 0), End: time.Unix(end, 0), Available: available}
		if len(days) == 0 || days[len(days)-1].Date != day {
			days = append(days, AvailabilityDay{Date: day})
		}
		days[len(days)-1].Slots = append(days[len(days)-1].Slots, slot)
	}
	return days, rows.Err()
}

// ConsumeSlot marks the referenced slot unavailable. The update only matches
// a still-available slot, so a second consumer of the same slot gets
// ErrSlotUnavailable instead of silently succeeding.
func (s *store) ConsumeSlot(ref SlotRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		UPDATE field_slots SET available = 0
		WHERE field_id = ? AND day = ? AND slot_index = ? AND available = 1
	`, ref.FieldID, ref.Date, ref.Index)
	if err != nil {
		return fmt.Errorf("failed to consume slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: field=%s day=%s index=%d", ErrSlotUnavailable, ref.FieldID, ref.Date, ref.Index)
	}
	log.Info("Consumed field slot", "fieldID", ref.FieldID, "day", ref.Date, "index", ref.Index)
	return nil
}

// UpsertFields inserts or updates catalog entries.
func (s *store) UpsertFields(fieldList []Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO fields (id, name, lat, lon, mode)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			lat = excluded.lat,
			lon = excluded.lon,
			mode = excluded.mode;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare field upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fieldList {
		if _, err = stmt.Exec(f.ID, f.Name, f.Coordinate.Lat, f.Coordinate.Lon, string(f.Mode)); err != nil {
			return fmt.Errorf("failed to upsert field %s: %w", f.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit field upsert: %w", err)
	}
	log.Debug("Upserted fields", "count", len(fieldList))
	return nil
}

// UpsertAvailability replaces a field's slots for one day.
func (s *store) UpsertAvailability(fieldID string, day AvailabilityDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM field_slots WHERE field_id = ? AND day = ?", fieldID, day.Date); err != nil {
		return fmt.Errorf("failed to clear existing slots: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO field_slots (field_id, day, slot_index, start_time, end_time, available)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare slot insert: %w", err)
	}
	defer stmt.Close()

	for i, slot := range day.Slots {
		if _, err = stmt.Exec(fieldID, day.Date, i, slot.Start.Unix(), slot.End.Unix(), slot.Available); err != nil {
			return fmt.Errorf("failed to insert slot %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit availability: %w", err)
	}
	log.Debug("Upserted availability", "fieldID", fieldID, "day", day.Date, "slots", len(day.Slots))
	return nil
}

// GetAllFields returns the whole catalog.
func (s *store) GetAllFields() ([]Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, lat, lon, mode FROM fields ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var result []Field
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field row: %w", err)
		}
		result = append(result, *field)
	}
	return result, rows.Err()
}

func scanField(scanner interface{ Scan(...any) error }) (*Field, error) {
	var f Field
	var mode string
	err := scanner.Scan(&f.ID, &f.Name, &f.Coordinate.Lat, &f.Coordinate.Lon, &mode)
	if err != nil {
		return nil, err
	}
	f.Mode = FieldMode(mode)
	return &f, nil
}
