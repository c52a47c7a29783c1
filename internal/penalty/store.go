package penalty

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// penaltyWindow is how close to the scheduled start a leave must be to
	// count as a penalized departure.
	penaltyWindow = 20 * time.Minute
	// suspensionThreshold is the tally at which a suspension starts.
	suspensionThreshold = 3
	// suspensionLength is how long a suspension lasts.
	suspensionLength = 24 * time.Hour
)

// New creates a new penalty Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// RecordLeave applies a penalty if now is at or after gameStart minus the
// penalty window.
func (s *store) RecordLeave(playerID string, gameStart, now time.Time) (*LeaveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Before(gameStart.Add(-penaltyWindow)) {
		log.Debug("Leave outside penalty window", "playerID", playerID, "gameStart", gameStart)
		record, err := s.getRecord(playerID)
		if err != nil {
			return nil, err
		}
		return &LeaveOutcome{Applied: false, Tally: record.Tally}, nil
	}

	record, err := s.getRecord(playerID)
	if err != nil {
		return nil, err
	}

	record.Tally++
	record.LastPenaltyAt = &now
	if record.Tally >= suspensionThreshold {
		until := now.Add(suspensionLength)
		record.SuspendedUntil = &until
		log.Warn("Player suspended for repeated leaving", "playerID", playerID, "until", until)
	}

	if err := s.saveRecord(record); err != nil {
		return nil, err
	}
	log.Info("Recorded leaver penalty", "playerID", playerID, "tally", record.Tally)
	return &LeaveOutcome{Applied: true, Tally: record.Tally}, nil
}

// Status decays the tally by whole days elapsed since the last penalty and
// clears an expired suspension, persisting only when something changed. A
// status check on its own never creates a record.
func (s *store) Status(playerID string, now time.Time) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getRecord(playerID)
	if err != nil {
		return nil, err
	}

	changed := false
	if record.LastPenaltyAt != nil && record.Tally > 0 {
		days := int(now.Sub(*record.LastPenaltyAt).Hours() / 24)
		if days > 0 {
			record.Tally -= days
			if record.Tally < 0 {
				record.Tally = 0
			}
			// Decay restarts from the check time, not the original penalty.
			if record.Tally > 0 {
				record.LastPenaltyAt = &now
			}
			changed = true
			log.Debug("Decayed leaver tally", "playerID", playerID, "days", days, "tally", record.Tally)
		}
	}

	if record.SuspendedUntil != nil && !now.Before(*record.SuspendedUntil) {
		record.SuspendedUntil = nil
		changed = true
		log.Info("Suspension expired", "playerID", playerID)
	}

	if changed {
		if err := s.saveRecord(record); err != nil {
			return nil, err
		}
	}

	return &Status{
		Suspended:      record.SuspendedUntil != nil,
		SuspendedUntil: record.SuspendedUntil,
		Tally:          record.Tally,
	}, nil
}

// getRecord loads a player's record, returning a zero record when none
// exists yet.
func (s *store) getRecord(playerID string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT player_id, tally, last_penalty_at, suspended_until
		FROM penalties
		WHERE player_id = ?
	`, playerID)

	var record Record
	var lastPenalty, suspendedUntil sql.NullInt64
	err := row.Scan(&record.PlayerID, &record.Tally, &lastPenalty, &suspendedUntil)
	if err != nil {
		if err == sql.ErrNoRows {
			return &Record{PlayerID: playerID}, nil
		}
		return nil, fmt.Errorf("failed to get penalty record: %w", err)
	}
	if lastPenalty.Valid {
		t := time.Unix(lastPenalty.Int64, 0)
		record.LastPenaltyAt = &t
	}
	if suspendedUntil.Valid {
		t := time.Unix(suspendedUntil.Int64, 0)
		record.SuspendedUntil = &t
	}
	return &record, nil
}

func (s *store) saveRecord(record *Record) error {
	var lastPenalty, suspendedUntil sql.NullInt64
	if record.LastPenaltyAt != nil {
		lastPenalty = sql.NullInt64{Int64: record.LastPenaltyAt.Unix(), Valid: true}
	}
	if record.SuspendedUntil != nil {
		suspendedUntil = sql.NullInt64{Int64: record.SuspendedUntil.Unix(), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO penalties (player_id, tally, last_penalty_at, suspended_until)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			tally = excluded.tally,
			last_penalty_at = excluded.last_penalty_at,
			suspended_until = excluded.suspended_until;
	`, record.PlayerID, record.Tally, lastPenalty, suspendedUntil)
	if err != nil {
		return fmt.Errorf("failed to save penalty record: %w", err)
	}
	return nil
}
