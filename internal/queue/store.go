package queue

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-sqlite3"
)

// NewStore creates a new QueueStore backed by the given database.
func NewStore(db *sql.DB) QueueStore {
	return &store{
		db: db,
	}
}

// Enqueue creates an entry. The (player, mode) primary key enforces the
// one-active-entry invariant; a constraint violation maps to
// ErrAlreadyQueued.
func (s *store) Enqueue(playerID string, mode games.Mode, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO queue_entries (player_id, mode, enqueued_at)
		VALUES (?, ?, ?)
	`, playerID, string(mode), at.UnixNano())
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrAlreadyQueued
		}
		return fmt.Errorf("failed to enqueue player: %w", err)
	}

	log.Info("Enqueued player", "playerID", playerID, "mode", mode)
	return nil
}

// Remove deletes a player's entry.
func (s *store) Remove(playerID string, mode games.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM queue_entries WHERE player_id = ? AND mode = ?", playerID, string(mode))
	if err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotQueued
	}

	log.Info("Removed queue entry", "playerID", playerID, "mode", mode)
	return nil
}

// RemoveAll deletes the given players' entries for a mode in one transaction.
// If any listed entry is missing the whole removal rolls back, so a match
// commit can never half-consume the queue.
func (s *store) RemoveAll(mode games.Mode, playerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("DELETE FROM queue_entries WHERE player_id = ? AND mode = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare delete: %w", err)
	}
	defer stmt.Close()

	for _, id := range playerIDs {
		result, err := stmt.Exec(id, string(mode))
		if err != nil {
			return fmt.Errorf("failed to delete entry for %s: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("queue entry vanished during commit: player=%s mode=%s", id, mode)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit queue removal: %w", err)
	}
	log.Info("Removed matched queue entries", "mode", mode, "count", len(playerIDs))
	return nil
}

// Entries returns a mode's active entries in enqueue order.
func (s *store) Entries(mode games.Mode) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, mode, enqueued_at
		FROM queue_entries
		WHERE mode = ?
		ORDER BY enqueued_at ASC, player_id ASC
	`, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to query queue entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var m string
		var enqueuedAt int64
		if err := rows.Scan(&e.PlayerID, &m, &enqueuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry row: %w", err)
		}
		e.Mode = games.Mode(m)
		e.EnqueuedAt = time.Unix(0, enqueuedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// IsQueued reports whether the player has an active entry for the mode.
func (s *store) IsQueued(playerID string, mode games.Mode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow("SELECT player_id FROM queue_entries WHERE player_id = ? AND mode = ?", playerID, string(mode)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check queue entry: %w", err)
	}
	return true, nil
}
