package players

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

const playerColumns = "id, name, category, lat, lon, skill_small, skill_large, filler"

// GetPlayer retrieves a single player by ID.
func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+playerColumns+" FROM players WHERE id = ?", playerID)
	player, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player not found: %s", playerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetPlayers retrieves multiple players by ID.
func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(playerIDs)-1) + "?"
	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := s.db.Query("SELECT "+playerColumns+" FROM players WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// UpsertPlayers inserts or updates player records.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, category, lat, lon, skill_small, skill_large, filler)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			lat = excluded.lat,
			lon = excluded.lon,
			skill_small = excluded.skill_small,
			skill_large = excluded.skill_large,
			filler = excluded.filler;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(p.ID, p.Name, p.Category, p.Coordinate.Lat, p.Coordinate.Lon, p.SkillSmall, p.SkillLarge, p.Filler)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player upsert: %w", err)
	}
	log.Debug("Upserted players", "count", len(players))
	return nil
}

// FillerCandidates returns up to k synthetic players matching a category,
// excluding the given IDs.
func (s *store) FillerCandidates(category string, exclude []string, k int) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		return nil, nil
	}

	query := "SELECT " + playerColumns + " FROM players WHERE filler = 1 AND category = ?"
	args := []any{category}
	if len(exclude) > 0 {
		placeholders := strings.Repeat("?,", len(exclude)-1) + "?"
		query += " AND id NOT IN (" + placeholders + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	query += " ORDER BY id ASC LIMIT ?"
	args = append(args, k)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query filler candidates: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// IsKnownPlayer reports whether a player record exists.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow("SELECT id FROM players WHERE id = ?", playerID).Scan(&id)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to check player existence", "error", err, "playerID", playerID)
		}
		return false
	}
	return true
}

// GetAllPlayers returns all player records.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + playerColumns + " FROM players ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func collectPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	var result []PlayerInfo
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		result = append(result, *player)
	}
	return result, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*PlayerInfo, error) {
	var p PlayerInfo
	err := scanner.Scan(&p.ID, &p.Name, &p.Category, &p.Coordinate.Lat, &p.Coordinate.Lon, &p.SkillSmall, &p.SkillLarge, &p.Filler)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
