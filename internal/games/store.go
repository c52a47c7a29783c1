package games

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new GameStore backed by the given database.
func New(db *sql.DB) GameStore {
	return &store{
		db: db,
	}
}

// CreateGame persists a game and its roster in a single transaction. Either
// everything is committed or nothing is.
func (s *store) CreateGame(game *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO games (id, mode, field_id, start_time, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, game.ID, string(game.Mode), game.FieldID, game.Start.Unix(), game.End.Unix(), string(game.Status), game.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	for _, gp := range game.Players {
		_, err = tx.Exec(`
			INSERT INTO game_players (game_id, player_id, player_name, team)
			VALUES (?, ?, ?, ?)
		`, game.ID, gp.PlayerID, gp.Name, string(gp.Team))
		if err != nil {
			return fmt.Errorf("failed to insert game player %s: %w", gp.PlayerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game: %w", err)
	}

	log.Info("Created game", "gameID", game.ID, "fieldID", game.FieldID, "start", game.Start, "players", len(game.Players))
	return nil
}

// GetGame retrieves a game and its roster by ID.
func (s *store) GetGame(gameID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, mode, field_id, start_time, end_time, status, created_at
		FROM games
		WHERE id = ?
	`, gameID)

	game, err := scanGame(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("game not found: %s", gameID)
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	players, err := s.gamePlayers(gameID)
	if err != nil {
		return nil, err
	}
	game.Players = players
	return game, nil
}

// BookedGames returns intervals of non-ended games at a field overlapping
// [from, to), ordered by start time.
func (s *store) BookedGames(fieldID string, from, to time.Time) ([]Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT start_time, end_time
		FROM games
		WHERE field_id = ? AND status != ? AND start_time < ? AND end_time > ?
		ORDER BY start_time ASC
	`, fieldID, string(StatusEnded), to.Unix(), from.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query booked games: %w", err)
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var start, end int64
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan booked game row: %w", err)
		}
		intervals = append(intervals, Interval{Start: time.Unix(start, 0), End: time.Unix(end, 0)})
	}
	return intervals, rows.Err()
}

// UpdateStatus transitions a game to a new lifecycle status.
func (s *store) UpdateStatus(gameID string, status GameStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE games SET status = ? WHERE id = ?", string(status), gameID)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	log.Info("Updated game status", "gameID", gameID, "status", status)
	return nil
}

// DeleteGame removes a game and its roster.
func (s *store) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM game_players WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete game players: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM games WHERE id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game deletion: %w", err)
	}
	log.Warn("Deleted game", "gameID", gameID)
	return nil
}

// GamesForLifecycle returns all games that have not yet ended.
func (s *store) GamesForLifecycle() ([]*Game, error) {
	return s.queryGames("WHERE status != ?", string(StatusEnded))
}

// ListGames returns all games, newest first.
func (s *store) ListGames() ([]*Game, error) {
	return s.queryGames("ORDER BY created_at DESC")
}

func (s *store) queryGames(clause string, args ...any) ([]*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, mode, field_id, start_time, end_time, status, created_at
		FROM games `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var result []*Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		result = append(result, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, game := range result {
		players, err := s.gamePlayers(game.ID)
		if err != nil {
			return nil, err
		}
		game.Players = players
	}
	return result, nil
}

func (s *store) gamePlayers(gameID string) ([]GamePlayer, error) {
	rows, err := s.db.Query(`
		SELECT player_id, player_name, team
		FROM game_players
		WHERE game_id = ?
		ORDER BY rowid ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game players: %w", err)
	}
	defer rows.Close()

	var players []GamePlayer
	for rows.Next() {
		var gp GamePlayer
		var team string
		if err := rows.Scan(&gp.PlayerID, &gp.Name, &team); err != nil {
			return nil, fmt.Errorf("failed to scan game player row: %w", err)
		}
		gp.Team = Team(team)
		players = append(players, gp)
	}
	return players, rows.Err()
}

func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var game Game
	var mode, status string
	var start, end, createdAt int64

	err := scanner.Scan(&game.ID, &mode, &game.FieldID, &start, &end, &status, &createdAt)
	if err != nil {
		return nil, err
	}
	game.Mode = Mode(mode)
	game.Status = GameStatus(status)
	game.Start = time.Unix(start, 0)
	game.End = time.Unix(end, 0)
	game.CreatedAt = time.Unix(createdAt, 0)
	return &game, nil
}
