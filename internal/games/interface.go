package games

import "time"

// GameStore defines the persistence operations for games.
type GameStore interface {
	// CreateGame persists a game together with its player roster in a single
	// transaction.
	CreateGame(game *Game) error

	// GetGame retrieves a game and its roster by ID.
	GetGame(gameID string) (*Game, error)

	// BookedGames returns the time intervals of non-ended games at a field
	// that overlap the [from, to) window, ordered by start time.
	BookedGames(fieldID string, from, to time.Time) ([]Interval, error)

	// UpdateStatus transitions a game to a new lifecycle status.
	UpdateStatus(gameID string, status GameStatus) error

	// DeleteGame removes a game and its roster. Used to roll back a failed
	// match commit; committed games otherwise live forever.
	DeleteGame(gameID string) error

	// GamesForLifecycle returns all games that have not yet ended.
	GamesForLifecycle() ([]*Game, error)

	// ListGames returns all games, newest first.
	ListGames() ([]*Game, error)
}
