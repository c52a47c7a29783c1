package lifecycle

import "github.com/Koshercash/Sports-Queue-sub000/internal/games"

// Store defines the game persistence operations required by the processor.
type Store interface {
	GamesForLifecycle() ([]*games.Game, error)
	UpdateStatus(gameID string, status games.GameStatus) error
}
