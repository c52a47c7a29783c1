package queue

import (
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
)

// QueueStore defines the persistence operations for queue entries.
type QueueStore interface {
	// Enqueue creates an entry. Returns ErrAlreadyQueued if the player
	// already has an active entry for the mode.
	Enqueue(playerID string, mode games.Mode, at time.Time) error

	// Remove deletes a player's entry. Returns ErrNotQueued if no entry
	// exists.
	Remove(playerID string, mode games.Mode) error

	// RemoveAll deletes the given players' entries for a mode in one
	// transaction. Every listed entry must exist; otherwise nothing is
	// removed.
	RemoveAll(mode games.Mode, playerIDs []string) error

	// Entries returns a mode's active entries in enqueue order.
	Entries(mode games.Mode) ([]Entry, error)

	// IsQueued reports whether the player has an active entry for the mode.
	IsQueued(playerID string, mode games.Mode) (bool, error)
}
