package players

// PlayerStore defines the interface to the external player-record store.
type PlayerStore interface {
	// GetPlayer retrieves a single player by ID.
	GetPlayer(playerID string) (*PlayerInfo, error)

	// GetPlayers retrieves multiple players by ID. Missing IDs are simply
	// absent from the result.
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)

	// UpsertPlayers inserts or updates player records.
	UpsertPlayers(players []PlayerInfo) error

	// FillerCandidates returns up to k synthetic players matching a category,
	// excluding the given IDs. Used to top up short queues.
	FillerCandidates(category string, exclude []string, k int) ([]PlayerInfo, error)

	// IsKnownPlayer reports whether a player record exists.
	IsKnownPlayer(playerID string) bool

	// GetAllPlayers returns all player records.
	GetAllPlayers() ([]PlayerInfo, error)
}
