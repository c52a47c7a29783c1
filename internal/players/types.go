package players

import (
	"database/sql"
	"sync"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
)

// store handles all database operations for player records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo is a player record as supplied by the player-record store. The
// matchmaking core treats it as read-only.
type PlayerInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Coordinate geo.Coordinate `json:"coordinate"`
	SkillSmall float64        `json:"skill_small"`
	SkillLarge float64        `json:"skill_large"`
	// Filler marks synthetic players used to top up short queues. They are
	// never enqueued themselves.
	Filler bool `json:"filler"`
}

// SkillFor returns the player's rating for the given game mode.
func (p PlayerInfo) SkillFor(mode games.Mode) float64 {
	if mode == games.ModeLarge {
		return p.SkillLarge
	}
	return p.SkillSmall
}
