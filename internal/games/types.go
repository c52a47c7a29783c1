package games

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Mode is the game format. It determines roster size and which fields are
// eligible.
type Mode string

const (
	ModeSmall Mode = "SMALL"
	ModeLarge Mode = "LARGE"
)

// RosterSize returns the total number of players a match in this mode
// consumes (both teams combined).
func (m Mode) RosterSize() int {
	if m == ModeLarge {
		return 22
	}
	return 10
}

// ParseMode parses a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return ModeSmall, nil
	case "LARGE":
		return ModeLarge, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}

// Team identifies which side of a game a player is assigned to.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusEnded      GameStatus = "ENDED"
)

// GamePlayer is a player's membership in a game, with team assignment.
type GamePlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Team     Team   `json:"team"`
}

// Game is a scheduled match at a field.
type Game struct {
	ID        string       `json:"id"`
	Mode      Mode         `json:"mode"`
	FieldID   string       `json:"field_id"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Status    GameStatus   `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Players   []GamePlayer `json:"players"`
}

// Interval is a booked time window at a field.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the interval overlaps [start, end).
func (i Interval) Overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && i.End.After(start)
}

// store handles database operations for games.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
