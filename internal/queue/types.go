package queue

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
)

var (
	// ErrAlreadyQueued is returned when a player joins a queue they are
	// already in.
	ErrAlreadyQueued = errors.New("player already queued for this mode")
	// ErrNotQueued is returned when a player leaves a queue they are not in.
	ErrNotQueued = errors.New("player is not queued for this mode")
)

// store handles database operations for queue entries.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is a player's pending position in a mode's queue.
type Entry struct {
	PlayerID   string     `json:"player_id"`
	Mode       games.Mode `json:"mode"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
}

// TeamSummary is one team's roster in a match result.
type TeamSummary struct {
	Team    games.Team           `json:"team"`
	Players []players.PlayerInfo `json:"players"`
}

// MatchResult describes a successfully formed match.
type MatchResult struct {
	GameID  string       `json:"game_id"`
	Mode    games.Mode   `json:"mode"`
	Field   fields.Field `json:"field"`
	Start   time.Time    `json:"start"`
	End     time.Time    `json:"end"`
	TeamA   TeamSummary  `json:"team_a"`
	TeamB   TeamSummary  `json:"team_b"`
	Fillers int          `json:"fillers"`
}

// JoinReason explains why a join request did not produce a match.
type JoinReason string

const (
	ReasonMatched             JoinReason = "MATCHED"
	ReasonInsufficientPlayers JoinReason = "INSUFFICIENT_PLAYERS"
	ReasonNoSlotFound         JoinReason = "NO_SLOT_FOUND"
)

// JoinResult is the outcome of a join request. Exactly one of Match or a
// queued acknowledgement applies: when Match is nil the player remains
// queued with Reason set.
type JoinResult struct {
	Match  *MatchResult `json:"match,omitempty"`
	Reason JoinReason   `json:"reason"`
}
