package penalty

import (
	"database/sql"
	"sync"
	"time"
)

// store handles database operations for penalty records.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// Record is a player's leaver tally. It is created lazily on the first
// penalized leave and never deleted; the tally decays toward zero instead.
type Record struct {
	PlayerID       string     `json:"player_id"`
	Tally          int        `json:"tally"`
	LastPenaltyAt  *time.Time `json:"last_penalty_at,omitempty"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
}

// Status is the outcome of a penalty check.
type Status struct {
	Suspended      bool       `json:"is_suspended"`
	SuspendedUntil *time.Time `json:"suspension_end,omitempty"`
	Tally          int        `json:"tally"`
}

// LeaveOutcome reports whether a leave incurred a penalty.
type LeaveOutcome struct {
	Applied bool `json:"penalty_applied"`
	Tally   int  `json:"tally"`
}
