package penalty

import "time"

// Ledger tracks leaver penalties per player. Time is always an input
// parameter so behavior stays deterministic under test.
type Ledger interface {
	// RecordLeave applies a penalty if the player left within the penalty
	// window before the scheduled game start (or after it). Reaching the
	// suspension threshold starts a suspension.
	RecordLeave(playerID string, gameStart, now time.Time) (*LeaveOutcome, error)

	// Status decays the player's tally by whole elapsed days, clears an
	// expired suspension, persists the result and reports the current state.
	Status(playerID string, now time.Time) (*Status, error)
}
