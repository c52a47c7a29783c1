package penalty

import (
	"sync"
	"time"
)

// MockLedger is a mock implementation of the Ledger interface for testing.
// It is safe for concurrent use.
type MockLedger struct {
	mu sync.Mutex

	// Spies for method calls
	RecordLeaveFunc func(playerID string, gameStart, now time.Time) (*LeaveOutcome, error)
	StatusFunc      func(playerID string, now time.Time) (*Status, error)

	// Call records
	RecordLeaveCalls []RecordLeaveCall
	StatusCalls      []string
}

// RecordLeaveCall holds the arguments for a call to RecordLeave.
type RecordLeaveCall struct {
	PlayerID  string
	GameStart time.Time
	Now       time.Time
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) RecordLeave(playerID string, gameStart, now time.Time) (*LeaveOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordLeaveCalls = append(m.RecordLeaveCalls, RecordLeaveCall{PlayerID: playerID, GameStart: gameStart, Now: now})
	if m.RecordLeaveFunc != nil {
		return m.RecordLeaveFunc(playerID, gameStart, now)
	}
	return &LeaveOutcome{}, nil
}

func (m *MockLedger) Status(playerID string, now time.Time) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls = append(m.StatusCalls, playerID)
	if m.StatusFunc != nil {
		return m.StatusFunc(playerID, now)
	}
	return &Status{}, nil
}
