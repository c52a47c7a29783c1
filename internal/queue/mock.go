package queue

import (
	"sync"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
)

// MockStore is a mock implementation of the QueueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	EnqueueFunc   func(playerID string, mode games.Mode, at time.Time) error
	RemoveFunc    func(playerID string, mode games.Mode) error
	RemoveAllFunc func(mode games.Mode, playerIDs []string) error
	EntriesFunc   func(mode games.Mode) ([]Entry, error)
	IsQueuedFunc  func(playerID string, mode games.Mode) (bool, error)

	// Call records
	EnqueueCalls   []Entry
	RemoveCalls    []Entry
	RemoveAllCalls []RemoveAllCall
}

// RemoveAllCall holds the arguments for a call to RemoveAll.
type RemoveAllCall struct {
	Mode      games.Mode
	PlayerIDs []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnqueueCalls = nil
	m.RemoveCalls = nil
	m.RemoveAllCalls = nil
}

func (m *MockStore) Enqueue(playerID string, mode games.Mode, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnqueueCalls = append(m.EnqueueCalls, Entry{PlayerID: playerID, Mode: mode, EnqueuedAt: at})
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(playerID, mode, at)
	}
	return nil
}

func (m *MockStore) Remove(playerID string, mode games.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, Entry{PlayerID: playerID, Mode: mode})
	if m.RemoveFunc != nil {
		return m.RemoveFunc(playerID, mode)
	}
	return nil
}

func (m *MockStore) RemoveAll(mode games.Mode, playerIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveAllCalls = append(m.RemoveAllCalls, RemoveAllCall{Mode: mode, PlayerIDs: playerIDs})
	if m.RemoveAllFunc != nil {
		return m.RemoveAllFunc(mode, playerIDs)
	}
	return nil
}

func (m *MockStore) Entries(mode games.Mode) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EntriesFunc != nil {
		return m.EntriesFunc(mode)
	}
	return nil, nil
}

func (m *MockStore) IsQueued(playerID string, mode games.Mode) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsQueuedFunc != nil {
		return m.IsQueuedFunc(playerID, mode)
	}
	return false, nil
}
