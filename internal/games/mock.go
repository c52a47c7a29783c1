package games

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the GameStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateGameFunc        func(game *Game) error
	GetGameFunc           func(gameID string) (*Game, error)
	BookedGamesFunc       func(fieldID string, from, to time.Time) ([]Interval, error)
	UpdateStatusFunc      func(gameID string, status GameStatus) error
	DeleteGameFunc        func(gameID string) error
	GamesForLifecycleFunc func() ([]*Game, error)
	ListGamesFunc         func() ([]*Game, error)

	// Call records
	CreateGameCalls   []*Game
	BookedGamesCalls  []BookedGamesCall
	UpdateStatusCalls []UpdateStatusCall
	DeleteGameCalls   []string
}

// BookedGamesCall holds the arguments for a call to BookedGames.
type BookedGamesCall struct {
	FieldID string
	From    time.Time
	To      time.Time
}

// UpdateStatusCall holds the arguments for a call to UpdateStatus.
type UpdateStatusCall struct {
	GameID string
	Status GameStatus
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateGameCalls = nil
	m.BookedGamesCalls = nil
	m.UpdateStatusCalls = nil
}

func (m *MockStore) CreateGame(game *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateGameCalls = append(m.CreateGameCalls, game)
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(game)
	}
	return nil
}

func (m *MockStore) GetGame(gameID string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameID)
	}
	return nil, nil
}

func (m *MockStore) BookedGames(fieldID string, from, to time.Time) ([]Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookedGamesCalls = append(m.BookedGamesCalls, BookedGamesCall{FieldID: fieldID, From: from, To: to})
	if m.BookedGamesFunc != nil {
		return m.BookedGamesFunc(fieldID, from, to)
	}
	return nil, nil
}

func (m *MockStore) UpdateStatus(gameID string, status GameStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateStatusCalls = append(m.UpdateStatusCalls, UpdateStatusCall{GameID: gameID, Status: status})
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(gameID, status)
	}
	return nil
}

func (m *MockStore) DeleteGame(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteGameCalls = append(m.DeleteGameCalls, gameID)
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(gameID)
	}
	return nil
}

func (m *MockStore) GamesForLifecycle() ([]*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GamesForLifecycleFunc != nil {
		return m.GamesForLifecycleFunc()
	}
	return nil, nil
}

func (m *MockStore) ListGames() ([]*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc()
	}
	return nil, nil
}
