package players

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetPlayerFunc        func(playerID string) (*PlayerInfo, error)
	GetPlayersFunc       func(playerIDs []string) ([]PlayerInfo, error)
	UpsertPlayersFunc    func(players []PlayerInfo) error
	FillerCandidatesFunc func(category string, exclude []string, k int) ([]PlayerInfo, error)
	IsKnownPlayerFunc    func(playerID string) bool
	GetAllPlayersFunc    func() ([]PlayerInfo, error)

	// Call records
	GetPlayerCalls        []string
	GetPlayersCalls       [][]string
	UpsertPlayersCalls    [][]PlayerInfo
	FillerCandidatesCalls []FillerCandidatesCall
}

// FillerCandidatesCall holds the arguments for a call to FillerCandidates.
type FillerCandidatesCall struct {
	Category string
	Exclude  []string
	K        int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerCalls = nil
	m.GetPlayersCalls = nil
	m.UpsertPlayersCalls = nil
	m.FillerCandidatesCalls = nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerCalls = append(m.GetPlayerCalls, playerID)
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) FillerCandidates(category string, exclude []string, k int) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FillerCandidatesCalls = append(m.FillerCandidatesCalls, FillerCandidatesCall{Category: category, Exclude: exclude, K: k})
	if m.FillerCandidatesFunc != nil {
		return m.FillerCandidatesFunc(category, exclude, k)
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}
