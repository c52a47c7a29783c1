package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	queueJoins          int
	queueLeaves         int
	matchesFormed       int
	matchFailures       map[string]int
	penaltiesApplied    int
	gamesEnded          int
	schedulingDurations []float64
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchFailures:       make(map[string]int),
		schedulingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncQueueJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueJoins++
}

func (m *Mock) IncQueueLeaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueLeaves++
}

func (m *Mock) IncMatchesFormed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFormed++
}

func (m *Mock) IncMatchAttemptFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchFailures[reason]++
}

func (m *Mock) IncPenaltiesApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.penaltiesApplied++
}

func (m *Mock) IncGamesEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesEnded++
}

func (m *Mock) ObserveSchedulingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulingDurations = append(m.schedulingDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesFormed returns the recorded matches-formed count.
func (m *Mock) MatchesFormedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFormed
}

// MatchFailureCount returns the recorded failure count for a reason.
func (m *Mock) MatchFailureCount(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchFailures[reason]
}

// PenaltiesAppliedCount returns the recorded penalties-applied count.
func (m *Mock) PenaltiesAppliedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.penaltiesApplied
}
