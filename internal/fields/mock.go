package fields

import (
	"sync"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
)

// MockIndex is a mock implementation of the FieldIndex interface for testing.
// It is safe for concurrent use.
type MockIndex struct {
	mu sync.Mutex

	// Spies for method calls
	FindNearbyFunc         func(center geo.Coordinate, radiusKm float64, mode games.Mode) ([]Field, error)
	GetFieldFunc           func(fieldID string) (*Field, error)
	AvailabilityDaysFunc   func(fieldID string, from, to time.Time) ([]AvailabilityDay, error)
	ConsumeSlotFunc        func(ref SlotRef) error
	UpsertFieldsFunc       func(fields []Field) error
	UpsertAvailabilityFunc func(fieldID string, day AvailabilityDay) error
	GetAllFieldsFunc       func() ([]Field, error)

	// Call records
	FindNearbyCalls  []FindNearbyCall
	ConsumeSlotCalls []SlotRef
}

// FindNearbyCall holds the arguments for a call to FindNearby.
type FindNearbyCall struct {
	Center   geo.Coordinate
	RadiusKm float64
	Mode     games.Mode
}

// NewMock creates a new mock instance.
func NewMock() *MockIndex {
	return &MockIndex{}
}

// Reset clears all call records.
func (m *MockIndex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindNearbyCalls = nil
	m.ConsumeSlotCalls = nil
}

func (m *MockIndex) FindNearby(center geo.Coordinate, radiusKm float64, mode games.Mode) ([]Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindNearbyCalls = append(m.FindNearbyCalls, FindNearbyCall{Center: center, RadiusKm: radiusKm, Mode: mode})
	if m.FindNearbyFunc != nil {
		return m.FindNearbyFunc(center, radiusKm, mode)
	}
	return nil, nil
}

func (m *MockIndex) GetField(fieldID string) (*Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFieldFunc != nil {
		return m.GetFieldFunc(fieldID)
	}
	return nil, nil
}

func (m *MockIndex) AvailabilityDays(fieldID string, from, to time.Time) ([]AvailabilityDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AvailabilityDaysFunc != nil {
		return m.AvailabilityDaysFunc(fieldID, from, to)
	}
	return nil, nil
}

func (m *MockIndex) ConsumeSlot(ref SlotRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConsumeSlotCalls = append(m.ConsumeSlotCalls, ref)
	if m.ConsumeSlotFunc != nil {
		return m.ConsumeSlotFunc(ref)
	}
	return nil
}

func (m *MockIndex) UpsertFields(fields []Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertFieldsFunc != nil {
		return m.UpsertFieldsFunc(fields)
	}
	return nil
}

func (m *MockIndex) UpsertAvailability(fieldID string, day AvailabilityDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertAvailabilityFunc != nil {
		return m.UpsertAvailabilityFunc(fieldID, day)
	}
	return nil
}

func (m *MockIndex) GetAllFields() ([]Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFieldsFunc != nil {
		return m.GetAllFieldsFunc()
	}
	return nil, nil
}
