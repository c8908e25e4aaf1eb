package groupservice

import (
	"context"
	"sync"
)

type Mock interface {
	GroupService

	Reset()
	Recording() []uint
	SimulateError(err error)
}

type mockImpl struct {
	mu        sync.Mutex
	recording []uint
	simulated error
}

var _ Mock = (*mockImpl)(nil)

func newMock() Mock {
	return &mockImpl{
		recording: make([]uint, 0),
	}
}

func CreateMock() Mock {
	return newMock()
}

func (m *mockImpl) PaymentsChanged(ctx context.Context, groupID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.simulated != nil {
		return m.simulated
	}
	m.recording = append(m.recording, groupID)
	return nil
}

func (m *mockImpl) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recording = make([]uint, 0)
	m.simulated = nil
}

func (m *mockImpl) Recording() []uint {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]uint(nil), m.recording...)
}

func (m *mockImpl) SimulateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.simulated = err
}
