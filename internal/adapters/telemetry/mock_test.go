package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// mockRenderer is a ports.Renderer double that counts callbacks and keeps
// the streamed bytes, so tests can assert on delivery without a real UI.
type mockRenderer struct {
	mu            sync.Mutex
	sessionCalls  int
	startCalls    int
	completeCalls int
	streamed      []byte
}

func (m *mockRenderer) Start(_ context.Context) error { return nil }
func (m *mockRenderer) Stop() error                   { return nil }
func (m *mockRenderer) Wait() error                   { return nil }

func (m *mockRenderer) OnSessionBegin(_, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionCalls++
}

func (m *mockRenderer) OnStepStart(_, _, _ string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
}

func (m *mockRenderer) OnStepLog(_ string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamed = append(m.streamed, data...)
}

func (m *mockRenderer) OnStepComplete(_ string, _ time.Time, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeCalls++
}

func (m *mockRenderer) sessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionCalls
}

func (m *mockRenderer) startCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls
}

func (m *mockRenderer) completeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completeCalls
}

// logged returns everything streamed through OnStepLog so far.
func (m *mockRenderer) logged() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.streamed)
}
