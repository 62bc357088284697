package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dorascope/dorascope/schema"
)

// MockEventProvider is a mock implementation of EventProvider for testing.
type MockEventProvider struct {
	mock.Mock
}

var _ EventProvider = &MockEventProvider{} // Compile-time check

// FetchEvents implements the EventProvider interface.
func (m *MockEventProvider) FetchEvents(ctx context.Context, repository string, since, until time.Time) (schema.EventBundle, error) {
	ret := m.Called(ctx, repository, since, until)
	bundle, _ := ret.Get(0).(schema.EventBundle)
	return bundle, ret.Error(1)
}

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// UpsertMetrics implements the HistoryStore interface.
func (m *MockHistoryStore) UpsertMetrics(record schema.DevOpsMetrics) error {
	return m.Called(record).Error(0)
}

// GetMetricsSince implements the HistoryStore interface.
func (m *MockHistoryStore) GetMetricsSince(repositories []string, since time.Time) ([]schema.DevOpsMetrics, error) {
	ret := m.Called(repositories, since)
	records, _ := ret.Get(0).([]schema.DevOpsMetrics)
	return records, ret.Error(1)
}

// GetAllMetrics implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllMetrics() ([]schema.DevOpsMetrics, error) {
	ret := m.Called()
	records, _ := ret.Get(0).([]schema.DevOpsMetrics)
	return records, ret.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// DeleteAll implements the HistoryStore interface.
func (m *MockHistoryStore) DeleteAll() error {
	return m.Called().Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}

// MockNotifier is a mock implementation of Notifier for testing.
type MockNotifier struct {
	mock.Mock
}

var _ Notifier = &MockNotifier{} // Compile-time check

// Send implements the Notifier interface.
func (m *MockNotifier) Send(ctx context.Context, result schema.HealthResult) error {
	return m.Called(ctx, result).Error(0)
}
