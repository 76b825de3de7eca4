package service

import (
	"context"

	"caseodds/events"
	"caseodds/models"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCacheStore is a mock implementation of CacheStore
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Path(name string) string {
	args := m.Called(name)
	return args.String(0)
}

func (m *MockCacheStore) IsFresh(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheStore) Load(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheStore) Store(name string, raw []byte) error {
	args := m.Called(name, raw)
	return args.Error(0)
}

// MockResultStore is a mock implementation of ResultStore
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) SaveFilteredOdds(name string, table *models.DropTable) (string, error) {
	args := m.Called(name, table)
	return args.String(0), args.Error(1)
}

func (m *MockResultStore) SaveReport(name string, report *models.Report) (string, error) {
	args := m.Called(name, report)
	return args.String(0), args.Error(1)
}

// MockChartRenderer is a mock implementation of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) Render(report *models.Report, path string) error {
	args := m.Called(report, path)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
