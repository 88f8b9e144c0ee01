package mocks

import (
	"context"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of fetcher.Service
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the Fetch method of fetcher.Service
func (m *MockFetcher) Fetch(ctx context.Context, keyword, locationCode, languageCode string) (models.RawResultRecord, error) {
	args := m.Called(ctx, keyword, locationCode, languageCode)
	return args.Get(0).(models.RawResultRecord), args.Error(1)
}

// MockBatchFetcher is a mock implementation of fetcher.BatchService
type MockBatchFetcher struct {
	mock.Mock
}

// FetchAll mocks the FetchAll method of fetcher.BatchService
func (m *MockBatchFetcher) FetchAll(ctx context.Context, keywords []string, locationCode, languageCode string, progress models.ProgressFunc) ([]models.RawResultRecord, error) {
	args := m.Called(ctx, keywords, locationCode, languageCode, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawResultRecord), args.Error(1)
}
