package mocks

import (
	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockExtractor is a mock implementation of extractor.Service
type MockExtractor struct {
	mock.Mock
}

// Extract mocks the Extract method of extractor.Service
func (m *MockExtractor) Extract(record models.RawResultRecord) (*models.OverviewRecord, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverviewRecord), args.Error(1)
}
