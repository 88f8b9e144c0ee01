package mocks

import (
	"context"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAnalysisService is a mock implementation of overviewAnalysis.AnalysisService
type MockAnalysisService struct {
	mock.Mock
}

// Analyze mocks the Analyze method of overviewAnalysis.AnalysisService
func (m *MockAnalysisService) Analyze(ctx context.Context, records []models.RawResultRecord, target models.Target) (*models.AnalysisReport, error) {
	args := m.Called(ctx, records, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisReport), args.Error(1)
}

// FetchAndAnalyze mocks the FetchAndAnalyze method of overviewAnalysis.AnalysisService
func (m *MockAnalysisService) FetchAndAnalyze(ctx context.Context, req models.FetchAnalysisRequest) (*models.AnalysisReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisReport), args.Error(1)
}
