package overviewAnalysis

import (
	"context"

	"AIOverview_Analysis/internal/models"
)

// AnalysisService defines the interface for AI Overview analysis runs
// External packages should use this interface, not the concrete implementations
type AnalysisService interface {
	// Analyze runs the pipeline over already fetched records. The returned report is never nil;
	// on error it is the error report.
	Analyze(ctx context.Context, records []models.RawResultRecord, target models.Target) (*models.AnalysisReport, error)
	// FetchAndAnalyze fetches the requested keywords from the SERP provider, then analyzes them
	FetchAndAnalyze(ctx context.Context, req models.FetchAnalysisRequest) (*models.AnalysisReport, error)
}
