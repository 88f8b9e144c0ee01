package extractor

import "AIOverview_Analysis/internal/models"

// Service defines the interface for extracting AI Overview data from raw result records
// External packages should use this interface, not the concrete implementations
type Service interface {
	Extract(record models.RawResultRecord) (*models.OverviewRecord, error)
}
