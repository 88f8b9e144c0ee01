package report

import (
	"AIOverview_Analysis/internal/models"
)

// Build assembles the success report from the aggregated tables.
// Zero keyword rows is a valid, empty success.
func Build(keywordRows []models.KeywordRow, competitorRows []models.CompetitorRow) *models.AnalysisReport {
	if keywordRows == nil {
		keywordRows = []models.KeywordRow{}
	}
	if competitorRows == nil {
		competitorRows = []models.CompetitorRow{}
	}

	overviews := 0
	for _, row := range keywordRows {
		if row.HasOverview {
			overviews++
		}
	}

	return &models.AnalysisReport{
		Status:                models.StatusSuccess,
		KeywordsAnalyzed:      len(keywordRows),
		AIOverviewsFound:      overviews,
		CompetitorsIdentified: len(competitorRows),
		KeywordsTable:         keywordRows,
		CompetitorsTable:      competitorRows,
	}
}

// Failed returns the error report for an analysis that could not run; it carries no tables
func Failed(err error) *models.AnalysisReport {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &models.AnalysisReport{
		Status:  models.StatusError,
		Message: message,
	}
}
