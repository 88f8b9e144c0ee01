package report

import (
	"encoding/json"
	"errors"
	"testing"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CountsRows(t *testing.T) {
	keywords := []models.KeywordRow{
		{Keyword: "a", HasOverview: true},
		{Keyword: "b", HasOverview: false},
		{Keyword: "c", HasOverview: true},
	}
	competitors := []models.CompetitorRow{{Brand: "x.com", CitedCount: 2}}

	report := Build(keywords, competitors)

	assert.Equal(t, models.StatusSuccess, report.Status)
	assert.True(t, report.Succeeded())
	assert.Equal(t, 3, report.KeywordsAnalyzed)
	assert.Equal(t, 2, report.AIOverviewsFound)
	assert.Equal(t, 1, report.CompetitorsIdentified)
	assert.LessOrEqual(t, report.AIOverviewsFound, report.KeywordsAnalyzed)
}

func TestBuild_EmptyInputIsSuccess(t *testing.T) {
	report := Build(nil, nil)

	assert.Equal(t, models.StatusSuccess, report.Status)
	assert.Equal(t, 0, report.KeywordsAnalyzed)
	assert.Equal(t, 0, report.AIOverviewsFound)
	assert.Equal(t, 0, report.CompetitorsIdentified)
	assert.NotNil(t, report.KeywordsTable)
	assert.NotNil(t, report.CompetitorsTable)

	encoded, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"keywords_table":[]`)
	assert.Contains(t, string(encoded), `"competitors_table":[]`)
}

func TestFailed_HasNoTables(t *testing.T) {
	report := Failed(errors.New("brand_name must not be empty"))

	assert.Equal(t, models.StatusError, report.Status)
	assert.False(t, report.Succeeded())
	assert.Equal(t, "brand_name must not be empty", report.Message)
	assert.Nil(t, report.KeywordsTable)
	assert.Nil(t, report.CompetitorsTable)

	encoded, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"keywords_table":null`)
	assert.Contains(t, string(encoded), `"competitors_table":null`)
}
