package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisReport_MarshalJSON_ErrorHasNoTables(t *testing.T) {
	report := AnalysisReport{
		Status:    StatusError,
		Message:   "invalid brand input",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(&report)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "invalid brand input", body["message"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["timestamp"])
	assert.NotContains(t, body, "keywords_table")
	assert.NotContains(t, body, "competitors_table")
}

func TestAnalysisReport_MarshalJSON_EmptySuccessKeepsTables(t *testing.T) {
	report := AnalysisReport{
		Status:           StatusSuccess,
		KeywordsTable:    []KeywordRow{},
		CompetitorsTable: []CompetitorRow{},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"keywords_table":[]`)
	assert.Contains(t, string(data), `"competitors_table":[]`)
	assert.Contains(t, string(data), `"keywords_analyzed":0`)
}

func TestAnalysisReport_MarshalJSON_SuccessRoundTrip(t *testing.T) {
	rank := 1
	report := AnalysisReport{
		Status:           StatusSuccess,
		TargetBrand:      "Acme",
		KeywordsAnalyzed: 1,
		KeywordsTable: []KeywordRow{{
			Keyword:              "best crm",
			HasOverview:          true,
			TargetBrandCited:     true,
			TargetBrandRank:      &rank,
			AllReferencesDisplay: []string{"1. acme.com"},
			RawReferences:        []Reference{{Rank: 1, Domain: "acme.com"}},
			NarrativeText:        "Acme leads",
		}},
		CompetitorsTable: []CompetitorRow{{Brand: "acme.com", CitedCount: 1, PromptCitedRate: 1}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Acme leads")

	var decoded AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.KeywordsTable, 1)
	assert.Equal(t, 1, *decoded.KeywordsTable[0].TargetBrandRank)
	assert.Equal(t, "acme.com", decoded.CompetitorsTable[0].Brand)
}
