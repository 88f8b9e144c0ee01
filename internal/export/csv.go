package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"AIOverview_Analysis/internal/models"
)

// ErrNoTables is returned when an error report is exported
var ErrNoTables = errors.New("report has no tables to export")

var (
	keywordHeader    = []string{"keyword", "has_overview", "target_brand_cited", "target_brand_rank", "target_brand_mentioned_count", "all_references_display"}
	competitorHeader = []string{"brand", "cited_count", "mentioned", "prompt_cited_rate", "mention_rate"}
)

// WriteKeywordsCSV writes keywords_table. An absent rank is an empty cell.
func WriteKeywordsCSV(w io.Writer, report *models.AnalysisReport) error {
	if !report.Succeeded() {
		return ErrNoTables
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(keywordHeader); err != nil {
		return err
	}

	for _, row := range report.KeywordsTable {
		rank := ""
		if row.TargetBrandRank != nil {
			rank = strconv.Itoa(*row.TargetBrandRank)
		}
		record := []string{
			row.Keyword,
			strconv.FormatBool(row.HasOverview),
			strconv.FormatBool(row.TargetBrandCited),
			rank,
			strconv.Itoa(row.TargetBrandMentionedCount),
			strings.Join(row.AllReferencesDisplay, ", "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write keyword %q: %w", row.Keyword, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCompetitorsCSV writes competitors_table with rates as plain floats
func WriteCompetitorsCSV(w io.Writer, report *models.AnalysisReport) error {
	if !report.Succeeded() {
		return ErrNoTables
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(competitorHeader); err != nil {
		return err
	}

	for _, row := range report.CompetitorsTable {
		record := []string{
			row.Brand,
			strconv.Itoa(row.CitedCount),
			strconv.Itoa(row.Mentioned),
			formatRate(row.PromptCitedRate),
			formatRate(row.MentionRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write competitor %q: %w", row.Brand, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
