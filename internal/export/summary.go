package export

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"AIOverview_Analysis/internal/models"
)

const topCompetitors = 5

// Summary renders the plain-text analysis summary
func Summary(report *models.AnalysisReport) (string, error) {
	if !report.Succeeded() {
		return "", ErrNoTables
	}

	totalCitations, totalMentions := 0, 0
	for _, c := range report.CompetitorsTable {
		totalCitations += c.CitedCount
		totalMentions += c.Mentioned
	}

	var b strings.Builder
	fmt.Fprintf(&b, "AI Overviews Analysis Summary\n")
	fmt.Fprintf(&b, "Brand: %s (%s)\n", report.TargetBrand, report.TargetDomain)
	fmt.Fprintf(&b, "====================================\n\n")
	fmt.Fprintf(&b, "Keywords Analyzed: %d\n", report.KeywordsAnalyzed)
	fmt.Fprintf(&b, "AI Overviews Found: %d\n", report.AIOverviewsFound)
	fmt.Fprintf(&b, "Competitors Identified: %d\n\n", report.CompetitorsIdentified)
	fmt.Fprintf(&b, "Total Citations Across All Competitors: %d\n", totalCitations)
	fmt.Fprintf(&b, "Total Mentions Across All Competitors: %d\n\n", totalMentions)

	b.WriteString("Top Competitor by Total Engagement:\n")
	if len(report.CompetitorsTable) == 0 {
		b.WriteString("No data\n")
		b.WriteString("- Citations: N/A\n- Mentions: N/A\n- Citation Rate: N/A\n- Mention Rate: N/A\n\n")
		b.WriteString("Top 5 Competitors Summary:\nNo data\n")
		return b.String(), nil
	}

	top := report.CompetitorsTable[0]
	fmt.Fprintf(&b, "%s\n", top.Brand)
	fmt.Fprintf(&b, "- Citations: %d\n", top.CitedCount)
	fmt.Fprintf(&b, "- Mentions: %d\n", top.Mentioned)
	fmt.Fprintf(&b, "- Citation Rate: %s\n", percent(top.PromptCitedRate))
	fmt.Fprintf(&b, "- Mention Rate: %s\n\n", percent(top.MentionRate))

	b.WriteString("Top 5 Competitors Summary:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "brand\tcited_count\tmentioned\tprompt_cited_rate\tmention_rate\t")
	for i, c := range report.CompetitorsTable {
		if i == topCompetitors {
			break
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.6f\t\n", c.Brand, c.CitedCount, c.Mentioned, c.PromptCitedRate, c.MentionRate)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}

	return b.String(), nil
}

// percent formats a [0,1] rate with one decimal, e.g. 0.5 -> "50.0%"
func percent(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}
