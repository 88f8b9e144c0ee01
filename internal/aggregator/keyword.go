package aggregator

import (
	"fmt"

	"AIOverview_Analysis/internal/mentions"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/normalizer"
)

// AggregateKeyword builds the keyword row for one extracted overview
func AggregateKeyword(overview models.OverviewRecord, target models.Target) models.KeywordRow {
	refs := overview.References()
	narrative := overview.NarrativeText()

	row := models.KeywordRow{
		Keyword:                   overview.Keyword,
		HasOverview:               overview.HasOverview(),
		TargetBrandMentionedCount: mentions.CountMentions(narrative, target.BrandName),
		AllReferencesDisplay:      DisplayReferences(refs),
		RawReferences:             append(make([]models.Reference, 0, len(refs)), refs...),
		NarrativeText:             narrative,
	}

	// refs are in rank order, so the first matching citation holds the lowest rank
	for _, ref := range refs {
		if normalizer.SameEntity(ref.Domain, target.BrandDomain) {
			rank := ref.Rank
			row.TargetBrandCited = true
			row.TargetBrandRank = &rank
			break
		}
	}

	return row
}

// DisplayReferences renders references as "rank:domain" in rank order.
// The result is for display only; RawReferences stays the source of truth.
func DisplayReferences(refs []models.Reference) []string {
	display := make([]string, 0, len(refs))
	for _, ref := range refs {
		display = append(display, fmt.Sprintf("%d:%s", ref.Rank, ref.Domain))
	}
	return display
}
