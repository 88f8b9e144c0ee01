package aggregator

import (
	"sort"
	"strings"

	"AIOverview_Analysis/internal/extractor"
	"AIOverview_Analysis/internal/mentions"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/normalizer"
)

// competitorTally accumulates one brand's counts across keywords
type competitorTally struct {
	brand             string
	token             string
	isTarget          bool
	citedKeywords     int
	mentions          int
	mentionedKeywords int
}

// AggregateCompetitors folds all keyword rows into one row per distinct cited domain.
// The fold is order-independent; output is sorted by engagement, then citations, then name.
func AggregateCompetitors(rows []models.KeywordRow, totalKeywords int, target models.Target) []models.CompetitorRow {
	tallies := make(map[string]*competitorTally)

	for _, row := range rows {
		for _, ref := range row.RawReferences {
			key := normalizer.Normalize(ref.Domain)
			if key == "" {
				continue
			}
			if _, seen := tallies[key]; !seen {
				display := strings.TrimSpace(ref.Domain)
				tallies[key] = &competitorTally{brand: display, token: display}
			}
		}
	}

	// The target is the one domain with a caller-supplied brand label
	if targetKey := normalizer.Normalize(target.BrandDomain); targetKey != "" {
		tally, seen := tallies[targetKey]
		if !seen {
			tally = &competitorTally{brand: strings.TrimSpace(target.BrandDomain)}
			tallies[targetKey] = tally
		}
		tally.isTarget = true
		tally.token = target.BrandName
	}

	for _, row := range rows {
		cited := extractor.FirstRanks(row.RawReferences)

		for key, tally := range tallies {
			if _, ok := cited[key]; ok {
				tally.citedKeywords++
			}

			count := row.TargetBrandMentionedCount
			if !tally.isTarget {
				count = mentions.CountMentions(row.NarrativeText, tally.token)
			}
			tally.mentions += count
			if count > 0 {
				tally.mentionedKeywords++
			}
		}
	}

	type keyedRow struct {
		key string
		row models.CompetitorRow
	}

	keyed := make([]keyedRow, 0, len(tallies))
	for key, tally := range tallies {
		if tally.citedKeywords == 0 && tally.mentions == 0 {
			continue
		}
		keyed = append(keyed, keyedRow{
			key: key,
			row: models.CompetitorRow{
				Brand:           tally.brand,
				CitedCount:      tally.citedKeywords,
				Mentioned:       tally.mentions,
				PromptCitedRate: rate(tally.citedKeywords, totalKeywords),
				MentionRate:     rate(tally.mentionedKeywords, totalKeywords),
			},
		})
	}

	sort.Slice(keyed, func(i, j int) bool {
		a, b := keyed[i].row, keyed[j].row
		if a.Engagement() != b.Engagement() {
			return a.Engagement() > b.Engagement()
		}
		if a.CitedCount != b.CitedCount {
			return a.CitedCount > b.CitedCount
		}
		return keyed[i].key < keyed[j].key
	})

	competitors := make([]models.CompetitorRow, 0, len(keyed))
	for _, k := range keyed {
		competitors = append(competitors, k.row)
	}
	return competitors
}

// rate returns count/total in [0,1], or 0 when there are no keywords
func rate(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(count) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}
