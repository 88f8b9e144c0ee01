package extractor

import (
	"net/url"
	"strings"

	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/normalizer"
)

const (
	domainKey = "domain"
	urlKey    = "url"
)

// IndexCitations ranks raw reference entries by their position in the source list.
// Entries without a resolvable domain are dropped without renumbering the rest.
func IndexCitations(raw []map[string]interface{}) []models.Reference {
	refs := make([]models.Reference, 0, len(raw))
	for i, entry := range raw {
		domain := referenceDomain(entry)
		if domain == "" {
			continue
		}
		refs = append(refs, models.Reference{
			Rank:   i + 1,
			Domain: domain,
		})
	}
	return refs
}

// referenceDomain returns the display domain of a reference, falling back to the URL host
func referenceDomain(entry map[string]interface{}) string {
	if domain := strings.TrimSpace(stringField(entry, domainKey)); domain != "" {
		return domain
	}

	rawURL := strings.TrimSpace(stringField(entry, urlKey))
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// FirstRanks maps each normalized domain to the lowest rank it was cited at
func FirstRanks(refs []models.Reference) map[string]int {
	ranks := make(map[string]int, len(refs))
	for _, ref := range refs {
		key := normalizer.Normalize(ref.Domain)
		if key == "" {
			continue
		}
		if rank, seen := ranks[key]; !seen || ref.Rank < rank {
			ranks[key] = ref.Rank
		}
	}
	return ranks
}
