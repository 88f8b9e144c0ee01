package overviewAnalysis

import "strings"

// ParseKeywords splits free text on newlines and commas. Entries are trimmed, empty ones dropped,
// and duplicates removed keeping the first occurrence.
func ParseKeywords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	return mergeKeywords(fields)
}

// mergeKeywords concatenates keyword lists with the same trimming and de-duplication
func mergeKeywords(lists ...[]string) []string {
	seen := make(map[string]struct{})
	keywords := []string{}
	for _, list := range lists {
		for _, kw := range list {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
