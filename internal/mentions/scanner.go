package mentions

import "strings"

// CountMentions counts case-insensitive, non-overlapping occurrences of brand in text,
// scanning left to right. Blank input on either side yields 0.
func CountMentions(text, brand string) int {
	brand = strings.TrimSpace(brand)
	if brand == "" || text == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(brand))
}
