package extractor

import (
	"testing"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIndexCitations_PreservesProviderOrder(t *testing.T) {
	raw := []map[string]interface{}{
		{"domain": "z.com"},
		{"domain": "a.com"},
		{"domain": "m.com"},
	}

	refs := IndexCitations(raw)

	assert.Equal(t, []models.Reference{
		{Rank: 1, Domain: "z.com"},
		{Rank: 2, Domain: "a.com"},
		{Rank: 3, Domain: "m.com"},
	}, refs)
}

func TestIndexCitations_KeepsDisplayFormAndDuplicates(t *testing.T) {
	raw := []map[string]interface{}{
		{"domain": " WWW.OpenAI.com "},
		{"domain": "openai.com"},
	}

	refs := IndexCitations(raw)

	assert.Equal(t, []models.Reference{
		{Rank: 1, Domain: "WWW.OpenAI.com"},
		{Rank: 2, Domain: "openai.com"},
	}, refs)
}

func TestIndexCitations_Empty(t *testing.T) {
	refs := IndexCitations(nil)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestIndexCitations_DomainResolution(t *testing.T) {
	raw := []map[string]interface{}{
		{"url": "https://docs.example.com/a?b=c"},
		{"url": "not a url with host"},
		{"domain": 12},
		{"domain": "", "url": "http://fallback.io"},
	}

	refs := IndexCitations(raw)

	assert.Equal(t, []models.Reference{
		{Rank: 1, Domain: "docs.example.com"},
		{Rank: 4, Domain: "fallback.io"},
	}, refs)
}

func TestFirstRanks(t *testing.T) {
	refs := []models.Reference{
		{Rank: 1, Domain: "wikipedia.org"},
		{Rank: 2, Domain: "openai.com"},
		{Rank: 3, Domain: "https://www.OpenAI.com/"},
	}

	ranks := FirstRanks(refs)

	assert.Equal(t, map[string]int{
		"wikipedia.org": 1,
		"openai.com":    2,
	}, ranks)
}
