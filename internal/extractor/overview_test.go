package extractor

import (
	"encoding/json"
	"testing"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overviewResult = `[{
	"keyword": "ai tools",
	"items": [
		{"type": "organic", "domain": "example.com"},
		{
			"type": "ai_overview",
			"items": [
				{"type": "ai_overview_element", "title": "AI tools", "text": "OpenAI builds ChatGPT."},
				{"type": "ai_overview_element", "text": "  "},
				{"type": "ai_overview_element", "text": "Other vendors exist."}
			],
			"references": [
				{"type": "ai_overview_reference", "domain": "wikipedia.org", "url": "https://wikipedia.org/wiki/AI"},
				{"type": "ai_overview_reference", "domain": "openai.com"},
				{"type": "ai_overview_reference", "domain": "openai.com"}
			]
		}
	]
}]`

func record(keyword, payload string) models.RawResultRecord {
	return models.RawResultRecord{Keyword: keyword, Payload: json.RawMessage(payload)}
}

func TestExtractor_Extract_WithOverview(t *testing.T) {
	extractor := newExtractor()

	result, err := extractor.Extract(record("", overviewResult))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "ai tools", result.Keyword)
	assert.True(t, result.HasOverview())
	assert.Equal(t, []models.Reference{
		{Rank: 1, Domain: "wikipedia.org"},
		{Rank: 2, Domain: "openai.com"},
		{Rank: 3, Domain: "openai.com"},
	}, result.References())
	assert.Equal(t, "AI tools OpenAI builds ChatGPT. Other vendors exist.", result.NarrativeText())
}

func TestExtractor_Extract_CallerKeywordWins(t *testing.T) {
	extractor := newExtractor()

	result, err := extractor.Extract(record("chatbots", overviewResult))

	require.NoError(t, err)
	assert.Equal(t, "chatbots", result.Keyword)
}

func TestExtractor_Extract_NoOverview(t *testing.T) {
	extractor := newExtractor()

	tests := []struct {
		name    string
		payload string
	}{
		{"no items", `{"keyword": "k"}`},
		{"items null", `{"keyword": "k", "items": null}`},
		{"items not an array", `{"keyword": "k", "items": "oops"}`},
		{"only organic items", `{"keyword": "k", "items": [{"type": "organic"}, 42, "x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extractor.Extract(record("", tt.payload))

			require.NoError(t, err)
			assert.Equal(t, "k", result.Keyword)
			assert.False(t, result.HasOverview())
			assert.Empty(t, result.References())
			assert.Empty(t, result.NarrativeText())
		})
	}
}

func TestExtractor_Extract_Malformed(t *testing.T) {
	extractor := newExtractor()

	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"invalid json", `{"keyword": `},
		{"null", `null`},
		{"string", `"text"`},
		{"array without objects", `[1, 2, 3]`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extractor.Extract(record("k", tt.payload))

			assert.Nil(t, result)
			assert.ErrorIs(t, err, models.ErrMalformedRecord)
		})
	}
}

func TestExtractor_Extract_ElementReferencesFallback(t *testing.T) {
	extractor := newExtractor()
	payload := `{"keyword": "k", "items": [{
		"type": "ai_overview",
		"items": [
			{"text": "First.", "references": [{"domain": "a.com"}, {"url": "https://www.b.com/page"}]},
			{"text": "Second.", "references": [{"title": "no domain"}, {"domain": "c.com"}]}
		]
	}]}`

	result, err := extractor.Extract(record("", payload))

	require.NoError(t, err)
	assert.Equal(t, []models.Reference{
		{Rank: 1, Domain: "a.com"},
		{Rank: 2, Domain: "www.b.com"},
		{Rank: 4, Domain: "c.com"},
	}, result.References())
	assert.Equal(t, "First. Second.", result.NarrativeText())
}

func TestExtractor_Extract_NarrativeFallbacks(t *testing.T) {
	extractor := newExtractor()

	withText, err := extractor.Extract(record("", `{"items": [{"type": "ai_overview", "text": "Block text", "markdown": "**md**"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Block text", withText.NarrativeText())

	withMarkdown, err := extractor.Extract(record("", `{"items": [{"type": "ai_overview", "markdown": "**md**"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "**md**", withMarkdown.NarrativeText())
}

func TestExtractor_Extract_EmptyOverviewBlockStillPresent(t *testing.T) {
	extractor := newExtractor()

	result, err := extractor.Extract(record("k", `{"items": [{"type": "ai_overview"}]}`))

	require.NoError(t, err)
	assert.True(t, result.HasOverview())
	assert.Empty(t, result.References())
	assert.Empty(t, result.NarrativeText())
}

func TestNewExtractor_PublicConstructor(t *testing.T) {
	extractor := NewExtractor()
	assert.NotNil(t, extractor)
}
