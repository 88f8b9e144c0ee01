package mentions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountMentions(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		brand    string
		expected int
	}{
		{"single match", "OpenAI released a model.", "OpenAI", 1},
		{"case insensitive", "openai and OPENAI and OpenAi", "OpenAI", 3},
		{"substring inside words", "ChatGPT by OpenAI; openai.com hosts it", "openai", 2},
		{"domain token", "Visit openai.com or OpenAI.com today", "openai.com", 2},
		{"non overlapping", "aaaa", "aa", 2},
		{"no match", "Nothing to see here", "OpenAI", 0},
		{"empty brand", "OpenAI", "", 0},
		{"whitespace brand", "OpenAI", "   ", 0},
		{"empty text", "", "OpenAI", 0},
		{"brand trimmed", "OpenAI is here", " OpenAI ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountMentions(tt.text, tt.brand))
		})
	}
}
