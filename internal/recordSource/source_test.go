package recordSource

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"AIOverview_Analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultA = `{"keyword":"a","items":[]}`
const resultB = `{"keyword":"b","items":[{"type":"ai_overview","references":[]}]}`

func keywordsOf(t *testing.T, records []models.RawResultRecord) []string {
	t.Helper()
	out := make([]string, 0, len(records))
	for _, r := range records {
		if len(r.Payload) == 0 || string(r.Payload) == "null" {
			out = append(out, r.Keyword)
			continue
		}
		var v interface{}
		require.NoError(t, json.Unmarshal(r.Payload, &v))
		if arr, ok := v.([]interface{}); ok && len(arr) > 0 {
			v = arr[0]
		}
		obj, _ := v.(map[string]interface{})
		kw, _ := obj["keyword"].(string)
		out = append(out, kw)
	}
	return out
}

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"array of results", `[` + resultA + `,` + resultB + `]`, []string{"a", "b"}},
		{"array of one-element result arrays", `[[` + resultA + `],[` + resultB + `]]`, []string{"a", "b"}},
		{"empty array", `[]`, []string{}},
		{"provider envelope", `{"status_code":20000,"tasks":[{"result":[` + resultA + `]},{"result":[` + resultB + `]}]}`, []string{"a", "b"}},
		{"single result", resultB, []string{"b"}},
		{"column table in row order", `{"0":{"10":` + resultB + `,"2":` + resultA + `}}`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keywordsOf(t, records))
		})
	}
}

func TestParse_EnvelopeFailedTaskKeepsKeyword(t *testing.T) {
	input := `{"tasks":[{"data":{"keyword":"lost"},"result":null},{"result":[` + resultA + `]}]}`

	records, err := Parse([]byte(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "lost", records[0].Keyword)
	assert.Nil(t, records[0].Payload)
}

func TestParse_ColumnTableSkipsEmptyExtraCells(t *testing.T) {
	input := `{"0":{"0":` + resultA + `,"1":` + resultB + `},"1":{"0":null,"1":null}}`

	records, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keywordsOf(t, records))
}

func TestParse_Unrecognized(t *testing.T) {
	for _, input := range []string{
		`{not json`,
		`"a string"`,
		`42`,
		`null`,
		`{}`,
		`{"foo":"bar"}`,
		`{"0":"not an object"}`,
	} {
		_, err := Parse([]byte(input))
		assert.ErrorIs(t, err, models.ErrUnrecognizedShape, input)
	}
}

func TestParse_PreservesPayloadBytes(t *testing.T) {
	records, err := Parse([]byte(`[{"keyword":"a","n":1.50}]`))
	require.NoError(t, err)
	assert.Equal(t, `{"keyword":"a","n":1.50}`, string(records[0].Payload))
}

func TestSaveAndLoad(t *testing.T) {
	records := []models.RawResultRecord{
		{Keyword: "a", Payload: json.RawMessage(`[` + resultA + `]`)},
		{Keyword: "failed"},
		{Keyword: "b", Payload: json.RawMessage(resultB)},
	}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, records))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "failed", "b"}, keywordsOf(t, loaded))
}

func TestSaveFileAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api-result.json")
	records := []models.RawResultRecord{{Keyword: "a", Payload: json.RawMessage(resultA)}}

	require.NoError(t, SaveFile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "["))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keywordsOf(t, loaded))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open record file")
}
