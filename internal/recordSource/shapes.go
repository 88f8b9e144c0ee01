package recordSource

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// shape names an accepted record file layout
type shape string

const (
	shapeArray    shape = "array"
	shapeEnvelope shape = "envelope"
	shapeColumns  shape = "columns"
	shapeResult   shape = "result"
)

// Checked in order; the first matching schema wins
var shapeSchemas = []struct {
	shape  shape
	schema map[string]interface{}
}{
	{shapeArray, map[string]interface{}{
		"type": "array",
	}},
	{shapeEnvelope, map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"tasks"},
		"properties": map[string]interface{}{
			"tasks": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "object"},
			},
		},
	}},
	// pandas DataFrame.to_json default: {"<column>": {"<row>": cell}}
	{shapeColumns, map[string]interface{}{
		"type":          "object",
		"minProperties": 1,
		"patternProperties": map[string]interface{}{
			"^[0-9]+$": map[string]interface{}{
				"type":                 "object",
				"patternProperties":    map[string]interface{}{"^[0-9]+$": map[string]interface{}{}},
				"additionalProperties": false,
			},
		},
		"additionalProperties": false,
	}},
	{shapeResult, map[string]interface{}{
		"type": "object",
		"anyOf": []interface{}{
			map[string]interface{}{"required": []interface{}{"items"}},
			map[string]interface{}{"required": []interface{}{"keyword"}},
		},
	}},
}

// detectShape validates doc against each shape schema
func detectShape(doc interface{}) (shape, bool, error) {
	documentLoader := gojsonschema.NewGoLoader(doc)

	for _, candidate := range shapeSchemas {
		schemaLoader := gojsonschema.NewGoLoader(candidate.schema)

		result, err := gojsonschema.Validate(schemaLoader, documentLoader)
		if err != nil {
			return "", false, fmt.Errorf("validation error: %w", err)
		}
		if result.Valid() {
			return candidate.shape, true, nil
		}
	}

	return "", false, nil
}
