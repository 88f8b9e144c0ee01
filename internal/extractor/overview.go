package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"AIOverview_Analysis/internal/models"
)

// Key path of the AI Overview block inside a DataForSEO organic result:
// result.items[type == "ai_overview"] -> references[] and items[].{title,text}
const (
	keywordKey    = "keyword"
	itemsKey      = "items"
	typeKey       = "type"
	referencesKey = "references"
	titleKey      = "title"
	textKey       = "text"
	markdownKey   = "markdown"

	overviewItemType = "ai_overview"
)

// Extractor implements the Service interface
type Extractor struct{}

// NewExtractor creates a new AI Overview extractor
func NewExtractor() Service {
	return newExtractor()
}

// newExtractor creates the concrete implementation
func newExtractor() *Extractor {
	return &Extractor{}
}

// Extract locates the AI Overview of a result record.
// A missing or malformed overview block is not an error; only an undecodable record is.
func (e *Extractor) Extract(record models.RawResultRecord) (*models.OverviewRecord, error) {
	result, err := decodeResult(record.Payload)
	if err != nil {
		return nil, err
	}

	keyword := strings.TrimSpace(record.Keyword)
	if keyword == "" {
		keyword = strings.TrimSpace(stringField(result, keywordKey))
	}

	extracted := &models.OverviewRecord{Keyword: keyword}

	block := findOverview(result)
	if block == nil {
		return extracted, nil
	}

	extracted.Overview = &models.Overview{
		References:    IndexCitations(collectReferences(block)),
		NarrativeText: narrativeText(block),
	}

	return extracted, nil
}

// decodeResult decodes a payload into the result object.
// The provider wraps results in a one-element array, so the first object of an array is used.
func decodeResult(payload json.RawMessage) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", models.ErrMalformedRecord)
	}

	var decoded interface{}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedRecord, err)
	}

	switch v := decoded.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		for _, element := range v {
			if obj, ok := element.(map[string]interface{}); ok {
				return obj, nil
			}
		}
		return nil, fmt.Errorf("%w: result array holds no result object", models.ErrMalformedRecord)
	default:
		return nil, fmt.Errorf("%w: unexpected payload type %T", models.ErrMalformedRecord, decoded)
	}
}

// findOverview returns the first ai_overview item of the result, or nil
func findOverview(result map[string]interface{}) map[string]interface{} {
	for _, item := range objectList(result[itemsKey]) {
		if stringField(item, typeKey) == overviewItemType {
			return item
		}
	}
	return nil
}

// collectReferences returns the overview's source list.
// Element-level references are used only when the block has no top-level list.
func collectReferences(block map[string]interface{}) []map[string]interface{} {
	refs := objectList(block[referencesKey])
	if len(refs) > 0 {
		return refs
	}

	for _, element := range objectList(block[itemsKey]) {
		refs = append(refs, objectList(element[referencesKey])...)
	}
	return refs
}

// narrativeText joins every text-bearing segment of the overview with a single space
func narrativeText(block map[string]interface{}) string {
	var segments []string
	for _, element := range objectList(block[itemsKey]) {
		segments = appendSegment(segments, stringField(element, titleKey))
		segments = appendSegment(segments, stringField(element, textKey))
	}

	if len(segments) == 0 {
		segments = appendSegment(segments, stringField(block, textKey))
	}
	if len(segments) == 0 {
		segments = appendSegment(segments, stringField(block, markdownKey))
	}

	return strings.Join(segments, " ")
}

func appendSegment(segments []string, segment string) []string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return segments
	}
	return append(segments, segment)
}

// objectList returns the object elements of a JSON array, skipping anything else
func objectList(value interface{}) []map[string]interface{} {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}

	objects := make([]map[string]interface{}, 0, len(list))
	for _, element := range list {
		if obj, ok := element.(map[string]interface{}); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

func stringField(obj map[string]interface{}, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
