package recordSource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"AIOverview_Analysis/internal/models"
)

// Load reads a record file in any accepted layout and returns one record per keyword result
func Load(r io.Reader) ([]models.RawResultRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	return Parse(data)
}

// LoadFile opens path and loads it
func LoadFile(path string) ([]models.RawResultRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Parse splits an in-memory record file into records
func Parse(data []byte) ([]models.RawResultRecord, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnrecognizedShape, err)
	}

	kind, ok, err := detectShape(doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrUnrecognizedShape
	}

	switch kind {
	case shapeArray:
		return fromArray(data)
	case shapeEnvelope:
		return fromEnvelope(data)
	case shapeColumns:
		return fromColumns(data)
	default:
		return []models.RawResultRecord{{Payload: json.RawMessage(bytes.TrimSpace(data))}}, nil
	}
}

func fromArray(data []byte) ([]models.RawResultRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnrecognizedShape, err)
	}

	records := make([]models.RawResultRecord, 0, len(items))
	for _, item := range items {
		records = append(records, models.RawResultRecord{Payload: item})
	}
	return records, nil
}

func fromEnvelope(data []byte) ([]models.RawResultRecord, error) {
	var envelope struct {
		Tasks []struct {
			Data struct {
				Keyword string `json:"keyword"`
			} `json:"data"`
			Result []json.RawMessage `json:"result"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnrecognizedShape, err)
	}

	records := []models.RawResultRecord{}
	for _, task := range envelope.Tasks {
		if len(task.Result) == 0 {
			// failed task: keep the keyword so it is still counted
			records = append(records, models.RawResultRecord{Keyword: task.Data.Keyword})
			continue
		}
		for _, result := range task.Result {
			records = append(records, models.RawResultRecord{Payload: result})
		}
	}
	return records, nil
}

// fromColumns reads rows in numeric index order; extra columns of a row follow its first
func fromColumns(data []byte) ([]models.RawResultRecord, error) {
	var columns map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnrecognizedShape, err)
	}

	columnKeys := numericKeys(columns)
	rowSet := make(map[string]struct{})
	for _, column := range columns {
		for row := range column {
			rowSet[row] = struct{}{}
		}
	}
	rowKeys := numericKeys(rowSet)

	records := make([]models.RawResultRecord, 0, len(rowKeys))
	for _, row := range rowKeys {
		for i, col := range columnKeys {
			cell, ok := columns[col][row]
			if i > 0 && (!ok || isNull(cell)) {
				continue
			}
			records = append(records, models.RawResultRecord{Payload: cell})
		}
	}
	return records, nil
}

// Save writes records as a JSON array of payloads, the layout Load reads back.
// A record without payload is written as a bare keyword object so the keyword survives.
func Save(w io.Writer, records []models.RawResultRecord) error {
	items := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		if len(bytes.TrimSpace(record.Payload)) == 0 {
			placeholder, err := json.Marshal(map[string]string{"keyword": record.Keyword})
			if err != nil {
				return err
			}
			items = append(items, placeholder)
			continue
		}
		items = append(items, record.Payload)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// SaveFile writes records to path
func SaveFile(path string, records []models.RawResultRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create record file: %w", err)
	}
	if err := Save(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func numericKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
