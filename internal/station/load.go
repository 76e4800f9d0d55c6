package station

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a station store file from disk. A missing file is an
// empty store, not an error.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of records.
func Parse(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return []Record{}, nil
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing store JSON: %w", err)
	}
	if recs == nil {
		return []Record{}, nil
	}
	return recs, nil
}
