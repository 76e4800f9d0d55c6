package station

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/chanops/stationctl/internal/util"
)

// Marshal encodes a record list as indented JSON.
func Marshal(recs []Record) ([]byte, error) {
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding store: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the record list to path. The write is atomic: a temp
// file is renamed over the target so concurrent readers never see a
// partial store.
func Save(path string, recs []Record) error {
	data, err := Marshal(recs)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0644)
}

// SortByName orders records by display name. Records without a name
// sort first.
func SortByName(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Name < recs[j].Name
	})
}

// Dedupe collapses records sharing a station ID. Within a duplicate
// group the variant with the longest non-empty name wins, a proxy for
// the most complete record. Relative order of first appearance is
// kept.
func Dedupe(recs []Record) []Record {
	byID := make(map[string]int, len(recs))
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		i, seen := byID[r.StationID]
		if !seen {
			byID[r.StationID] = len(out)
			out = append(out, r)
			continue
		}
		if len(r.Name) > len(out[i].Name) {
			out[i] = r
		}
	}
	return out
}

// Merge unions incoming records into existing ones, keyed by station
// ID. An incoming record always replaces an existing record with the
// same ID. The result is sorted by name.
func Merge(existing, incoming []Record) []Record {
	byID := make(map[string]int, len(existing)+len(incoming))
	out := make([]Record, 0, len(existing)+len(incoming))
	for _, r := range existing {
		if i, ok := byID[r.StationID]; ok {
			out[i] = r
			continue
		}
		byID[r.StationID] = len(out)
		out = append(out, r)
	}
	for _, r := range incoming {
		if i, ok := byID[r.StationID]; ok {
			out[i] = r
			continue
		}
		byID[r.StationID] = len(out)
		out = append(out, r)
	}
	SortByName(out)
	return out
}
