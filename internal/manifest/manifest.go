// Package manifest reads the coverage manifest distributed alongside
// the base station store. The manifest is read-only at runtime; it is
// produced out-of-band when the base store is built.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chanops/stationctl/internal/config"
)

// Manifest lists the markets (and optionally lineups) already
// represented in the base store.
type Manifest struct {
	GeneratedAt string      `json:"generatedAt,omitempty"`
	Markets     []MarketRef `json:"markets"`
	Lineups     []string    `json:"lineups,omitempty"`
	Stats       Stats       `json:"stats,omitempty"`
}

// MarketRef is one covered (country, zip) pair.
type MarketRef struct {
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Stats carries summary counts written by the manifest producer.
type Stats struct {
	Stations int `json:"stations,omitempty"`
	Lineups  int `json:"lineups,omitempty"`
}

// Load reads a manifest file. A missing file means nothing is covered,
// not an error.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Covers reports whether the market is represented in the base store.
func (m *Manifest) Covers(mk config.Market) bool {
	mk = mk.Normalize()
	for _, ref := range m.Markets {
		if strings.EqualFold(ref.Country, mk.Country) &&
			config.NormalizePostal(ref.Zip) == mk.PostalCode {
			return true
		}
	}
	return false
}

// HasLineup reports whether the lineup ID is listed in the manifest.
func (m *Manifest) HasLineup(lineupID string) bool {
	for _, id := range m.Lineups {
		if id == lineupID {
			return true
		}
	}
	return false
}

// Countries returns the sorted set of covered country codes.
func (m *Manifest) Countries() []string {
	seen := make(map[string]struct{}, len(m.Markets))
	var out []string
	for _, ref := range m.Markets {
		c := strings.ToUpper(ref.Country)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// StaleAgainst reports whether the manifest file is older than the
// base store file. A stale manifest only makes skip decisions
// conservative — reprocessing a covered market is safe because the
// downstream dedup repairs duplication — so callers surface this as a
// warning, never an error.
func StaleAgainst(manifestPath, basePath string) bool {
	mi, err := os.Stat(manifestPath)
	if err != nil {
		return false
	}
	bi, err := os.Stat(basePath)
	if err != nil {
		return false
	}
	return mi.ModTime().Before(bi.ModTime())
}
