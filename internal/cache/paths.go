// Package cache owns the on-disk station database layout and the
// consolidation of the two station stores into the combined view.
package cache

import (
	"os"
	"path/filepath"

	"github.com/chanops/stationctl/internal/util"
)

// Manager locates the station database files under one data
// directory. At most one pipeline run may use a data directory at a
// time; concurrent runs against the same directory are undefined.
type Manager struct {
	dataDir string
	tokens  TokenStore
}

// New creates a Manager rooted at dataDir. tokens persists the
// freshness token between runs; it may be nil for read-only use where
// staleness is acceptable.
func New(dataDir string, tokens TokenStore) *Manager {
	return &Manager{dataDir: dataDir, tokens: tokens}
}

// BasePath is the distributed, read-only station snapshot.
func (m *Manager) BasePath() string {
	return filepath.Join(m.dataDir, "stations-base.json")
}

// UserPath is the locally grown, read-write station snapshot.
func (m *Manager) UserPath() string {
	return filepath.Join(m.dataDir, "stations-user.json")
}

// CombinedPath is the derived merge of base and user. Fully
// regenerable; safe to delete.
func (m *Manager) CombinedPath() string {
	return filepath.Join(m.dataDir, "stations-combined.json")
}

// ManifestPath is the coverage manifest distributed with the base
// store.
func (m *Manager) ManifestPath() string {
	return filepath.Join(m.dataDir, "coverage.json")
}

// MarketLedgerPath is the processed-market log.
func (m *Manager) MarketLedgerPath() string {
	return filepath.Join(m.dataDir, "markets.ndjson")
}

// LineupLedgerPath is the processed-lineup log.
func (m *Manager) LineupLedgerPath() string {
	return filepath.Join(m.dataDir, "lineups.ndjson")
}

// LineupMapPath is the lineup-to-market map.
func (m *Manager) LineupMapPath() string {
	return filepath.Join(m.dataDir, "lineup-markets.json")
}

// EnsureDir creates the data directory.
func (m *Manager) EnsureDir() error {
	return util.EnsureDir(m.dataDir)
}

// mtime returns the file's modification time in unix nanos, or zero
// when the file is missing.
func mtime(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.ModTime().UnixNano()
}
