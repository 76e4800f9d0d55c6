// Package ledger tracks which markets and lineups the caching
// pipeline has already processed, so interrupted runs resume from the
// next unprocessed unit instead of starting over.
package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/chanops/stationctl/internal/config"
	"github.com/chanops/stationctl/internal/util"
)

// MarketEntry records one processed market.
type MarketEntry struct {
	Country      string    `json:"country"`
	PostalCode   string    `json:"postalCode"`
	Timestamp    time.Time `json:"timestamp"`
	LineupsFound int       `json:"lineupsFound"`
}

// LineupEntry records one processed lineup.
type LineupEntry struct {
	LineupID      string    `json:"lineupId"`
	Timestamp     time.Time `json:"timestamp"`
	StationsFound int       `json:"stationsFound"`
}

// Ledger is the durable processing record. Entries live in keyed maps
// in memory and are rewritten to disk on every record call, so a crash
// between units loses at most the in-flight unit. Re-recording a key
// replaces the prior entry: reprocessing must not grow the files or
// leave two answers for one key.
type Ledger struct {
	marketPath string
	lineupPath string
	mapPath    string

	markets map[string]MarketEntry
	lineups map[string]LineupEntry
	origins map[string]config.Market
}

// Open loads (or creates) the ledger files.
func Open(marketPath, lineupPath, mapPath string) (*Ledger, error) {
	l := &Ledger{
		marketPath: marketPath,
		lineupPath: lineupPath,
		mapPath:    mapPath,
		markets:    make(map[string]MarketEntry),
		lineups:    make(map[string]LineupEntry),
		origins:    make(map[string]config.Market),
	}

	if err := readLines(marketPath, func(line []byte) {
		var e MarketEntry
		if json.Unmarshal(line, &e) == nil && e.Country != "" {
			l.markets[config.NewMarket(e.Country, e.PostalCode).Key()] = e
		}
	}); err != nil {
		return nil, err
	}

	if err := readLines(lineupPath, func(line []byte) {
		var e LineupEntry
		if json.Unmarshal(line, &e) == nil && e.LineupID != "" {
			l.lineups[e.LineupID] = e
		}
	}); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mapPath)
	if err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &l.origins); err != nil {
			return nil, fmt.Errorf("parsing lineup map: %w", err)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading lineup map: %w", err)
	}

	return l, nil
}

// RecordMarket upserts the market's entry and flushes the market log.
func (l *Ledger) RecordMarket(m config.Market, lineupsFound int) error {
	m = m.Normalize()
	l.markets[m.Key()] = MarketEntry{
		Country:      m.Country,
		PostalCode:   m.PostalCode,
		Timestamp:    time.Now().UTC(),
		LineupsFound: lineupsFound,
	}
	return l.flushMarkets()
}

// RecordLineup upserts the lineup's entry, remembers which market it
// came from, and flushes both the lineup log and the lineup map.
func (l *Ledger) RecordLineup(lineupID string, origin config.Market, stationsFound int) error {
	l.lineups[lineupID] = LineupEntry{
		LineupID:      lineupID,
		Timestamp:     time.Now().UTC(),
		StationsFound: stationsFound,
	}
	l.origins[lineupID] = origin.Normalize()
	if err := l.flushLineups(); err != nil {
		return err
	}
	return l.flushOrigins()
}

// MarketProcessed reports whether the market has a ledger entry.
func (l *Ledger) MarketProcessed(m config.Market) bool {
	_, ok := l.markets[m.Normalize().Key()]
	return ok
}

// LineupProcessed reports whether the lineup has a ledger entry.
func (l *Ledger) LineupProcessed(lineupID string) bool {
	_, ok := l.lineups[lineupID]
	return ok
}

// MarketFor returns the market a lineup's stations were tagged with.
func (l *Ledger) MarketFor(lineupID string) (config.Market, bool) {
	m, ok := l.origins[lineupID]
	return m, ok
}

// Unprocessed returns the configured markets without a ledger entry,
// in input order, with duplicates removed.
func (l *Ledger) Unprocessed(markets []config.Market) []config.Market {
	seen := make(map[string]struct{}, len(markets))
	var out []config.Market
	for _, m := range markets {
		m = m.Normalize()
		if _, dup := seen[m.Key()]; dup {
			continue
		}
		seen[m.Key()] = struct{}{}
		if !l.MarketProcessed(m) {
			out = append(out, m)
		}
	}
	return out
}

// Markets returns all market entries sorted by key.
func (l *Ledger) Markets() []MarketEntry {
	keys := sortedKeys(l.markets)
	out := make([]MarketEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, l.markets[k])
	}
	return out
}

// Lineups returns all lineup entries sorted by lineup ID.
func (l *Ledger) Lineups() []LineupEntry {
	keys := sortedKeys(l.lineups)
	out := make([]LineupEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, l.lineups[k])
	}
	return out
}

func (l *Ledger) flushMarkets() error {
	return writeLines(l.marketPath, sortedKeys(l.markets), func(k string) any {
		return l.markets[k]
	})
}

func (l *Ledger) flushLineups() error {
	return writeLines(l.lineupPath, sortedKeys(l.lineups), func(k string) any {
		return l.lineups[k]
	})
}

func (l *Ledger) flushOrigins() error {
	data, err := json.MarshalIndent(l.origins, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding lineup map: %w", err)
	}
	return util.AtomicWriteFile(l.mapPath, append(data, '\n'), 0644)
}

func readLines(path string, fn func(line []byte)) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		fn(sc.Bytes())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	return nil
}

func writeLines[T any](path string, keys []string, get func(string) T) error {
	var buf []byte
	for _, k := range keys {
		line, err := json.Marshal(get(k))
		if err != nil {
			return fmt.Errorf("encoding ledger entry: %w", err)
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return util.AtomicWriteFile(path, buf, 0644)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
