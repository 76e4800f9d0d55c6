// Package pipeline implements the incremental caching run: configured
// markets in, deduplicated station records merged into the user store
// out. Progress is committed to the processing ledger after every
// market and lineup, so an interrupted run resumes where it stopped.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chanops/stationctl/internal/cache"
	"github.com/chanops/stationctl/internal/config"
	"github.com/chanops/stationctl/internal/guide"
	"github.com/chanops/stationctl/internal/ledger"
	"github.com/chanops/stationctl/internal/manifest"
	"github.com/chanops/stationctl/internal/station"
)

// ErrNoMarkets is returned when the run has nothing to do. This is the
// only condition that refuses to start; per-unit failures never abort.
var ErrNoMarkets = errors.New("no markets configured — add one with 'stationctl markets add'")

// Pipeline wires the collaborators of one caching run. Log, when set,
// receives per-unit warnings; the core never prints on its own.
type Pipeline struct {
	Guide    *guide.Client
	Ledger   *ledger.Ledger
	Manifest *manifest.Manifest
	Stores   *cache.Manager
	Enrich   bool
	Log      func(format string, a ...any)
}

// Summary reports what one run did.
type Summary struct {
	MarketsProcessed        int
	MarketsSkippedCovered   int
	MarketsSkippedProcessed int
	LineupsDiscovered       int
	LineupsFetched          int
	LineupsSkipped          int
	StationsFetched         int
	StationsAdded           int
	Enriched                int
	Elapsed                 time.Duration
}

// Run executes the caching pipeline over the configured markets. With
// force set, manifest coverage and prior ledger entries are ignored
// and every unit is refetched. Network and parse failures at a single
// market or lineup yield zero results for that unit and the run
// continues; only a ledger or store write failure aborts, leaving all
// previously committed progress intact.
func (p *Pipeline) Run(markets []config.Market, force bool) (*Summary, error) {
	start := time.Now()
	sum := &Summary{}

	if len(markets) == 0 {
		return sum, ErrNoMarkets
	}

	// Phase 1: market resolution. Discover lineups per market, or skip
	// without any network call when the manifest already covers it.
	discovered := make(map[string][]guide.Lineup) // market key → raw response
	byMarket := make(map[string]config.Market)
	var order []string
	seen := make(map[string]struct{}, len(markets))

	for _, m := range markets {
		m = m.Normalize()
		if _, dup := seen[m.Key()]; dup {
			continue
		}
		seen[m.Key()] = struct{}{}

		if !force && p.Ledger.MarketProcessed(m) {
			sum.MarketsSkippedProcessed++
			continue
		}
		if !force && p.Manifest != nil && p.Manifest.Covers(m) {
			if err := p.Ledger.RecordMarket(m, 0); err != nil {
				return sum, fmt.Errorf("recording market %s: %w", m.Key(), err)
			}
			sum.MarketsSkippedCovered++
			continue
		}

		lineups, err := p.Guide.Lineups(m.Country, m.PostalCode)
		if err != nil {
			p.logf("market %s: %v", m.Key(), err)
			lineups = nil
		}
		if err := p.Ledger.RecordMarket(m, len(lineups)); err != nil {
			return sum, fmt.Errorf("recording market %s: %w", m.Key(), err)
		}
		sum.MarketsProcessed++
		if len(lineups) > 0 {
			discovered[m.Key()] = lineups
			byMarket[m.Key()] = m
			order = append(order, m.Key())
		}
	}

	// Phase 2: lineup deduplication. Nearby markets frequently share
	// lineups; fetch each one once.
	var lineupIDs []string
	lineupSeen := make(map[string]struct{})
	for _, key := range order {
		for _, lu := range discovered[key] {
			if _, dup := lineupSeen[lu.LineupID]; dup {
				continue
			}
			lineupSeen[lu.LineupID] = struct{}{}
			lineupIDs = append(lineupIDs, lu.LineupID)
		}
	}
	sum.LineupsDiscovered = len(lineupIDs)

	// Phase 3: station fetch, with country tagging (phase 4) applied
	// as each lineup's records arrive.
	var batch []station.Record
	for _, id := range lineupIDs {
		if !force && p.Ledger.LineupProcessed(id) {
			sum.LineupsSkipped++
			continue
		}

		origin := p.originMarket(id, order, discovered, byMarket)

		recs, err := p.Guide.Stations(id)
		if err != nil {
			p.logf("lineup %s: %v", id, err)
			recs = nil
		}
		if err := p.Ledger.RecordLineup(id, origin, len(recs)); err != nil {
			return sum, fmt.Errorf("recording lineup %s: %w", id, err)
		}
		sum.LineupsFetched++
		sum.StationsFetched += len(recs)

		for i := range recs {
			recs[i].Country = origin.Country
			recs[i].Source = station.SourceUser
			recs[i].Fill()
		}
		batch = append(batch, recs...)
	}

	// Phase 5: station deduplication across all fetched lineups.
	batch = station.Dedupe(batch)
	station.SortByName(batch)
	sum.StationsAdded = len(batch)

	// Phase 6: optional enrichment of records that have a call sign
	// but no display name.
	if p.Enrich {
		sum.Enriched = p.enrich(batch)
	}

	if len(batch) == 0 {
		sum.Elapsed = time.Since(start)
		return sum, nil
	}

	// Phase 7: merge into the user store. The incoming batch overrides
	// existing user-store records with the same station ID.
	existing, err := station.Load(p.Stores.UserPath())
	if err != nil {
		return sum, err
	}
	merged := station.Merge(existing, batch)
	if err := p.Stores.EnsureDir(); err != nil {
		return sum, err
	}
	if err := station.Save(p.Stores.UserPath(), merged); err != nil {
		return sum, fmt.Errorf("saving user store: %w", err)
	}

	// Phase 8: the per-unit ledger records are already durable; only
	// the combined view's freshness token is left to invalidate.
	if err := p.Stores.Invalidate(); err != nil {
		return sum, fmt.Errorf("invalidating combined view: %w", err)
	}

	sum.Elapsed = time.Since(start)
	return sum, nil
}

// originMarket determines which market a lineup's stations should be
// tagged with: the first market whose discovery response listed the
// lineup, else a country inferred from the lineup ID. The inference is
// a best-effort fallback and never overrides a market match.
func (p *Pipeline) originMarket(lineupID string, order []string,
	discovered map[string][]guide.Lineup, byMarket map[string]config.Market) config.Market {

	for _, key := range order {
		for _, lu := range discovered[key] {
			if lu.LineupID == lineupID {
				return byMarket[key]
			}
		}
	}
	return config.Market{Country: CountryFromLineupID(lineupID)}
}

// CountryFromLineupID guesses a country code from IDs shaped like
// "USA-OTA10001-DFLT": the leading hyphen-delimited segment, when it
// is exactly three ASCII letters. Best effort only; it never overrides
// a market match.
func CountryFromLineupID(id string) string {
	seg, _, _ := strings.Cut(id, "-")
	if len(seg) != 3 {
		return station.CountryUnknown
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return station.CountryUnknown
		}
	}
	return strings.ToUpper(seg)
}

// enrich fills missing display names by call-sign lookup. Failures are
// skipped silently: a missing name is acceptable, a retry storm is
// not. Returns the number of records patched.
func (p *Pipeline) enrich(batch []station.Record) int {
	patched := 0
	for i := range batch {
		r := &batch[i]
		if r.CallSign == "" || r.Name != "" {
			continue
		}
		candidates, err := p.Guide.ByCallSign(r.CallSign)
		if err != nil {
			continue
		}
		if match, ok := pickCandidate(*r, candidates); ok {
			r.Patch(match)
			patched++
		}
	}
	return patched
}

// pickCandidate selects the enrichment response to apply: the record
// with the same station ID, else the first with a matching call sign.
func pickCandidate(r station.Record, candidates []station.Record) (station.Record, bool) {
	for _, c := range candidates {
		if c.StationID == r.StationID {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(c.CallSign, r.CallSign) {
			return c, true
		}
	}
	return station.Record{}, false
}

func (p *Pipeline) logf(format string, a ...any) {
	if p.Log != nil {
		p.Log(format, a...)
	}
}
