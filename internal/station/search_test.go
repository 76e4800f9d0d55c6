package station_test

import (
	"strings"
	"testing"

	"github.com/chanops/stationctl/internal/station"
)

func fixture() []station.Record {
	return []station.Record{
		{StationID: "1", Name: "Alpha News", CallSign: "ALPH", Country: "USA", VideoQuality: station.QualityHD},
		{StationID: "2", Name: "Alpha Sports", CallSign: "ALSP", Country: "USA", VideoQuality: station.QualitySD},
		{StationID: "3", Name: "Gamma Alpha", CallSign: "GAMA", Country: "GBR", VideoQuality: station.QualityUHD},
		{StationID: "4", Name: "Beta", CallSign: "BETA", Country: "GBR", VideoQuality: station.QualityHD},
		{StationID: "5", Name: "Delta", CallSign: "alphaD", Country: "CAN"},
	}
}

func TestSearch_TermSubstring(t *testing.T) {
	res := station.Search(fixture(), station.SearchConfig{}, station.Query{Term: "alpha", Mode: station.ModeCount})
	// Matches names 1-3 and call sign of 5.
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
}

func TestSearch_TermMatchesCallSign(t *testing.T) {
	res := station.Search(fixture(), station.SearchConfig{}, station.Query{Term: "beta", Mode: station.ModeCount})
	if res.Total != 1 {
		t.Errorf("Total = %d, want 1", res.Total)
	}
}

func TestSearch_EmptyTermMatchesAll(t *testing.T) {
	res := station.Search(fixture(), station.SearchConfig{}, station.Query{Mode: station.ModeCount})
	if res.Total != 5 {
		t.Errorf("Total = %d, want 5", res.Total)
	}
}

func TestSearch_ConfiguredResolutionFilter(t *testing.T) {
	cfg := station.SearchConfig{FilterResolution: true, Resolutions: []string{station.QualityHD}}
	res := station.Search(fixture(), cfg, station.Query{Mode: station.ModeCount})
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2 HDTV records", res.Total)
	}
}

func TestSearch_ResolutionFilterExcludesAbsentQuality(t *testing.T) {
	cfg := station.SearchConfig{FilterResolution: true, Resolutions: []string{station.QualityHD, station.QualitySD, station.QualityUHD}}
	res := station.Search(fixture(), cfg, station.Query{Mode: station.ModeCount})
	// Record 5 has no videoQuality and must not pass an enabled filter.
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
}

func TestSearch_OverrideReplacesConfiguredResolutions(t *testing.T) {
	cfg := station.SearchConfig{FilterResolution: true, Resolutions: []string{station.QualityHD}}
	res := station.Search(fixture(), cfg, station.Query{
		Mode:                station.ModeCount,
		OverrideResolutions: []string{station.QualityUHD},
	})
	if res.Total != 1 {
		t.Errorf("Total = %d, want 1 UHDTV record", res.Total)
	}
}

func TestSearch_CountryOverride(t *testing.T) {
	cfg := station.SearchConfig{FilterCountry: true, Country: "USA"}
	res := station.Search(fixture(), cfg, station.Query{Mode: station.ModeCount, OverrideCountry: "gbr"})
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2 GBR records", res.Total)
	}
}

func TestSearch_PagePastEnd(t *testing.T) {
	res := station.Search(fixture(), station.SearchConfig{}, station.Query{Term: "alpha", Page: 9, Mode: station.ModeTSV})
	if len(res.Rows) != 0 {
		t.Errorf("expected empty page, got %d rows", len(res.Rows))
	}
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4 even for an empty page", res.Total)
	}
}

// Summing page sizes across all pages must equal the count result.
func TestSearch_CountAgreesWithPages(t *testing.T) {
	var recs []station.Record
	for i := 0; i < 27; i++ {
		recs = append(recs, station.Record{
			StationID: string(rune('a' + i)),
			Name:      "Station " + strings.Repeat("x", i+1),
		})
	}

	count := station.Search(recs, station.SearchConfig{}, station.Query{Term: "station", Mode: station.ModeCount}).Total

	total := 0
	for page := 1; ; page++ {
		res := station.Search(recs, station.SearchConfig{}, station.Query{Term: "station", Page: page, Mode: station.ModeTSV})
		if len(res.Rows) == 0 {
			break
		}
		total += len(res.Rows)
	}
	if total != count {
		t.Errorf("sum of pages = %d, count = %d", total, count)
	}
}

func TestByID(t *testing.T) {
	recs := fixture()
	if r := station.ByID(recs, "3"); r == nil || r.Name != "Gamma Alpha" {
		t.Errorf("ByID(3) = %+v", r)
	}
	if r := station.ByID(recs, "nope"); r != nil {
		t.Errorf("ByID(nope) = %+v, want nil", r)
	}
}

func TestRender_CountMode(t *testing.T) {
	out, err := station.Render(station.Results{Total: 3}, station.ModeCount)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "3\n" {
		t.Errorf("Render count = %q, want %q", out, "3\n")
	}
}

func TestRender_TSVShape(t *testing.T) {
	res := station.Search(fixture(), station.SearchConfig{}, station.Query{Term: "beta", Page: 1, Mode: station.ModeTSV})
	out, err := station.Render(res, station.ModeTSV)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "stationId\tname\tcallSign\tcountry" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "4\tBeta\tBETA\tGBR" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRender_FullShape(t *testing.T) {
	res := station.Results{Rows: []station.Record{
		{StationID: "1", Name: "Alpha News", CallSign: "ALPH", Country: "USA", VideoQuality: station.QualityHD},
	}, Total: 1}
	out, err := station.Render(res, station.ModeFull)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "name\tcallSign\tvideoQuality\tstationId\tcountry" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Alpha News\tALPH\tHDTV\t1\tUSA" {
		t.Errorf("row = %q", lines[1])
	}
}
