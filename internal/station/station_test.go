package station_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chanops/stationctl/internal/station"
)

var sampleJSON = []byte(`[
  {
    "stationId": "10001",
    "name": "Alpha",
    "callSign": "ALPH",
    "country": "USA",
    "videoQuality": "HDTV",
    "source": "base"
  },
  {
    "stationId": "10002",
    "callSign": "BETA",
    "country": "GBR"
  }
]`)

// --- Parse / Load / Save ---

func TestParse_ValidJSON(t *testing.T) {
	recs, err := station.Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].StationID != "10001" {
		t.Errorf("recs[0].StationID = %q, want %q", recs[0].StationID, "10001")
	}
	if recs[1].Name != "" {
		t.Errorf("recs[1].Name = %q, want empty", recs[1].Name)
	}
}

func TestParse_Empty(t *testing.T) {
	recs, err := station.Parse(nil)
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected 0 records, got %d", len(recs))
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := station.Parse([]byte("{not json")); err == nil {
		t.Error("Parse should fail on malformed input")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	recs, err := station.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty store, got %d records", len(recs))
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	want, _ := station.Parse(sampleJSON)
	if err := station.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := station.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("round trip: got %d records, want %d", len(got), len(want))
	}
	if got[0] != want[0] {
		t.Errorf("round trip record mismatch: %+v != %+v", got[0], want[0])
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	if err := station.Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Save")
	}
}

// --- Fill / Patch ---

func TestFill_DefaultsCountry(t *testing.T) {
	r := station.Record{StationID: "1"}
	r.Fill()
	if r.Country != station.CountryUnknown {
		t.Errorf("Country = %q, want %q", r.Country, station.CountryUnknown)
	}
}

func TestFill_KeepsCountry(t *testing.T) {
	r := station.Record{StationID: "1", Country: "CAN"}
	r.Fill()
	if r.Country != "CAN" {
		t.Errorf("Country = %q, want CAN", r.Country)
	}
}

func TestPatch_NewFieldsWin(t *testing.T) {
	r := station.Record{StationID: "1", CallSign: "ALPH", Country: "USA"}
	r.Patch(station.Record{Name: "Alpha", VideoQuality: station.QualityHD})
	if r.Name != "Alpha" {
		t.Errorf("Name = %q, want Alpha", r.Name)
	}
	if r.VideoQuality != station.QualityHD {
		t.Errorf("VideoQuality = %q, want HDTV", r.VideoQuality)
	}
}

func TestPatch_OmittedFieldsSurvive(t *testing.T) {
	r := station.Record{StationID: "1", CallSign: "ALPH", Network: "PBS"}
	r.Patch(station.Record{Name: "Alpha"})
	if r.CallSign != "ALPH" {
		t.Errorf("CallSign erased: %q", r.CallSign)
	}
	if r.Network != "PBS" {
		t.Errorf("Network erased: %q", r.Network)
	}
}

func TestPatch_NeverChangesStationID(t *testing.T) {
	r := station.Record{StationID: "1"}
	r.Patch(station.Record{StationID: "2", Name: "Other"})
	if r.StationID != "1" {
		t.Errorf("StationID = %q, want 1", r.StationID)
	}
}

// --- Dedupe / SortByName / Merge ---

func TestDedupe_LongestNameWins(t *testing.T) {
	recs := []station.Record{
		{StationID: "1", Name: "Alpha"},
		{StationID: "1", Name: "Alpha HD East"},
		{StationID: "1", Name: "Alpha HD"},
		{StationID: "2", Name: "Beta"},
	}
	out := station.Dedupe(recs)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Name != "Alpha HD East" {
		t.Errorf("kept name %q, want longest", out[0].Name)
	}
}

func TestDedupe_NoDuplicateIDs(t *testing.T) {
	recs := []station.Record{
		{StationID: "1"}, {StationID: "2"}, {StationID: "1"}, {StationID: "3"}, {StationID: "2"},
	}
	out := station.Dedupe(recs)
	seen := map[string]bool{}
	for _, r := range out {
		if seen[r.StationID] {
			t.Fatalf("duplicate station ID %q after Dedupe", r.StationID)
		}
		seen[r.StationID] = true
	}
	if len(out) != 3 {
		t.Errorf("expected 3 records, got %d", len(out))
	}
}

func TestSortByName_EmptyFirst(t *testing.T) {
	recs := []station.Record{
		{StationID: "1", Name: "Zulu"},
		{StationID: "2"},
		{StationID: "3", Name: "Alpha"},
	}
	station.SortByName(recs)
	if recs[0].StationID != "2" {
		t.Errorf("empty name should sort first, got %q", recs[0].Name)
	}
	if recs[1].Name != "Alpha" || recs[2].Name != "Zulu" {
		t.Errorf("order = %q, %q", recs[1].Name, recs[2].Name)
	}
}

func TestMerge_IncomingOverrides(t *testing.T) {
	existing := []station.Record{{StationID: "1", Name: "Alpha", Country: "USA"}}
	incoming := []station.Record{{StationID: "1", Name: "A", Country: "CAN"}}
	out := station.Merge(existing, incoming)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	// The incoming batch wins even with a shorter name.
	if out[0].Name != "A" || out[0].Country != "CAN" {
		t.Errorf("merged record = %+v, want incoming variant", out[0])
	}
}

func TestMerge_UnionSorted(t *testing.T) {
	existing := []station.Record{{StationID: "1", Name: "Zulu"}}
	incoming := []station.Record{{StationID: "2", Name: "Alpha"}}
	out := station.Merge(existing, incoming)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Name != "Alpha" {
		t.Errorf("merge result not sorted by name: %q first", out[0].Name)
	}
}
