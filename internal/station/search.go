package station

import "strings"

// PageSize is the fixed number of rows per result page.
const PageSize = 10

// Mode selects the output shape of a search.
type Mode string

const (
	ModeCount Mode = "count"
	ModeTSV   Mode = "tsv"
	ModeFull  Mode = "full"
)

// SearchConfig holds the operator's persistent filter settings. It is
// passed explicitly so the engine is pure given its inputs.
type SearchConfig struct {
	FilterResolution bool
	Resolutions      []string
	FilterCountry    bool
	Country          string
}

// Query is a single search invocation. Override fields, when set,
// replace the corresponding configured filter for this call only.
type Query struct {
	Term                string
	Page                int
	Mode                Mode
	OverrideCountry     string
	OverrideResolutions []string
}

// Results is the outcome of a search. Rows is the requested page and
// is empty in count mode; Total is always the full match count.
type Results struct {
	Total int
	Rows  []Record
}

// Search runs q against recs. A page past the end yields zero rows.
func Search(recs []Record, cfg SearchConfig, q Query) Results {
	var matched []Record
	for _, r := range recs {
		if !matchesTerm(r, q.Term) {
			continue
		}
		if !passesResolution(r, cfg, q.OverrideResolutions) {
			continue
		}
		if !passesCountry(r, cfg, q.OverrideCountry) {
			continue
		}
		matched = append(matched, r)
	}

	res := Results{Total: len(matched)}
	if q.Mode == ModeCount {
		return res
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(matched) {
		return res
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}
	res.Rows = matched[start:end]
	return res
}

// ByID returns the record with the given station ID, or nil. The
// channel-manager integration uses this to patch channel metadata from
// a matched record.
func ByID(recs []Record, id string) *Record {
	for i := range recs {
		if recs[i].StationID == id {
			return &recs[i]
		}
	}
	return nil
}

// matchesTerm reports whether a record matches the search term: a
// case-insensitive substring of name or call sign, or an exact match
// against either. An empty term matches everything.
func matchesTerm(r Record, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(r.Name), t) {
		return true
	}
	if strings.Contains(strings.ToLower(r.CallSign), t) {
		return true
	}
	return r.Name == term || r.CallSign == term
}

func passesResolution(r Record, cfg SearchConfig, override []string) bool {
	enabled := override
	if len(enabled) == 0 {
		if !cfg.FilterResolution {
			return true
		}
		enabled = cfg.Resolutions
	}
	for _, q := range enabled {
		if strings.EqualFold(r.VideoQuality, q) {
			return true
		}
	}
	return false
}

func passesCountry(r Record, cfg SearchConfig, override string) bool {
	want := override
	if want == "" {
		if !cfg.FilterCountry || cfg.Country == "" {
			return true
		}
		want = cfg.Country
	}
	return strings.EqualFold(r.Country, want)
}
