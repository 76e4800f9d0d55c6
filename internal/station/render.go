package station

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jszwec/csvutil"
)

// tsvRow is the flat shape emitted in tsv mode.
type tsvRow struct {
	StationID string `csv:"stationId"`
	Name      string `csv:"name"`
	CallSign  string `csv:"callSign"`
	Country   string `csv:"country"`
}

// fullRow is the wider shape emitted in full mode.
type fullRow struct {
	Name         string `csv:"name"`
	CallSign     string `csv:"callSign"`
	VideoQuality string `csv:"videoQuality"`
	StationID    string `csv:"stationId"`
	Country      string `csv:"country"`
}

// Render formats a result page for the given mode. Count mode renders
// the total as a bare integer; tsv and full render tab-separated rows
// with a header line.
func Render(res Results, mode Mode) (string, error) {
	if mode == ModeCount {
		return fmt.Sprintf("%d\n", res.Total), nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	enc := csvutil.NewEncoder(w)

	for _, r := range res.Rows {
		var row any
		switch mode {
		case ModeFull:
			row = fullRow{
				Name:         r.Name,
				CallSign:     r.CallSign,
				VideoQuality: r.VideoQuality,
				StationID:    r.StationID,
				Country:      r.Country,
			}
		default:
			row = tsvRow{
				StationID: r.StationID,
				Name:      r.Name,
				CallSign:  r.CallSign,
				Country:   r.Country,
			}
		}
		if err := enc.Encode(row); err != nil {
			return "", fmt.Errorf("encoding result row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing result rows: %w", err)
	}
	return buf.String(), nil
}
