package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chanops/stationctl/internal/cache"
	"github.com/chanops/stationctl/internal/station"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		page        int
		countOnly   bool
		full        bool
		country     string
		resolutions []string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search stations by name or call sign",
		Long: `Search the consolidated station database.

The term matches name and call sign case-insensitively by substring.
Configured resolution and country filters apply unless overridden for
this call with --resolution or --country.

Examples:
  stationctl search espn
  stationctl search "channel 4" --page 2
  stationctl search news --count
  stationctl search news --full --country GBR --resolution HDTV,UHDTV`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) > 0 {
				term = strings.TrimSpace(args[0])
			}
			if term == "" && country == "" && len(resolutions) == 0 {
				return fmt.Errorf("provide a search term or use --country/--resolution to filter")
			}

			mode := station.ModeTSV
			switch {
			case countOnly && full:
				return fmt.Errorf("--count and --full are mutually exclusive")
			case countOnly:
				mode = station.ModeCount
			case full:
				mode = station.ModeFull
			}

			for _, r := range resolutions {
				if !station.ValidQuality(strings.ToUpper(r)) {
					return fmt.Errorf("unknown resolution %q (SDTV, HDTV, UHDTV)", r)
				}
			}

			return runSearch(station.Query{
				Term:                term,
				Page:                page,
				Mode:                mode,
				OverrideCountry:     country,
				OverrideResolutions: resolutions,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Result page (10 rows per page)")
	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of matches")
	cmd.Flags().BoolVar(&full, "full", false, "Print the wider result shape")
	cmd.Flags().StringVar(&country, "country", "", "Override the configured country filter for this call")
	cmd.Flags().StringSliceVar(&resolutions, "resolution", nil, "Override the configured resolution filter for this call")

	return cmd
}

func runSearch(q station.Query) error {
	path, err := stores.Resolve()
	if err != nil {
		if errors.Is(err, cache.ErrNoStations) {
			return err
		}
		return fmt.Errorf("resolving station database: %w", err)
	}
	recs, err := station.Load(path)
	if err != nil {
		return err
	}

	res := station.Search(recs, searchConfig(), q)
	out, err := station.Render(res, q.Mode)
	if err != nil {
		return err
	}
	fmt.Print(out)

	if q.Mode != station.ModeCount && res.Total > len(res.Rows) {
		pages := (res.Total + station.PageSize - 1) / station.PageSize
		warn("%d matches across %d pages; use --page", res.Total, pages)
	}
	return nil
}

// searchConfig maps the persistent filter settings into the engine's
// explicit input.
func searchConfig() station.SearchConfig {
	return station.SearchConfig{
		FilterResolution: cfg.Filters.Resolution,
		Resolutions:      cfg.Filters.Resolutions,
		FilterCountry:    cfg.Filters.Country,
		Country:          cfg.Filters.CountryCode,
	}
}
