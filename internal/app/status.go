package app

import (
	"errors"
	"fmt"

	"github.com/chanops/stationctl/internal/cache"
	"github.com/chanops/stationctl/internal/ledger"
	"github.com/chanops/stationctl/internal/manifest"
	"github.com/chanops/stationctl/internal/station"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show station database and coverage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	base, err := station.Load(stores.BasePath())
	if err != nil {
		return err
	}
	user, err := station.Load(stores.UserPath())
	if err != nil {
		return err
	}

	header("Stores (%s)", cfg.Data.Dir)
	fmt.Printf("  base:     %d stations\n", len(base))
	fmt.Printf("  user:     %d stations\n", len(user))

	switch path, err := stores.Resolve(); {
	case errors.Is(err, cache.ErrNoStations):
		warn("no station data yet — run 'stationctl cache'")
	case err != nil:
		return err
	default:
		combined, err := station.Load(path)
		if err != nil {
			return err
		}
		fmt.Printf("  combined: %d stations (%s)\n", len(combined), path)
	}

	mf, err := manifest.Load(stores.ManifestPath())
	if err != nil {
		return err
	}
	header("Coverage manifest")
	fmt.Printf("  markets:   %d\n", len(mf.Markets))
	fmt.Printf("  countries: %v\n", mf.Countries())
	if manifest.StaleAgainst(stores.ManifestPath(), stores.BasePath()) {
		warn("manifest is older than the base store")
	}

	led, err := ledger.Open(stores.MarketLedgerPath(), stores.LineupLedgerPath(), stores.LineupMapPath())
	if err != nil {
		return err
	}
	header("Processing ledger")
	fmt.Printf("  markets processed: %d\n", len(led.Markets()))
	fmt.Printf("  lineups processed: %d\n", len(led.Lineups()))

	pending := led.Unprocessed(cfg.Markets)
	if len(pending) > 0 {
		warn("%d configured market(s) not yet processed", len(pending))
	} else if len(cfg.Markets) > 0 {
		ok("all %d configured markets processed", len(cfg.Markets))
	}
	return nil
}
