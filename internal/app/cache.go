package app

import (
	"time"

	"github.com/chanops/stationctl/internal/ledger"
	"github.com/chanops/stationctl/internal/manifest"
	"github.com/chanops/stationctl/internal/pipeline"
	"github.com/spf13/cobra"
)

const timeRound = 10 * time.Millisecond

func newCacheCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Fetch station data for configured markets into the user store",
		Long: `Run the incremental caching pipeline over the configured markets.

Markets already covered by the distributed snapshot are skipped without
any network call, and markets recorded in the processing ledger from a
previous run are not refetched. The run can be interrupted between
units; the next run resumes at the first unprocessed market.

Examples:
  stationctl cache            Fetch anything not yet covered
  stationctl cache --force    Refetch every configured market`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCache(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Refetch markets and lineups already processed or covered")
	return cmd
}

func runCache(force bool) error {
	if err := stores.EnsureDir(); err != nil {
		return err
	}

	mf, err := manifest.Load(stores.ManifestPath())
	if err != nil {
		return err
	}
	if manifest.StaleAgainst(stores.ManifestPath(), stores.BasePath()) {
		warn("coverage manifest is older than the base store; covered markets may be refetched")
	}

	led, err := ledger.Open(stores.MarketLedgerPath(), stores.LineupLedgerPath(), stores.LineupMapPath())
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Guide:    client,
		Ledger:   led,
		Manifest: mf,
		Stores:   stores,
		Enrich:   cfg.Guide.Enrich,
		Log:      warn,
	}

	sum, err := p.Run(cfg.Markets, force)
	if err != nil {
		return err
	}

	header("Caching run complete (%s)", sum.Elapsed.Round(timeRound))
	ok("markets: %d processed, %d covered by snapshot, %d already done",
		sum.MarketsProcessed, sum.MarketsSkippedCovered, sum.MarketsSkippedProcessed)
	ok("lineups: %d discovered, %d fetched, %d already done",
		sum.LineupsDiscovered, sum.LineupsFetched, sum.LineupsSkipped)
	ok("stations: %d fetched, %d after dedup", sum.StationsFetched, sum.StationsAdded)
	if cfg.Guide.Enrich {
		ok("enriched: %d", sum.Enriched)
	}
	return nil
}
