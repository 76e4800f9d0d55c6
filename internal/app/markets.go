package app

import (
	"fmt"

	"github.com/chanops/stationctl/internal/config"
	"github.com/spf13/cobra"
)

func newMarketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "Manage the configured market list",
	}
	cmd.AddCommand(newMarketsListCmd(), newMarketsAddCmd(), newMarketsRemoveCmd())
	return cmd
}

func newMarketsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured markets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.Markets) == 0 {
				warn("no markets configured")
				return nil
			}
			for _, m := range cfg.Markets {
				fmt.Printf("%s\t%s\n", m.Country, m.PostalCode)
			}
			return nil
		},
	}
}

func newMarketsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <country> <postal-code>",
		Short: "Add a market to the configuration",
		Long: `Add a (country, postal code) market to the configured list.

The country is a 3-letter code; the postal code is normalized to
uppercase with whitespace removed before it is stored.

Example:
  stationctl markets add USA 10001`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := config.NewMarket(args[0], args[1])
			if len(m.Country) != 3 {
				return fmt.Errorf("country must be a 3-letter code, got %q", args[0])
			}
			if m.PostalCode == "" {
				return fmt.Errorf("postal code must not be empty")
			}
			if cfg.MarketConfigured(m) {
				warn("market %s already configured", m.Key())
				return nil
			}
			cfg.Markets = append(cfg.Markets, m)
			if err := config.Save(flagConfig, cfg); err != nil {
				return err
			}
			ok("added market %s", m.Key())
			return nil
		},
	}
}

func newMarketsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <country> <postal-code>",
		Short: "Remove a market from the configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := config.NewMarket(args[0], args[1])
			for i, have := range cfg.Markets {
				if have.Normalize() == m {
					cfg.Markets = append(cfg.Markets[:i], cfg.Markets[i+1:]...)
					if err := config.Save(flagConfig, cfg); err != nil {
						return err
					}
					ok("removed market %s", m.Key())
					return nil
				}
			}
			return fmt.Errorf("market %s not configured", m.Key())
		},
	}
}
