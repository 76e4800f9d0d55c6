package app

import (
	"fmt"

	"github.com/chanops/stationctl/internal/station"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <station-id>",
		Short: "Show every stored field of one station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := stores.Resolve()
			if err != nil {
				return err
			}
			recs, err := station.Load(path)
			if err != nil {
				return err
			}

			r := station.ByID(recs, args[0])
			if r == nil {
				return fmt.Errorf("station %q not found", args[0])
			}

			header("%s", args[0])
			printField("name", r.Name)
			printField("callSign", r.CallSign)
			printField("country", r.Country)
			printField("videoQuality", r.VideoQuality)
			printField("network", r.Network)
			printField("language", r.Language)
			printField("logoURI", r.LogoURI)
			printField("description", r.Description)
			printField("source", r.Source)
			return nil
		},
	}
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-13s %s\n", name, value)
}
