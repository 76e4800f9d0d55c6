package app

import (
	"fmt"
	"os"

	"github.com/chanops/stationctl/internal/cache"
	"github.com/chanops/stationctl/internal/config"
	"github.com/chanops/stationctl/internal/guide"
	"github.com/chanops/stationctl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	client *guide.Client
	stores *cache.Manager

	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "stationctl",
	Short: "Build and query a local database of television-station metadata",
	Long: `stationctl grows a local station database from a geo-lineup guide-data API.

A distributed base snapshot ships with coverage for common markets; the
cache command fills in your configured markets incrementally and the
search command queries the merged result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/stationctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client = guide.New(cfg.Guide.BaseURL)
		stores = cache.New(cfg.Data.Dir, &configTokens{})
		return nil
	}

	rootCmd.AddCommand(
		newCacheCmd(),
		newSearchCmd(),
		newInfoCmd(),
		newStatusCmd(),
		newMarketsCmd(),
		newVersionCmd(),
	)
}

// configTokens persists the freshness token inside the config file.
type configTokens struct{}

func (t *configTokens) Token() cache.Token {
	return cache.Token{
		Combined: cfg.Freshness.Combined,
		Base:     cfg.Freshness.Base,
		User:     cfg.Freshness.User,
	}
}

func (t *configTokens) SetToken(tok cache.Token) error {
	cfg.Freshness = config.FreshnessToken{
		Combined: tok.Combined,
		Base:     tok.Base,
		User:     tok.User,
	}
	return config.Save(flagConfig, cfg)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
