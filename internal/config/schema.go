package config

import "strings"

// Config is the top-level stationctl configuration.
type Config struct {
	Guide     GuideConfig    `mapstructure:"guide" yaml:"guide"`
	Data      DataConfig     `mapstructure:"data" yaml:"data"`
	Markets   []Market       `mapstructure:"markets" yaml:"markets"`
	Filters   FiltersConfig  `mapstructure:"filters" yaml:"filters"`
	Freshness FreshnessToken `mapstructure:"freshness" yaml:"freshness"`
}

// GuideConfig holds guide-data provider connection settings.
type GuideConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Enrich  bool   `mapstructure:"enrich" yaml:"enrich"`
}

// DataConfig locates the on-disk station database.
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Market is one (country, postal code) query unit for the guide-data
// provider.
type Market struct {
	Country    string `mapstructure:"country" yaml:"country" json:"country"`
	PostalCode string `mapstructure:"postal_code" yaml:"postal_code" json:"postalCode"`
}

// FiltersConfig holds the persistent search filter settings.
type FiltersConfig struct {
	Resolution  bool     `mapstructure:"resolution" yaml:"resolution"`
	Resolutions []string `mapstructure:"resolutions" yaml:"resolutions"`
	Country     bool     `mapstructure:"country" yaml:"country"`
	CountryCode string   `mapstructure:"country_code" yaml:"country_code"`
}

// FreshnessToken records the store timestamps the combined view was
// last built from. Zero values mean "never built".
type FreshnessToken struct {
	Combined int64 `mapstructure:"combined" yaml:"combined"`
	Base     int64 `mapstructure:"base" yaml:"base"`
	User     int64 `mapstructure:"user" yaml:"user"`
}

// NewMarket builds a normalized market.
func NewMarket(country, postalCode string) Market {
	return Market{Country: country, PostalCode: postalCode}.Normalize()
}

// Normalize uppercases both fields and strips whitespace from the
// postal code. Markets are always normalized before being persisted
// or compared.
func (m Market) Normalize() Market {
	m.Country = strings.ToUpper(strings.TrimSpace(m.Country))
	m.PostalCode = NormalizePostal(m.PostalCode)
	return m
}

// Key returns the ledger/manifest comparison key for the market.
func (m Market) Key() string {
	return m.Country + "/" + m.PostalCode
}

// NormalizePostal uppercases a postal code and removes all embedded
// whitespace.
func NormalizePostal(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MarketConfigured reports whether the normalized market is present in
// the configured list.
func (c *Config) MarketConfigured(m Market) bool {
	m = m.Normalize()
	for _, have := range c.Markets {
		if have.Normalize() == m {
			return true
		}
	}
	return false
}
