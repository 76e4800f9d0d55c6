package config_test

import (
	"testing"

	"github.com/chanops/stationctl/internal/config"
)

func TestNormalizePostal(t *testing.T) {
	cases := []struct{ in, want string }{
		{"10001", "10001"},
		{"sw1a 1aa", "SW1A1AA"},
		{"  m5v 3l9\t", "M5V3L9"},
		{"", ""},
	}
	for _, c := range cases {
		if got := config.NormalizePostal(c.in); got != c.want {
			t.Errorf("NormalizePostal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarketNormalize(t *testing.T) {
	m := config.Market{Country: " usa ", PostalCode: "100 01"}.Normalize()
	if m.Country != "USA" || m.PostalCode != "10001" {
		t.Errorf("Normalize = %+v", m)
	}
}

func TestMarketKey(t *testing.T) {
	if got := config.NewMarket("gbr", "sw1a 1aa").Key(); got != "GBR/SW1A1AA" {
		t.Errorf("Key = %q", got)
	}
}

func TestMarketConfigured(t *testing.T) {
	cfg := &config.Config{Markets: []config.Market{
		config.NewMarket("USA", "10001"),
	}}
	if !cfg.MarketConfigured(config.Market{Country: "usa", PostalCode: "100 01"}) {
		t.Error("normalized match should be configured")
	}
	if cfg.MarketConfigured(config.NewMarket("USA", "90210")) {
		t.Error("unknown market reported configured")
	}
}
