package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stationctl", "config.yml")
}

// ResolvePath picks the config file location: the explicit path if
// given, else $STATIONCTL_CONFIG, else the default.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("STATIONCTL_CONFIG"); env != "" {
		return env
	}
	return DefaultPath()
}

// Load reads the config from path (or env). A missing file yields the
// defaults — the markets command populates it.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("guide.base_url", "http://localhost:8089/guide")
	v.SetDefault("guide.enrich", false)
	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("filters.resolution", false)
	v.SetDefault("filters.country", false)

	v.SetEnvPrefix("STATIONCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ResolvePath(path))

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine — defaults apply.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Dir = ExpandHome(cfg.Data.Dir)

	// Markets are compared against the ledger and manifest by exact
	// key, so keep them normalized from the moment they are read.
	for i := range cfg.Markets {
		cfg.Markets[i] = cfg.Markets[i].Normalize()
	}

	return &cfg, nil
}

// Save writes the config to path (resolved like Load).
func Save(path string, cfg *Config) error {
	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "stationctl")
}
