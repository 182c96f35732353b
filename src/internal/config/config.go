// Package config loads pytoy's global, user-level configuration: default index
// mirror, default parallelism, and the telemetry on/off switch. The project
// manifest (internal/manifest) always takes precedence over these defaults; this layer
// only fills in what the manifest and CLI flags leave unset, the way the teacher's
// cmd/config_helper.go layers project-then-global-then-fallback resolution.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"pytoy/src/internal/pytoydir"
)

// GlobalConfig is the decoded form of config.toml in the pytoy home directory
// (pytoydir.Home).
type GlobalConfig struct {
	IndexURL          string `mapstructure:"index_url" toml:"index_url"`
	ParallelDownloads int    `mapstructure:"parallel_downloads" toml:"parallel_downloads"`
	TelemetryEnabled  bool   `mapstructure:"telemetry_enabled" toml:"telemetry_enabled"`
}

func defaults() GlobalConfig {
	return GlobalConfig{
		IndexURL:          "https://pypi.org",
		ParallelDownloads: 16,
		TelemetryEnabled:  false,
	}
}

// Load reads the global config file via viper, falling back to defaults for any
// key the file doesn't set. A missing file is not an error.
func Load() (GlobalConfig, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(pytoydir.MustHome())
	v.SetDefault("index_url", cfg.IndexURL)
	v.SetDefault("parallel_downloads", cfg.ParallelDownloads)
	v.SetDefault("telemetry_enabled", cfg.TelemetryEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return GlobalConfig{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// Path returns the global config file's on-disk path.
func Path() string {
	return filepath.Join(pytoydir.MustHome(), "config.toml")
}
