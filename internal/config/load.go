package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the resolved runtime configuration.
type Config struct {
	// URL is the base URL of the graph-scan service.
	URL string
	// AccessToken authenticates against the service.
	AccessToken string
	// Project is the optional policy-context key sent with scans.
	Project string
	// CacheBackend selects the cache store: "sqlite" or "memory".
	CacheBackend string
	// CachePath is the SQLite cache file location.
	CachePath string
	// Timeout bounds a single remote request.
	Timeout time.Duration
	// MetricsPort serves Prometheus metrics when > 0.
	MetricsPort int
}

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("xscan")
	}

	viper.SetEnvPrefix("XSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("url", "")
	viper.SetDefault("access_token", "")
	viper.SetDefault("project", "")
	viper.SetDefault("cache.backend", "sqlite")
	viper.SetDefault("cache.path", "xscan.db")
	viper.SetDefault("timeout", 300)
	viper.SetDefault("metrics_port", 0)

	// A missing config file is not an error; env vars may carry everything.
	_ = viper.ReadInConfig()
}

// FromViper materializes a Config from the current viper state.
func FromViper() Config {
	return Config{
		URL:          viper.GetString("url"),
		AccessToken:  viper.GetString("access_token"),
		Project:      viper.GetString("project"),
		CacheBackend: viper.GetString("cache.backend"),
		CachePath:    viper.GetString("cache.path"),
		Timeout:      time.Duration(viper.GetInt("timeout")) * time.Second,
		MetricsPort:  viper.GetInt("metrics_port"),
	}
}
