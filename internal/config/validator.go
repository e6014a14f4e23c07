package config

import (
	"fmt"
	"net/url"
)

// Validate checks that the configuration can support a scan run.
func Validate(cfg Config) error {
	if cfg.URL == "" {
		return fmt.Errorf("service URL is required (set url in xscan.yaml or XSCAN_URL)")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("service URL %q is not a valid absolute URL", cfg.URL)
	}

	switch cfg.CacheBackend {
	case "sqlite":
		if cfg.CachePath == "" {
			return fmt.Errorf("cache.path is required for the sqlite cache backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown cache backend %q (want sqlite or memory)", cfg.CacheBackend)
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
