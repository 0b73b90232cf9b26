// internal/workers/search/perform-search/config.go
package performsearch

import (
	"time"

	"neptune-workers/internal/common/config"
)

const DefaultDelay = 1000 * time.Millisecond

type Config struct {
	// Delay is the simulated backend latency applied to every search.
	Delay      time.Duration
	MaxResults int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Delay:      DefaultDelay,
		MaxResults: config.DefaultSearchMaxResults,
		Timeout:    30 * time.Second,
	}
}

// ConfigFrom builds the facade config from the search config section.
func ConfigFrom(cfg config.SearchConfig) *Config {
	c := LoadConfig()
	c.Delay = cfg.Delay()
	if cfg.MaxResults > 0 {
		c.MaxResults = cfg.MaxResults
	}
	return c
}
