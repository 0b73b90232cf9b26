// internal/workers/search/rank-providers/config.go
package rankproviders

import "time"

type Config struct {
	MaxItems int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: MaxResults,
		Timeout:  5 * time.Second,
	}
}
