// internal/workers/search/compose-search-response/config.go
package composesearchresponse

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
