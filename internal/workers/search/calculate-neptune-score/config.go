// internal/workers/search/calculate-neptune-score/config.go
package calculateneptunescore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
