// internal/workers/search/classify-service-intent/config.go
package classifyserviceintent

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
