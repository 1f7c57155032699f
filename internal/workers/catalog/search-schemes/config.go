// internal/workers/catalog/search-schemes/config.go
package searchschemes

import "time"

type Config struct {
	Timeout     time.Duration
	SchemeIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		SchemeIndex: "schemes",
	}
}
