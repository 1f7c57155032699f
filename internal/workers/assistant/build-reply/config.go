// internal/workers/assistant/build-reply/config.go
package buildreply

import "time"

type Config struct {
	Timeout      time.Duration
	RegistryPath string
	AppVersion   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
