// internal/workers/assistant/evaluate-eligibility/config.go
package evaluateeligibility

import "time"

type Config struct {
	Timeout      time.Duration
	QueryTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      15 * time.Second,
		QueryTimeout: 5 * time.Second,
	}
}
