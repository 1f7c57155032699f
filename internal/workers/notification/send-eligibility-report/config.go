// internal/workers/notification/send-eligibility-report/config.go
package sendeligibilityreport

import "time"

type Config struct {
	Timeout     time.Duration
	FromEmail   string
	SMSSenderID string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     15 * time.Second,
		SMSSenderID: "GOVSCHEME",
	}
}
