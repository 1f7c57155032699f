// internal/workers/notification/send-eligibility-report/models.go
package sendeligibilityreport

import "time"

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	Channel     string `json:"channel"`
	ToEmail     string `json:"toEmail,omitempty"`
	ToPhone     string `json:"toPhone,omitempty"`
	Subject     string `json:"subject,omitempty"`
	ReportText  string `json:"reportText"`
	LanguageTag string `json:"languageTag,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
}

type Output struct {
	Success   bool      `json:"success"`
	Channel   string    `json:"channel"`
	MessageID string    `json:"messageId"`
	SentAt    time.Time `json:"sentAt"`
}
