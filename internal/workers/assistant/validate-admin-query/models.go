// internal/workers/assistant/validate-admin-query/models.go
package validateadminquery

// Input carries either a free-form administrative question or an explicit
// sequence of level labels to check for ordering.
type Input struct {
	QueryText   string   `json:"queryText,omitempty"`
	LevelLabels []string `json:"levelLabels,omitempty"`
	SessionID   string   `json:"sessionId,omitempty"`
}

type Output struct {
	IsValid     bool     `json:"isValid"`
	Response    string   `json:"response"`
	Factual     bool     `json:"factual"`
	Approximate bool     `json:"approximate,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}
