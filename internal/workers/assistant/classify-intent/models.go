// internal/workers/assistant/classify-intent/models.go
package classifyintent

type Input struct {
	QueryText   string `json:"queryText"`
	LanguageTag string `json:"languageTag"`
	SessionID   string `json:"sessionId,omitempty"`
}

type Output struct {
	Intent          string   `json:"intent"`
	MatchScore      int      `json:"matchScore"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
	FromCache       bool     `json:"fromCache"`
}
