// internal/workers/assistant/build-reply/models.go
package buildreply

import "scheme-workers/internal/engine/eligibility"

type Input struct {
	QueryText   string                 `json:"queryText"`
	LanguageTag string                 `json:"languageTag"`
	Profile     map[string]interface{} `json:"profile,omitempty"`
	SessionID   string                 `json:"sessionId,omitempty"`
}

type Output struct {
	Reply ReplyPayload `json:"reply"`
}

// ReplyPayload is the citizen-facing envelope handed back to the workflow.
type ReplyPayload struct {
	ReplyID     string                         `json:"replyId"`
	SessionID   string                         `json:"sessionId,omitempty"`
	Status      string                         `json:"status"`
	Intent      string                         `json:"intent"`
	Text        string                         `json:"text"`
	Evaluations []eligibility.EvaluationResult `json:"evaluations,omitempty"`
	Warnings    []string                       `json:"warnings,omitempty"`
	Metadata    ReplyMetadata                  `json:"metadata"`
}

type ReplyMetadata struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Language  string `json:"language"`
}
