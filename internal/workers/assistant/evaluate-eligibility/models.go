// internal/workers/assistant/evaluate-eligibility/models.go
package evaluateeligibility

import "scheme-workers/internal/engine/eligibility"

// Input supplies the profile either inline or as a citizen id to resolve
// against the profile store. An inline profile wins when both are present.
type Input struct {
	CitizenID   string                 `json:"citizenId,omitempty"`
	Profile     map[string]interface{} `json:"profile,omitempty"`
	Category    string                 `json:"category,omitempty"`
	LanguageTag string                 `json:"languageTag,omitempty"`
	SessionID   string                 `json:"sessionId,omitempty"`
}

type Output struct {
	Evaluations []eligibility.EvaluationResult `json:"evaluations"`
	TopProgram  string                         `json:"topProgram,omitempty"`
	Warnings    []string                       `json:"warnings,omitempty"`
}
