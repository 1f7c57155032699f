package engine

import (
	"sort"
	"strings"

	"scheme-workers/internal/engine/eligibility"
	"scheme-workers/internal/engine/intent"
)

// Response is the fully composed answer to one citizen query: the detected
// intent, ranked evaluation results where eligibility was assessed, and the
// rendered explanation text.
type Response struct {
	Intent          intent.Intent                  `json:"intent"`
	MatchScore      int                            `json:"matchScore"`
	Evaluations     []eligibility.EvaluationResult `json:"evaluations,omitempty"`
	ExplanationText string                         `json:"explanationText"`
	Warnings        []string                       `json:"warnings,omitempty"`
}

// BuildResponse runs the full pipeline for one query: classify, route by
// intent, evaluate where a profile applies, rank and explain. It never
// fails; degraded inputs surface as warnings inside the response.
func (e *Engine) BuildResponse(q intent.Query, rawProfile map[string]interface{}) Response {
	classification := e.Classify(q)
	resp := Response{
		Intent:     classification.Intent,
		MatchScore: classification.MatchScore,
	}
	lang := q.LanguageTag

	switch classification.Intent {
	case intent.IntentOutOfScope:
		text, warnings := e.explainer.OutOfScope(lang)
		resp.ExplanationText = text
		resp.Warnings = append(resp.Warnings, warnings...)

	case intent.IntentLocation, intent.IntentAdmin:
		validation := e.ValidateAdminQuery(q.Text)
		resp.ExplanationText = validation.Response
		resp.Warnings = append(resp.Warnings, validation.Warnings...)
		resp.Warnings = append(resp.Warnings, validation.Errors...)

	case intent.IntentPlatformHelp:
		// Platform usage questions carry no eligibility component; the
		// out-of-scope redirection text doubles as the help pointer.
		text, warnings := e.explainer.OutOfScope(lang)
		resp.ExplanationText = text
		resp.Warnings = append(resp.Warnings, warnings...)

	case intent.IntentScholarship:
		e.evaluateInto(&resp, rawProfile, lang, "scholarship")

	default:
		// SCHEME and EXPLANATION both evaluate the full catalog;
		// EXPLANATION differs only in how much detail the text carries,
		// which the explainer derives from the breakdown itself.
		e.evaluateInto(&resp, rawProfile, lang, "")
	}

	return resp
}

// evaluateInto scores the catalog (optionally restricted to one category),
// ranks the results and renders the explanation for the top-ranked ones.
func (e *Engine) evaluateInto(resp *Response, rawProfile map[string]interface{}, lang, category string) {
	results, warnings := e.EvaluateEligibility(rawProfile)
	resp.Warnings = append(resp.Warnings, warnings...)

	if category != "" {
		filtered := results[:0]
		for _, r := range results {
			if strings.EqualFold(r.Category, category) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	RankResults(results)
	resp.Evaluations = results

	if len(results) == 0 {
		text, w := e.explainer.NoPrograms(lang)
		resp.ExplanationText = text
		resp.Warnings = append(resp.Warnings, w...)
		return
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		text, w := e.explainer.Explain(r, lang)
		texts = append(texts, text)
		resp.Warnings = append(resp.Warnings, w...)
	}
	resp.ExplanationText = strings.Join(texts, "\n\n")
}

// RankResults orders evaluations by score descending. The sort is stable so
// equal scores keep catalog order, which makes rankings reproducible across
// runs.
func RankResults(results []eligibility.EvaluationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
