// Package explain renders evaluation results into citizen-facing text from
// fixed per-language templates. Rendering is deterministic: no generation,
// only template substitution over the evaluation breakdown.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"scheme-workers/internal/engine/eligibility"
)

// Score bands for the summary header. Band edges are inclusive on the upper
// side so a score of exactly 0.8 reads as "likely eligible".
const (
	bandEligible = 0.95
	bandLikely   = 0.80
	bandPartial  = 0.50
)

// Explainer renders results in a configured set of languages with a fallback
// chain ending at the default language.
type Explainer struct {
	defaultLang string
}

func NewExplainer(defaultLang string) *Explainer {
	if _, ok := templates[defaultLang]; !ok {
		defaultLang = "en"
	}
	return &Explainer{defaultLang: defaultLang}
}

// resolveLang picks the template set for a requested tag, falling back to the
// default language. The second return is a warning when fallback happened.
func (e *Explainer) resolveLang(lang string) (string, templateSet, string) {
	tag := primarySubtag(lang)
	if ts, ok := templates[tag]; ok {
		return tag, ts, ""
	}
	warning := fmt.Sprintf("language %q not supported; responding in %q", lang, e.defaultLang)
	return e.defaultLang, templates[e.defaultLang], warning
}

// primarySubtag reduces a BCP 47 tag like "hi-IN" to "hi".
func primarySubtag(lang string) string {
	tag := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}

// OutOfScope returns the fixed redirection message for unclassifiable
// queries.
func (e *Explainer) OutOfScope(lang string) (string, []string) {
	_, ts, warning := e.resolveLang(lang)
	if warning != "" {
		return ts.OutOfScope, []string{warning}
	}
	return ts.OutOfScope, nil
}

// NoPrograms returns the fixed empty-result message.
func (e *Explainer) NoPrograms(lang string) (string, []string) {
	_, ts, warning := e.resolveLang(lang)
	if warning != "" {
		return ts.NoPrograms, []string{warning}
	}
	return ts.NoPrograms, nil
}

// Explain renders one evaluation result. Criterion reasons come from the
// catalog's per-language templates; the language fallback for those is the
// requested tag, then the default language, then English.
func (e *Explainer) Explain(result eligibility.EvaluationResult, lang string) (string, []string) {
	tag, ts, warning := e.resolveLang(lang)
	var warnings []string
	if warning != "" {
		warnings = append(warnings, warning)
	}

	var parts []string
	switch {
	case result.Indeterminate:
		parts = append(parts, fmt.Sprintf(ts.IndeterminateHeader, result.DisplayName))
	case len(result.Failed) > 0 && result.Score == 0:
		parts = append(parts, fmt.Sprintf(ts.IneligibleHeader, result.DisplayName))
	case result.Score >= bandEligible:
		parts = append(parts, fmt.Sprintf(ts.EligibleHeader, result.DisplayName))
	case result.Score >= bandLikely:
		parts = append(parts, fmt.Sprintf(ts.LikelyHeader, result.DisplayName))
	case result.Score >= bandPartial:
		parts = append(parts, fmt.Sprintf(ts.PartialHeader, result.DisplayName))
	default:
		parts = append(parts, fmt.Sprintf(ts.IneligibleHeader, result.DisplayName))
	}

	if len(result.Failed) > 0 {
		reasons := make([]string, 0, len(result.Failed))
		for _, outcome := range result.Failed {
			reason, w := criterionReason(outcome, tag, e.defaultLang)
			if w != "" {
				warnings = append(warnings, w)
			}
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}
		if len(reasons) > 0 {
			parts = append(parts, fmt.Sprintf(ts.FailedLead, strings.Join(reasons, " ")))
		}
	}

	if len(result.Satisfied) > 0 && !result.Indeterminate {
		parts = append(parts, fmt.Sprintf(ts.SatisfiedNote, len(result.Satisfied)))
	}

	if len(result.MissingFields) > 0 {
		names := make([]string, 0, len(result.MissingFields))
		for _, field := range result.MissingFields {
			if display, ok := ts.FieldNames[field]; ok {
				names = append(names, display)
			} else {
				names = append(names, field)
			}
		}
		parts = append(parts, fmt.Sprintf(ts.MissingFieldsLead, strings.Join(names, ", ")))
	}

	return strings.Join(parts, " "), warnings
}

// criterionReason resolves a failed criterion's catalog template with
// language fallback. A criterion with no template at all renders as empty
// with a warning rather than failing the whole explanation.
func criterionReason(outcome eligibility.CriterionOutcome, lang, defaultLang string) (string, string) {
	if len(outcome.Unsatisfied) == 0 {
		return "", fmt.Sprintf("criterion %q has no explanation template", outcome.Field)
	}
	if msg, ok := outcome.Unsatisfied[lang]; ok {
		return msg, ""
	}
	for _, fallback := range []string{defaultLang, "en"} {
		if msg, ok := outcome.Unsatisfied[fallback]; ok {
			return msg, fmt.Sprintf("criterion %q has no %q template; used %q", outcome.Field, lang, fallback)
		}
	}
	// Last resort: any template the catalog carries, picked in sorted key
	// order so the rendered text is stable across runs.
	langs := make([]string, 0, len(outcome.Unsatisfied))
	for l := range outcome.Unsatisfied {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return outcome.Unsatisfied[langs[0]],
		fmt.Sprintf("criterion %q has no %q template; used %q", outcome.Field, lang, langs[0])
}
