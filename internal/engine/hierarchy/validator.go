package hierarchy

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidationResult reports a hierarchy check. Unrecognized labels are
// warnings, never fatal; only genuine inversions or terminology
// contradictions populate Errors.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Response string   `json:"response"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// FactualAnswer is a canonical, pre-formatted answer to a recognized
// factual question about the hierarchy.
type FactualAnswer struct {
	Text        string `json:"text"`
	Approximate bool   `json:"approximate"`
	Caveat      string `json:"caveat,omitempty"`
}

// ValidateOrder checks that a sequence of level labels is ordered from wider
// to narrower. Every pair where a later label resolves to a strictly lower
// index than an earlier one is reported as an inversion.
func (t *Table) ValidateOrder(labels []string) ValidationResult {
	result := ValidationResult{IsValid: true}

	type resolvedLabel struct {
		label string
		index int
	}
	var resolved []resolvedLabel
	for _, label := range labels {
		idx, ok := t.Resolve(label)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unrecognized level label %q skipped", label))
			continue
		}
		resolved = append(resolved, resolvedLabel{label: label, index: idx})
	}

	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			if resolved[j].index < resolved[i].index {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%q is a wider level than %q and cannot come after it",
						resolved[j].label, resolved[i].label))
			}
		}
	}

	if len(result.Errors) > 0 {
		result.IsValid = false
		result.Response = "The given order does not match the administrative hierarchy."
	} else {
		result.Response = "The given order is consistent with the administrative hierarchy."
	}
	return result
}

var orderingWords = []string{"after", "before", "between", "under", "above"}

// ValidateTerminology flags queries that treat synonymous sub-district terms
// as distinct hierarchy levels, e.g. "is tehsil before taluka".
func (t *Table) ValidateTerminology(query string) ValidationResult {
	result := ValidationResult{IsValid: true}
	normalized := strings.ToLower(query)

	// Whole-word matching here: "taluka" must not also count as "taluk",
	// or the contradiction message would name terms the query never used.
	var present []string
	for _, term := range t.equivalents {
		if containsWord(normalized, term) {
			present = append(present, term)
		}
	}
	if len(present) < 2 {
		result.Response = "No terminology conflict found."
		return result
	}

	ordered := false
	for _, w := range orderingWords {
		if strings.Contains(normalized, w) {
			ordered = true
			break
		}
	}
	if !ordered {
		result.Response = "No terminology conflict found."
		return result
	}

	result.IsValid = false
	result.Errors = append(result.Errors,
		fmt.Sprintf("%s all name the same administrative level (sub-district); they have no order relative to each other",
			strings.Join(present, " and ")))
	result.Response = fmt.Sprintf(
		"%s are different regional names for the same level, the sub-district. One does not come before or after the other.",
		strings.Join(present, " and "))
	return result
}

// containsWord reports whether term occurs in text delimited by non-word
// runes on both sides.
func containsWord(text, term string) bool {
	for start := 0; start <= len(text)-len(term); {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start

		boundedLeft := i == 0
		if !boundedLeft {
			prev, _ := utf8.DecodeLastRuneInString(text[:i])
			boundedLeft = !isWordRune(prev)
		}
		boundedRight := i+len(term) == len(text)
		if !boundedRight {
			next, _ := utf8.DecodeRuneInString(text[i+len(term):])
			boundedRight = !isWordRune(next)
		}
		if boundedLeft && boundedRight {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

var countWords = []string{"how many", "kitne", "kitni", "किती", "कितने", "kiti"}
var listWords = []string{"hierarchy", "structure", "levels of", "full order", "शासन रचना", "रचना"}

// AnswerFactualQuery recognizes the two canonical question shapes: a count of
// a named level, or a request for the full hierarchy. Unrecognized questions
// return ok=false so the caller can fall through to other handling.
func (t *Table) AnswerFactualQuery(query string) (FactualAnswer, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return FactualAnswer{}, false
	}

	for _, w := range listWords {
		if strings.Contains(normalized, w) {
			return t.fullHierarchyAnswer(), true
		}
	}

	asksCount := false
	for _, w := range countWords {
		if strings.Contains(normalized, w) {
			asksCount = true
			break
		}
	}
	if !asksCount {
		return FactualAnswer{}, false
	}

	// Longest alias first so "gram panchayat" wins over "panchayat samiti"
	// fragments and multi-word aliases are preferred to embedded short ones.
	bestIdx, bestLen := -1, 0
	for alias, idx := range t.aliases {
		if strings.Contains(normalized, alias) && len(alias) > bestLen {
			bestIdx, bestLen = idx, len(alias)
		}
	}
	if bestIdx < 0 {
		return FactualAnswer{}, false
	}

	lv := t.levels[bestIdx]
	answer := FactualAnswer{Approximate: lv.Approximate}
	if lv.Approximate {
		answer.Text = fmt.Sprintf("India has approximately %d %ss.", lv.Count, lv.Name)
		answer.Caveat = "Counts below the state/UT level change with administrative reorganization; treat this as an estimate."
	} else if lv.Name == "state" {
		answer.Text = fmt.Sprintf("India has %d states and 8 union territories.", lv.Count)
	} else {
		answer.Text = fmt.Sprintf("There is %d %s.", lv.Count, lv.Name)
	}
	return answer, true
}

func (t *Table) fullHierarchyAnswer() FactualAnswer {
	names := make([]string, len(t.levels))
	for i, lv := range t.levels {
		names[i] = lv.Name
	}
	return FactualAnswer{
		Text: fmt.Sprintf(
			"The administrative hierarchy from widest to narrowest is: %s. Tehsil, taluka, taluk and mandal are regional names for the sub-district level.",
			strings.Join(names, " → ")),
	}
}
