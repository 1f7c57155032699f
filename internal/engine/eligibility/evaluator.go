package eligibility

import "strings"

// Evaluate scores every program in the catalog against the profile. Every
// catalog entry produces a result (no silent filtering), programs are scored
// independently of each other, and the function never fails on a catalog
// that passed load-time validation.
func Evaluate(profile *UserProfile, catalog []ProgramRule) []EvaluationResult {
	results := make([]EvaluationResult, 0, len(catalog))
	for _, rule := range catalog {
		results = append(results, evaluateProgram(profile, rule))
	}
	return results
}

func evaluateProgram(profile *UserProfile, rule ProgramRule) EvaluationResult {
	result := EvaluationResult{
		ProgramID:   rule.ProgramID,
		DisplayName: rule.DisplayName,
		Category:    rule.Category,
	}

	var achieved, knownWeight float64
	mandatoryFailed := false
	mandatoryMissing := false

	for _, cr := range rule.Criteria {
		value, known := profile.Field(cr.Field)
		if !known {
			// Missing shrinks the denominator rather than the score:
			// confidence reflects certainty over known fields, not a
			// penalty for incomplete profiles.
			result.MissingFields = append(result.MissingFields, cr.Field)
			if cr.Mandatory {
				mandatoryMissing = true
			}
			continue
		}

		outcome := CriterionOutcome{
			Field:       cr.Field,
			Expected:    cr.Expected,
			Actual:      value,
			Mandatory:   cr.Mandatory,
			Unsatisfied: cr.Unsatisfied,
		}

		satisfied, comparable := compare(value, cr.Comparator, cr.Expected)
		if !comparable {
			// Catalog and profile types disagree; treat like an absent
			// field so a bad config entry cannot disqualify anyone.
			result.MissingFields = append(result.MissingFields, cr.Field)
			if cr.Mandatory {
				mandatoryMissing = true
			}
			continue
		}

		knownWeight += cr.Weight
		if satisfied {
			achieved += cr.Weight
			result.Satisfied = append(result.Satisfied, outcome)
		} else {
			result.Failed = append(result.Failed, outcome)
			if cr.Mandatory {
				mandatoryFailed = true
			}
		}
	}

	switch {
	case mandatoryFailed:
		// Hard disqualifier. The program stays in the result set with its
		// satisfied/failed breakdown intact so the caller can explain why.
		result.Score = 0
	case knownWeight == 0:
		result.Indeterminate = true
	default:
		result.Score = clamp01(achieved / knownWeight)
		if mandatoryMissing {
			// A mandatory field we know nothing about means "need more
			// information", not "ineligible".
			result.Indeterminate = true
		}
	}

	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// compare applies a comparator. The second return value is false when the
// value and expectation cannot be compared at all.
func compare(value interface{}, cmp Comparator, expected interface{}) (bool, bool) {
	switch cmp {
	case CompEquals:
		vs, vok := value.(string)
		es, eok := expected.(string)
		if vok && eok {
			return strings.EqualFold(strings.TrimSpace(vs), strings.TrimSpace(es)), true
		}
		vn, vok := toFloat(value)
		en, eok := toFloat(expected)
		if vok && eok {
			return vn == en, true
		}
		return false, false

	case CompGreaterOrEqual:
		vn, vok := toFloat(value)
		en, eok := toFloat(expected)
		if !vok || !eok {
			return false, false
		}
		return vn >= en, true

	case CompLessOrEqual:
		vn, vok := toFloat(value)
		en, eok := toFloat(expected)
		if !vok || !eok {
			return false, false
		}
		return vn <= en, true

	case CompInSet:
		vs, vok := value.(string)
		set, eok := toStringSet(expected)
		if !vok || !eok {
			return false, false
		}
		for _, member := range set {
			if strings.EqualFold(strings.TrimSpace(vs), strings.TrimSpace(member)) {
				return true, true
			}
		}
		return false, true

	case CompBoolean:
		vb, vok := value.(bool)
		eb, eok := expected.(bool)
		if !vok || !eok {
			return false, false
		}
		return vb == eb, true
	}

	return false, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toStringSet(v interface{}) ([]string, bool) {
	switch set := v.(type) {
	case []string:
		return set, true
	case []interface{}:
		out := make([]string, 0, len(set))
		for _, member := range set {
			s, ok := member.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
