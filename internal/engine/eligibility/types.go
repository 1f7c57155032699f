// Package eligibility evaluates an immutable catalog of benefit program
// rules against a structured citizen profile. Scores are bounded confidence
// values over the fields the profile actually supplies; missing information
// is distinguished from failing information throughout.
package eligibility

// Comparator selects how a criterion tests a profile field.
type Comparator string

const (
	CompEquals         Comparator = "equals"
	CompGreaterOrEqual Comparator = "greaterOrEqual"
	CompLessOrEqual    Comparator = "lessOrEqual"
	CompInSet          Comparator = "inSet"
	CompBoolean        Comparator = "boolean"
)

// Criterion is one weighted, possibly mandatory test of a profile field.
// Unsatisfied carries per-language explanation templates keyed by language
// tag; the explanation layer substitutes them verbatim when the criterion
// fails.
type Criterion struct {
	Field       string            `json:"field"`
	Comparator  Comparator        `json:"comparator"`
	Expected    interface{}       `json:"expected"`
	Weight      float64           `json:"weight"`
	Mandatory   bool              `json:"mandatory"`
	Unsatisfied map[string]string `json:"unsatisfied"`
}

// ProgramRule defines eligibility for one benefit program. Weights are
// normalized at load time so the maximum achievable score is 1.0.
type ProgramRule struct {
	ProgramID   string      `json:"programId"`
	DisplayName string      `json:"displayName"`
	Category    string      `json:"category,omitempty"`
	Criteria    []Criterion `json:"criteria"`
}

// CriterionOutcome records how one criterion resolved for one profile.
type CriterionOutcome struct {
	Field       string            `json:"field"`
	Expected    interface{}       `json:"expected"`
	Actual      interface{}       `json:"actual,omitempty"`
	Mandatory   bool              `json:"mandatory"`
	Unsatisfied map[string]string `json:"-"`
}

// EvaluationResult is the scored outcome for one program. Score is a pure
// function of (rule, profile). Indeterminate marks "need more information":
// either no criteria had known values, or a mandatory criterion's field was
// missing.
type EvaluationResult struct {
	ProgramID     string             `json:"programId"`
	DisplayName   string             `json:"displayName"`
	Category      string             `json:"category,omitempty"`
	Score         float64            `json:"score"`
	Indeterminate bool               `json:"indeterminate"`
	Satisfied     []CriterionOutcome `json:"satisfiedCriteria"`
	Failed        []CriterionOutcome `json:"failedCriteria"`
	MissingFields []string           `json:"missingFields"`
}
