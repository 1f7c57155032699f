package eligibility

import "fmt"

// Profile field names used by criteria. The set is fixed; criteria against
// other names never resolve and always count as missing.
const (
	FieldOccupation      = "occupation"
	FieldAge             = "age"
	FieldAnnualIncome    = "annual_income"
	FieldState           = "state"
	FieldCasteCategory   = "caste_category"
	FieldHasDisability   = "has_disability"
	FieldEnrolledStudent = "enrolled_student"
)

// UserProfile is a per-call snapshot of what is known about a citizen.
// Nil pointers mean "unknown", which is distinct from an explicit zero or
// false value.
type UserProfile struct {
	Occupation      *string  `json:"occupation,omitempty"`
	Age             *int     `json:"age,omitempty"`
	AnnualIncome    *float64 `json:"annualIncome,omitempty"`
	State           *string  `json:"state,omitempty"`
	CasteCategory   *string  `json:"casteCategory,omitempty"`
	HasDisability   *bool    `json:"hasDisability,omitempty"`
	EnrolledStudent *bool    `json:"enrolledStudent,omitempty"`
}

// Field returns the value of a named profile field and whether it is known.
func (p *UserProfile) Field(name string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	switch name {
	case FieldOccupation:
		if p.Occupation != nil {
			return *p.Occupation, true
		}
	case FieldAge:
		if p.Age != nil {
			return *p.Age, true
		}
	case FieldAnnualIncome:
		if p.AnnualIncome != nil {
			return *p.AnnualIncome, true
		}
	case FieldState:
		if p.State != nil {
			return *p.State, true
		}
	case FieldCasteCategory:
		if p.CasteCategory != nil {
			return *p.CasteCategory, true
		}
	case FieldHasDisability:
		if p.HasDisability != nil {
			return *p.HasDisability, true
		}
	case FieldEnrolledStudent:
		if p.EnrolledStudent != nil {
			return *p.EnrolledStudent, true
		}
	}
	return nil, false
}

// ParseProfile builds a UserProfile from loosely-typed job variables.
// A field of unexpected type is treated as absent and recorded as a warning,
// never as a failure.
func ParseProfile(raw map[string]interface{}) (*UserProfile, []string) {
	if raw == nil {
		return nil, nil
	}

	var warnings []string
	p := &UserProfile{}

	if v, ok := raw[FieldOccupation]; ok {
		if s, ok := v.(string); ok {
			p.Occupation = &s
		} else {
			warnings = append(warnings, typeWarning(FieldOccupation, v))
		}
	}
	if v, ok := raw[FieldAge]; ok {
		switch n := v.(type) {
		case float64:
			age := int(n)
			p.Age = &age
		case int:
			age := n
			p.Age = &age
		default:
			warnings = append(warnings, typeWarning(FieldAge, v))
		}
	}
	if v, ok := raw[FieldAnnualIncome]; ok {
		switch n := v.(type) {
		case float64:
			income := n
			p.AnnualIncome = &income
		case int:
			income := float64(n)
			p.AnnualIncome = &income
		default:
			warnings = append(warnings, typeWarning(FieldAnnualIncome, v))
		}
	}
	if v, ok := raw[FieldState]; ok {
		if s, ok := v.(string); ok {
			p.State = &s
		} else {
			warnings = append(warnings, typeWarning(FieldState, v))
		}
	}
	if v, ok := raw[FieldCasteCategory]; ok {
		if s, ok := v.(string); ok {
			p.CasteCategory = &s
		} else {
			warnings = append(warnings, typeWarning(FieldCasteCategory, v))
		}
	}
	if v, ok := raw[FieldHasDisability]; ok {
		if b, ok := v.(bool); ok {
			p.HasDisability = &b
		} else {
			warnings = append(warnings, typeWarning(FieldHasDisability, v))
		}
	}
	if v, ok := raw[FieldEnrolledStudent]; ok {
		if b, ok := v.(bool); ok {
			p.EnrolledStudent = &b
		} else {
			warnings = append(warnings, typeWarning(FieldEnrolledStudent, v))
		}
	}

	return p, warnings
}

func typeWarning(field string, v interface{}) string {
	return fmt.Sprintf("profile field %q has unexpected type %T; treated as absent", field, v)
}
