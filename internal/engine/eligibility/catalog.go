package eligibility

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"scheme-workers/internal/common/errors"
)

// Catalog is the process-lifetime program rule set. It is validated once at
// load and read-only afterwards.
type Catalog struct {
	Version     string        `json:"version"`
	LastUpdated string        `json:"lastUpdated"`
	Programs    []ProgramRule `json:"programs"`
}

// catalogSchema is the structural contract for catalog files, checked with
// gojsonschema before decoding so malformed files fail with a precise
// location instead of a partial unmarshal.
var catalogSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"programs"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string"},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"programs": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"programId", "displayName", "criteria"},
				"properties": map[string]interface{}{
					"programId":   map[string]interface{}{"type": "string", "minLength": 1},
					"displayName": map[string]interface{}{"type": "string", "minLength": 1},
					"category":    map[string]interface{}{"type": "string"},
					"criteria": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items": map[string]interface{}{
							"type":     "object",
							"required": []interface{}{"field", "comparator", "expected", "weight"},
							"properties": map[string]interface{}{
								"field": map[string]interface{}{"type": "string", "minLength": 1},
								"comparator": map[string]interface{}{
									"type": "string",
									"enum": []interface{}{"equals", "greaterOrEqual", "lessOrEqual", "inSet", "boolean"},
								},
								"weight":    map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
								"mandatory": map[string]interface{}{"type": "boolean"},
								"unsatisfied": map[string]interface{}{
									"type": "object",
									"additionalProperties": map[string]interface{}{
										"type": "string",
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

// LoadCatalog reads and validates a catalog JSON file. Any structural or
// semantic problem is a fatal ConfigError: the engine must not serve with a
// partially valid catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogInvalidError(path, err.Error())
	}

	schemaLoader := gojsonschema.NewGoLoader(catalogSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, errors.NewCatalogInvalidError(path, err.Error())
	}
	if !res.Valid() {
		msgs := make([]string, len(res.Errors()))
		for i, desc := range res.Errors() {
			msgs[i] = desc.String()
		}
		return nil, errors.NewCatalogInvalidError(path, fmt.Sprintf("schema violations: %v", msgs))
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.NewCatalogInvalidError(path, err.Error())
	}

	if err := ValidateCatalog(&catalog); err != nil {
		return nil, err
	}
	NormalizeWeights(&catalog)
	return &catalog, nil
}

// ValidateCatalog applies the semantic invariants: every program has at
// least one criterion, every weight is positive, and program ids are unique.
func ValidateCatalog(catalog *Catalog) error {
	if len(catalog.Programs) == 0 {
		return errors.NewCatalogInvalidError("catalog", "no programs")
	}
	seen := make(map[string]bool, len(catalog.Programs))
	for _, rule := range catalog.Programs {
		if rule.ProgramID == "" {
			return errors.NewCatalogInvalidError("catalog", "program with empty id")
		}
		if seen[rule.ProgramID] {
			return errors.NewCatalogInvalidError("catalog", "duplicate program id: "+rule.ProgramID)
		}
		seen[rule.ProgramID] = true
		if len(rule.Criteria) == 0 {
			return errors.NewCatalogInvalidError("catalog", "program "+rule.ProgramID+" has no criteria")
		}
		for _, cr := range rule.Criteria {
			if cr.Weight <= 0 {
				return errors.NewCatalogInvalidError("catalog",
					fmt.Sprintf("program %s criterion %s has non-positive weight %v", rule.ProgramID, cr.Field, cr.Weight))
			}
		}
	}
	return nil
}

// NormalizeWeights rescales each program's criterion weights so they sum to
// 1.0, making the maximum achievable score exactly 1.0.
func NormalizeWeights(catalog *Catalog) {
	for pi := range catalog.Programs {
		var total float64
		for _, cr := range catalog.Programs[pi].Criteria {
			total += cr.Weight
		}
		if total == 0 {
			continue
		}
		for ci := range catalog.Programs[pi].Criteria {
			catalog.Programs[pi].Criteria[ci].Weight /= total
		}
	}
}

// DefaultCatalog returns the built-in scheme catalog used when no catalog
// file is configured. Weights arrive normalized.
func DefaultCatalog() *Catalog {
	catalog := &Catalog{
		Version:     "builtin-1",
		LastUpdated: "2026-07-01",
		Programs:    defaultPrograms(),
	}
	if err := ValidateCatalog(catalog); err != nil {
		panic(err)
	}
	NormalizeWeights(catalog)
	return catalog
}

func defaultPrograms() []ProgramRule {
	return []ProgramRule{
		{
			ProgramID:   "pm-kisan",
			DisplayName: "PM-KISAN Samman Nidhi",
			Category:    "income-support",
			Criteria: []Criterion{
				{
					Field: FieldOccupation, Comparator: CompEquals, Expected: "farmer",
					Weight: 2, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "PM-KISAN is only for land-holding farmer families.",
						"hi": "पीएम-किसान केवल भूमिधारक किसान परिवारों के लिए है।",
						"mr": "पीएम-किसान फक्त शेतजमीनधारक शेतकरी कुटुंबांसाठी आहे.",
					},
				},
				{
					Field: FieldAnnualIncome, Comparator: CompLessOrEqual, Expected: 200000.0,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "Annual family income must not exceed Rs. 2,00,000.",
						"hi": "वार्षिक पारिवारिक आय ₹2,00,000 से अधिक नहीं होनी चाहिए।",
						"mr": "वार्षिक कौटुंबिक उत्पन्न ₹2,00,000 पेक्षा जास्त नसावे.",
					},
				},
			},
		},
		{
			ProgramID:   "nmms-scholarship",
			DisplayName: "National Means-cum-Merit Scholarship",
			Category:    "scholarship",
			Criteria: []Criterion{
				{
					Field: FieldEnrolledStudent, Comparator: CompBoolean, Expected: true,
					Weight: 2, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "Only students currently enrolled in a recognized school can apply.",
						"hi": "केवल मान्यता प्राप्त विद्यालय में पढ़ रहे विद्यार्थी ही आवेदन कर सकते हैं।",
						"mr": "फक्त मान्यताप्राप्त शाळेत शिकणारे विद्यार्थीच अर्ज करू शकतात.",
					},
				},
				{
					Field: FieldAnnualIncome, Comparator: CompLessOrEqual, Expected: 350000.0,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "Parental income must not exceed Rs. 3,50,000 per year.",
						"hi": "माता-पिता की आय ₹3,50,000 प्रति वर्ष से अधिक नहीं होनी चाहिए।",
						"mr": "पालकांचे उत्पन्न दरवर्षी ₹3,50,000 पेक्षा जास्त नसावे.",
					},
				},
				{
					Field: FieldAge, Comparator: CompLessOrEqual, Expected: 15,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "The scholarship is for students up to class VIII (typically 15 years or younger).",
						"hi": "यह छात्रवृत्ति कक्षा आठ तक के विद्यार्थियों के लिए है (सामान्यतः 15 वर्ष या कम)।",
						"mr": "ही शिष्यवृत्ती इयत्ता आठवीपर्यंतच्या विद्यार्थ्यांसाठी आहे (साधारण 15 वर्षे किंवा कमी).",
					},
				},
			},
		},
		{
			ProgramID:   "post-matric-scst",
			DisplayName: "Post-Matric Scholarship for SC/ST Students",
			Category:    "scholarship",
			Criteria: []Criterion{
				{
					Field: FieldCasteCategory, Comparator: CompInSet, Expected: []string{"SC", "ST"},
					Weight: 2, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "This scholarship is reserved for SC and ST category students.",
						"hi": "यह छात्रवृत्ति अनुसूचित जाति और अनुसूचित जनजाति वर्ग के विद्यार्थियों के लिए आरक्षित है।",
						"mr": "ही शिष्यवृत्ती अनुसूचित जाती व अनुसूचित जमाती प्रवर्गाच्या विद्यार्थ्यांसाठी राखीव आहे.",
					},
				},
				{
					Field: FieldEnrolledStudent, Comparator: CompBoolean, Expected: true,
					Weight: 1, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "You must be enrolled in a post-matriculation course.",
						"hi": "आपको मैट्रिक के बाद के पाठ्यक्रम में नामांकित होना आवश्यक है।",
						"mr": "तुम्ही मॅट्रिकनंतरच्या अभ्यासक्रमात प्रवेश घेतलेला असणे आवश्यक आहे.",
					},
				},
				{
					Field: FieldAnnualIncome, Comparator: CompLessOrEqual, Expected: 250000.0,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "Family income must not exceed Rs. 2,50,000 per year.",
						"hi": "पारिवारिक आय ₹2,50,000 प्रति वर्ष से अधिक नहीं होनी चाहिए।",
						"mr": "कौटुंबिक उत्पन्न दरवर्षी ₹2,50,000 पेक्षा जास्त नसावे.",
					},
				},
			},
		},
		{
			ProgramID:   "ignd-pension",
			DisplayName: "Indira Gandhi National Disability Pension",
			Category:    "pension",
			Criteria: []Criterion{
				{
					Field: FieldHasDisability, Comparator: CompBoolean, Expected: true,
					Weight: 2, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "The pension is only for persons with a severe or multiple disability.",
						"hi": "यह पेंशन केवल गंभीर या बहु-विकलांगता वाले व्यक्तियों के लिए है।",
						"mr": "हे निवृत्तीवेतन फक्त तीव्र किंवा बहुविकलांगता असलेल्या व्यक्तींसाठी आहे.",
					},
				},
				{
					Field: FieldAge, Comparator: CompGreaterOrEqual, Expected: 18,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "Applicants must be at least 18 years old.",
						"hi": "आवेदक की आयु कम से कम 18 वर्ष होनी चाहिए।",
						"mr": "अर्जदाराचे वय किमान 18 वर्षे असावे.",
					},
				},
			},
		},
		{
			ProgramID:   "mjpjay",
			DisplayName: "Mahatma Jyotiba Phule Jan Arogya Yojana",
			Category:    "health",
			Criteria: []Criterion{
				{
					Field: FieldState, Comparator: CompEquals, Expected: "Maharashtra",
					Weight: 2, Mandatory: true,
					Unsatisfied: map[string]string{
						"en": "This health cover is only for residents of Maharashtra.",
						"hi": "यह स्वास्थ्य सुरक्षा केवल महाराष्ट्र के निवासियों के लिए है।",
						"mr": "ही आरोग्य योजना फक्त महाराष्ट्रातील रहिवाशांसाठी आहे.",
					},
				},
				{
					Field: FieldAnnualIncome, Comparator: CompLessOrEqual, Expected: 100000.0,
					Weight: 1,
					Unsatisfied: map[string]string{
						"en": "Annual family income must not exceed Rs. 1,00,000.",
						"hi": "वार्षिक पारिवारिक आय ₹1,00,000 से अधिक नहीं होनी चाहिए।",
						"mr": "वार्षिक कौटुंबिक उत्पन्न ₹1,00,000 पेक्षा जास्त नसावे.",
					},
				},
			},
		},
	}
}
