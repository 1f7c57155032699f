package explain

// templateSet holds every fixed phrase the explainer emits in one language.
// Criterion-specific reasons come from the catalog, not from here.
type templateSet struct {
	EligibleHeader      string
	LikelyHeader        string
	PartialHeader       string
	IneligibleHeader    string
	IndeterminateHeader string
	MissingFieldsLead   string
	FailedLead          string
	SatisfiedNote       string
	OutOfScope          string
	NoPrograms          string
	FieldNames          map[string]string
}

// templates is keyed by BCP 47 primary language subtag. Adding a language is
// a data change only.
var templates = map[string]templateSet{
	"en": {
		EligibleHeader:      "Good news! You appear to be eligible for %s.",
		LikelyHeader:        "You are likely eligible for %s.",
		PartialHeader:       "You may be partially eligible for %s.",
		IneligibleHeader:    "Unfortunately, you do not appear to be eligible for %s.",
		IndeterminateHeader: "We need more information to assess your eligibility for %s.",
		MissingFieldsLead:   "Please provide: %s.",
		FailedLead:          "Reasons: %s",
		SatisfiedNote:       "You meet %d of the checked conditions.",
		OutOfScope:          "I can help with government schemes, scholarships, and questions about Indian administrative regions. Could you rephrase your question?",
		NoPrograms:          "No matching programs were found for your request.",
		FieldNames: map[string]string{
			"occupation":       "your occupation",
			"age":              "your age",
			"annual_income":    "your annual family income",
			"state":            "your state of residence",
			"caste_category":   "your caste category",
			"has_disability":   "whether you have a certified disability",
			"enrolled_student": "whether you are currently enrolled as a student",
		},
	},
	"hi": {
		EligibleHeader:      "खुशखबरी! आप %s के लिए पात्र प्रतीत होते हैं।",
		LikelyHeader:        "आप संभवतः %s के लिए पात्र हैं।",
		PartialHeader:       "आप %s के लिए आंशिक रूप से पात्र हो सकते हैं।",
		IneligibleHeader:    "खेद है, आप %s के लिए पात्र प्रतीत नहीं होते।",
		IndeterminateHeader: "%s के लिए आपकी पात्रता जांचने हेतु हमें और जानकारी चाहिए।",
		MissingFieldsLead:   "कृपया यह जानकारी दें: %s।",
		FailedLead:          "कारण: %s",
		SatisfiedNote:       "आप जांची गई %d शर्तें पूरी करते हैं।",
		OutOfScope:          "मैं सरकारी योजनाओं, छात्रवृत्तियों और भारतीय प्रशासनिक क्षेत्रों से जुड़े प्रश्नों में मदद कर सकता हूँ। कृपया अपना प्रश्न दोबारा पूछें।",
		NoPrograms:          "आपके अनुरोध से मेल खाती कोई योजना नहीं मिली।",
		FieldNames: map[string]string{
			"occupation":       "आपका व्यवसाय",
			"age":              "आपकी आयु",
			"annual_income":    "आपकी वार्षिक पारिवारिक आय",
			"state":            "आपका निवास राज्य",
			"caste_category":   "आपकी जाति श्रेणी",
			"has_disability":   "क्या आपके पास विकलांगता प्रमाणपत्र है",
			"enrolled_student": "क्या आप वर्तमान में विद्यार्थी हैं",
		},
	},
	"mr": {
		EligibleHeader:      "आनंदाची बातमी! तुम्ही %s साठी पात्र दिसता.",
		LikelyHeader:        "तुम्ही बहुधा %s साठी पात्र आहात.",
		PartialHeader:       "तुम्ही %s साठी अंशतः पात्र असू शकता.",
		IneligibleHeader:    "क्षमस्व, तुम्ही %s साठी पात्र दिसत नाही.",
		IndeterminateHeader: "%s साठी तुमची पात्रता तपासण्यासाठी आम्हाला अधिक माहिती हवी आहे.",
		MissingFieldsLead:   "कृपया ही माहिती द्या: %s.",
		FailedLead:          "कारणे: %s",
		SatisfiedNote:       "तपासलेल्या %d अटी तुम्ही पूर्ण करता.",
		OutOfScope:          "मी सरकारी योजना, शिष्यवृत्ती आणि भारतीय प्रशासकीय विभागांबद्दलच्या प्रश्नांत मदत करू शकतो. कृपया तुमचा प्रश्न पुन्हा विचाराल का?",
		NoPrograms:          "तुमच्या विनंतीशी जुळणारी कोणतीही योजना सापडली नाही.",
		FieldNames: map[string]string{
			"occupation":       "तुमचा व्यवसाय",
			"age":              "तुमचे वय",
			"annual_income":    "तुमचे वार्षिक कौटुंबिक उत्पन्न",
			"state":            "तुमचे निवासाचे राज्य",
			"caste_category":   "तुमचा जात प्रवर्ग",
			"has_disability":   "तुमच्याकडे अपंगत्व प्रमाणपत्र आहे का",
			"enrolled_student": "तुम्ही सध्या विद्यार्थी आहात का",
		},
	},
}

// SupportedLanguages lists the language tags templates exist for.
func SupportedLanguages() []string {
	out := make([]string, 0, len(templates))
	for tag := range templates {
		out = append(out, tag)
	}
	return out
}
