// Package intent classifies free-form citizen queries into a fixed taxonomy
// using deterministic keyword lookup. No model, no tokenizer: case-folded
// substring containment against a per-language lexicon, which tolerates
// inflected Hindi/Marathi/English forms without a morphological analyzer.
package intent

// Intent is the fixed category a query is classified into.
type Intent string

const (
	IntentLocation     Intent = "LOCATION"
	IntentScheme       Intent = "SCHEME"
	IntentScholarship  Intent = "SCHOLARSHIP"
	IntentPlatformHelp Intent = "PLATFORM_HELP"
	IntentAdmin        Intent = "ADMIN"
	IntentExplanation  Intent = "EXPLANATION"
	IntentOutOfScope   Intent = "OUT_OF_SCOPE"
)

// Priority is the classification priority order. When two intents score the
// same keyword count, the one listed earlier wins. The order is part of the
// classifier contract, not an accident of map iteration.
var Priority = []Intent{
	IntentLocation,
	IntentScheme,
	IntentScholarship,
	IntentPlatformHelp,
	IntentAdmin,
	IntentExplanation,
	IntentOutOfScope,
}

// Query is one immutable classification input.
type Query struct {
	Text        string `json:"text"`
	LanguageTag string `json:"languageTag"`
}

// ClassificationResult is the outcome of classifying a single query.
type ClassificationResult struct {
	Intent          Intent   `json:"intent"`
	MatchScore      int      `json:"matchScore"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}
