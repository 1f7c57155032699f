package intent

import (
	"encoding/json"
	"os"
	"strings"

	"scheme-workers/internal/common/errors"
)

// LexiconEntry maps one intent and language to its trigger keywords.
// Keywords are literal phrases matched by substring, not patterns.
type LexiconEntry struct {
	Intent   Intent   `json:"intent"`
	Language string   `json:"language"`
	Keywords []string `json:"keywords"`
}

// Lexicon is the immutable keyword table loaded once at startup.
type Lexicon struct {
	entries []LexiconEntry
}

// NewLexicon builds a lexicon from entries, case-folding every keyword.
// Entries for unknown intents or with empty keyword lists are rejected.
func NewLexicon(entries []LexiconEntry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, errors.NewLexiconInvalidError("lexicon", "no entries")
	}

	known := make(map[Intent]bool, len(Priority))
	for _, it := range Priority {
		known[it] = true
	}

	folded := make([]LexiconEntry, 0, len(entries))
	for _, e := range entries {
		if !known[e.Intent] || e.Intent == IntentOutOfScope {
			return nil, errors.NewLexiconInvalidError("lexicon", "unknown intent: "+string(e.Intent))
		}
		if len(e.Keywords) == 0 {
			return nil, errors.NewLexiconInvalidError("lexicon", "empty keyword list for intent "+string(e.Intent))
		}
		kws := make([]string, len(e.Keywords))
		for i, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, errors.NewLexiconInvalidError("lexicon", "blank keyword for intent "+string(e.Intent))
			}
			kws[i] = kw
		}
		folded = append(folded, LexiconEntry{Intent: e.Intent, Language: e.Language, Keywords: kws})
	}

	return &Lexicon{entries: folded}, nil
}

// LoadLexicon reads a lexicon JSON file. The file is a flat list of entries.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewLexiconInvalidError(path, err.Error())
	}
	var entries []LexiconEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewLexiconInvalidError(path, err.Error())
	}
	return NewLexicon(entries)
}

// KeywordsFor returns every keyword registered for the intent across all
// languages, in entry order. Matching deliberately ignores the query's
// declared language so code-switched input still classifies.
func (l *Lexicon) KeywordsFor(it Intent) []string {
	var out []string
	for _, e := range l.entries {
		if e.Intent == it {
			out = append(out, e.Keywords...)
		}
	}
	return out
}

// Entries returns a copy of the entry list.
func (l *Lexicon) Entries() []LexiconEntry {
	out := make([]LexiconEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// DefaultLexicon returns the built-in English/Hindi/Marathi keyword table
// used when no lexicon file is configured.
func DefaultLexicon() *Lexicon {
	lex, err := NewLexicon(defaultEntries)
	if err != nil {
		// Built-in data; a failure here is a programming error.
		panic(err)
	}
	return lex
}

var defaultEntries = []LexiconEntry{
	{Intent: IntentLocation, Language: "en", Keywords: []string{
		"where", "location", "address", "nearest office", "how far", "directions",
	}},
	{Intent: IntentLocation, Language: "hi", Keywords: []string{
		"kahan", "kaha hai", "कहां", "कहाँ", "पता बताओ", "kitni door",
	}},
	{Intent: IntentLocation, Language: "mr", Keywords: []string{
		"kuthe", "कुठे", "पत्ता", "किती लांब",
	}},

	{Intent: IntentScheme, Language: "en", Keywords: []string{
		"scheme", "benefit", "pension", "subsidy", "welfare", "ration",
	}},
	{Intent: IntentScheme, Language: "hi", Keywords: []string{
		"yojana", "yojna", "योजना", "लाभ", "labh", "सरकारी मदद", "पेंशन",
	}},
	{Intent: IntentScheme, Language: "mr", Keywords: []string{
		"योजना", "लाभ", "अनुदान", "निवृत्तीवेतन",
	}},

	{Intent: IntentScholarship, Language: "en", Keywords: []string{
		"scholarship", "stipend", "fee waiver", "student grant",
	}},
	{Intent: IntentScholarship, Language: "hi", Keywords: []string{
		"chatravritti", "छात्रवृत्ति", "वजीफा", "padhai ke liye paisa",
	}},
	{Intent: IntentScholarship, Language: "mr", Keywords: []string{
		"shishyavrutti", "शिष्यवृत्ती", "विद्यार्थी मदत",
	}},

	{Intent: IntentPlatformHelp, Language: "en", Keywords: []string{
		"how to use", "help me use", "register", "login", "password", "app not working",
	}},
	{Intent: IntentPlatformHelp, Language: "hi", Keywords: []string{
		"kaise use", "kaise chalaye", "मदद चाहिए", "madad chahiye", "खाता कैसे",
	}},
	{Intent: IntentPlatformHelp, Language: "mr", Keywords: []string{
		"kase vaparayche", "कसे वापरायचे", "मदत हवी",
	}},

	{Intent: IntentAdmin, Language: "en", Keywords: []string{
		"district", "tehsil", "taluka", "taluk", "mandal", "gram panchayat",
		"village", "collector", "sarpanch", "hierarchy", "how many states",
	}},
	{Intent: IntentAdmin, Language: "hi", Keywords: []string{
		"जिला", "तहसील", "ग्राम पंचायत", "गांव", "सरपंच", "kitne rajya", "kitne jile",
	}},
	{Intent: IntentAdmin, Language: "mr", Keywords: []string{
		"जिल्हा", "तालुका", "ग्रामपंचायत", "गाव", "किती जिल्हे",
	}},

	{Intent: IntentExplanation, Language: "en", Keywords: []string{
		"why", "explain", "reason", "what does it mean", "how was this decided",
	}},
	{Intent: IntentExplanation, Language: "hi", Keywords: []string{
		"kyon", "kyu", "क्यों", "कारण", "karan batao", "matlab kya",
	}},
	{Intent: IntentExplanation, Language: "mr", Keywords: []string{
		"ka nahi", "का नाही", "कारण सांगा", "mhanje kay",
	}},
}
