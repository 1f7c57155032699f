// Package hierarchy validates assertions about the Indian administrative
// hierarchy and answers a small set of canonical factual questions. The
// hierarchy table is fixed at load time and totally ordered.
package hierarchy

import (
	"strings"

	"scheme-workers/internal/common/errors"
)

// Level is one rung of the administrative hierarchy. Index 0 is the widest
// (country); higher indexes are narrower.
type Level struct {
	Index       int
	Name        string
	Count       int
	Approximate bool
}

// Table holds the ordered hierarchy, the alias map from regional labels to
// canonical indexes, and the terminology equivalence set.
type Table struct {
	levels      []Level
	aliases     map[string]int
	equivalents []string
}

// Levels returns the ordered hierarchy levels.
func (t *Table) Levels() []Level {
	out := make([]Level, len(t.levels))
	copy(out, t.levels)
	return out
}

// Equivalents returns the regional terms that all denote the sub-district
// level.
func (t *Table) Equivalents() []string {
	out := make([]string, len(t.equivalents))
	copy(out, t.equivalents)
	return out
}

// Resolve maps a free-form level label to its canonical index.
func (t *Table) Resolve(label string) (int, bool) {
	idx, ok := t.aliases[strings.ToLower(strings.TrimSpace(label))]
	return idx, ok
}

// New returns the built-in hierarchy table.
func New() *Table {
	t, err := NewTable(defaultLevels, defaultAliases, defaultEquivalents)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds and checks a hierarchy table. Levels must be contiguous
// from index 0 and every alias must resolve to a declared level.
func NewTable(levels []Level, aliases map[string]string, equivalents []string) (*Table, error) {
	if len(levels) == 0 {
		return nil, errors.NewHierarchyInvalidError("hierarchy", "no levels")
	}

	nameToIndex := make(map[string]int, len(levels))
	for i, lv := range levels {
		if lv.Index != i {
			return nil, errors.NewHierarchyInvalidError("hierarchy", "levels must be contiguous from 0")
		}
		nameToIndex[strings.ToLower(lv.Name)] = lv.Index
	}

	resolved := make(map[string]int, len(aliases)+len(levels))
	for name, idx := range nameToIndex {
		resolved[name] = idx
	}
	for alias, levelName := range aliases {
		idx, ok := nameToIndex[strings.ToLower(levelName)]
		if !ok {
			return nil, errors.NewHierarchyInvalidError("hierarchy", "alias "+alias+" points at unknown level "+levelName)
		}
		resolved[strings.ToLower(alias)] = idx
	}

	for _, term := range equivalents {
		if _, ok := resolved[strings.ToLower(term)]; !ok {
			return nil, errors.NewHierarchyInvalidError("hierarchy", "equivalence term not in alias table: "+term)
		}
	}

	return &Table{levels: levels, aliases: resolved, equivalents: equivalents}, nil
}

// Census-derived counts. Everything below state/UT drifts as districts and
// blocks get reorganized, so those are flagged approximate.
var defaultLevels = []Level{
	{Index: 0, Name: "country", Count: 1},
	{Index: 1, Name: "state", Count: 28},
	{Index: 2, Name: "district", Count: 788, Approximate: true},
	{Index: 3, Name: "sub-district", Count: 6500, Approximate: true},
	{Index: 4, Name: "block", Count: 7250, Approximate: true},
	{Index: 5, Name: "gram panchayat", Count: 255000, Approximate: true},
	{Index: 6, Name: "village", Count: 664000, Approximate: true},
}

var defaultAliases = map[string]string{
	"india": "country",
	"desh":  "country",
	"देश":   "country",

	"states":          "state",
	"rajya":           "state",
	"राज्य":           "state",
	"ut":              "state",
	"union territory": "state",

	"districts": "district",
	"zilla":     "district",
	"zila":      "district",
	"jilha":     "district",
	"जिला":      "district",
	"जिल्हा":    "district",

	"subdistrict": "sub-district",
	"tehsil":      "sub-district",
	"taluka":      "sub-district",
	"taluk":       "sub-district",
	"mandal":      "sub-district",
	"तहसील":       "sub-district",
	"तालुका":      "sub-district",

	"blocks":           "block",
	"vikas khand":      "block",
	"panchayat samiti": "block",
	"ब्लॉक":            "block",

	"grampanchayat": "gram panchayat",
	"ग्राम पंचायत":  "gram panchayat",
	"ग्रामपंचायत":   "gram panchayat",

	"villages": "village",
	"gaon":     "village",
	"gav":      "village",
	"गांव":     "village",
	"गाव":      "village",
}

// The four regional names for the sub-district level. They are synonyms,
// never distinct rungs.
var defaultEquivalents = []string{"tehsil", "taluka", "taluk", "mandal"}
