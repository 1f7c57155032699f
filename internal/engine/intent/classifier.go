package intent

import "strings"

// Classifier scores queries against an immutable lexicon. It is a pure
// function of its inputs and safe for concurrent use.
type Classifier struct {
	lexicon *Lexicon
}

func NewClassifier(lexicon *Lexicon) *Classifier {
	return &Classifier{lexicon: lexicon}
}

// Classify returns exactly one intent for the query. It never fails; a query
// matching nothing classifies as OUT_OF_SCOPE with score 0.
//
// Matching is codepoint-substring containment of case-folded keywords in the
// case-folded query. A short keyword can match inside an unrelated longer
// word; that trade-off is intentional and covered by the compatibility tests,
// so do not replace the containment check without re-validating the corpus.
func (c *Classifier) Classify(q Query) ClassificationResult {
	normalized := strings.ToLower(strings.TrimSpace(q.Text))
	if normalized == "" {
		return ClassificationResult{Intent: IntentOutOfScope, MatchScore: 0}
	}

	best := ClassificationResult{Intent: IntentOutOfScope, MatchScore: 0}
	for _, it := range Priority {
		if it == IntentOutOfScope {
			continue
		}

		var matched []string
		for _, kw := range c.lexicon.KeywordsFor(it) {
			if strings.Contains(normalized, kw) {
				matched = append(matched, kw)
			}
		}

		// Strictly greater: on a tie the intent earlier in Priority keeps
		// the slot.
		if len(matched) > best.MatchScore {
			best = ClassificationResult{
				Intent:          it,
				MatchScore:      len(matched),
				MatchedKeywords: matched,
			}
		}
	}

	return best
}
