// Package engine wires the intent classifier, hierarchy validator,
// eligibility evaluator and explainer behind one facade. Construction is
// fail-fast: any invalid lexicon, catalog or hierarchy aborts startup, so a
// running engine always holds validated, immutable data.
package engine

import (
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/engine/eligibility"
	"scheme-workers/internal/engine/explain"
	"scheme-workers/internal/engine/hierarchy"
	"scheme-workers/internal/engine/intent"
)

// Options configures an Engine. Empty paths select the built-in lexicon and
// catalog.
type Options struct {
	LexiconPath     string
	CatalogPath     string
	DefaultLanguage string
	Logger          logger.Logger
}

// Engine is safe for concurrent use: all state is read-only after New.
type Engine struct {
	classifier *intent.Classifier
	catalog    *eligibility.Catalog
	hierarchy  *hierarchy.Table
	explainer  *explain.Explainer
	logger     logger.Logger
}

// New loads and validates all engine data. Every returned error is a
// ConfigError and must be treated as fatal by the caller.
func New(opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	lexicon := intent.DefaultLexicon()
	if opts.LexiconPath != "" {
		var err error
		lexicon, err = intent.LoadLexicon(opts.LexiconPath)
		if err != nil {
			return nil, err
		}
		log.Info("lexicon loaded", map[string]interface{}{"path": opts.LexiconPath})
	}

	catalog := eligibility.DefaultCatalog()
	if opts.CatalogPath != "" {
		var err error
		catalog, err = eligibility.LoadCatalog(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		log.Info("catalog loaded", map[string]interface{}{
			"path":     opts.CatalogPath,
			"programs": len(catalog.Programs),
		})
	}

	defaultLang := opts.DefaultLanguage
	if defaultLang == "" {
		defaultLang = "en"
	}

	return &Engine{
		classifier: intent.NewClassifier(lexicon),
		catalog:    catalog,
		hierarchy:  hierarchy.New(),
		explainer:  explain.NewExplainer(defaultLang),
		logger:     log,
	}, nil
}

// Classify runs the deterministic intent classifier.
func (e *Engine) Classify(q intent.Query) intent.ClassificationResult {
	return e.classifier.Classify(q)
}

// Hierarchy exposes the administrative hierarchy table.
func (e *Engine) Hierarchy() *hierarchy.Table {
	return e.hierarchy
}

// Catalog exposes the validated program catalog.
func (e *Engine) Catalog() *eligibility.Catalog {
	return e.catalog
}

// ValidateAdminQuery handles a LOCATION or ADMIN query end to end: answer it
// factually if it matches a canonical question shape, otherwise check it for
// terminology contradictions.
func (e *Engine) ValidateAdminQuery(query string) hierarchy.ValidationResult {
	if answer, ok := e.hierarchy.AnswerFactualQuery(query); ok {
		result := hierarchy.ValidationResult{IsValid: true, Response: answer.Text}
		if answer.Caveat != "" {
			result.Warnings = append(result.Warnings, answer.Caveat)
		}
		return result
	}
	return e.hierarchy.ValidateTerminology(query)
}

// EvaluateEligibility parses a loosely-typed profile and scores every catalog
// program against it. Returned warnings describe dropped profile fields.
func (e *Engine) EvaluateEligibility(rawProfile map[string]interface{}) ([]eligibility.EvaluationResult, []string) {
	profile, warnings := eligibility.ParseProfile(rawProfile)
	results := eligibility.Evaluate(profile, e.catalog.Programs)
	return results, warnings
}
