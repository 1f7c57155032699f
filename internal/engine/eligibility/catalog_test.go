package eligibility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-workers/internal/common/errors"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalog_Valid(t *testing.T) {
	path := writeCatalogFile(t, `{
		"version": "1",
		"lastUpdated": "2026-01-15",
		"programs": [
			{
				"programId": "test-scheme",
				"displayName": "Test Scheme",
				"category": "income-support",
				"criteria": [
					{"field": "age", "comparator": "greaterOrEqual", "expected": 18, "weight": 1, "mandatory": true,
					 "unsatisfied": {"en": "Must be an adult."}},
					{"field": "annual_income", "comparator": "lessOrEqual", "expected": 100000, "weight": 3}
				]
			}
		]
	}`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Programs, 1)

	// Weights are normalized to sum to 1.0 at load time.
	criteria := catalog.Programs[0].Criteria
	assert.InDelta(t, 0.25, criteria[0].Weight, 1e-9)
	assert.InDelta(t, 0.75, criteria[1].Weight, 1e-9)
	assert.True(t, criteria[0].Mandatory)
	assert.Equal(t, "Must be an adult.", criteria[0].Unsatisfied["en"])
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "not json at all",
		},
		{
			name:    "no programs key",
			content: `{"version": "1"}`,
		},
		{
			name:    "empty programs",
			content: `{"programs": []}`,
		},
		{
			name: "program without criteria",
			content: `{"programs": [
				{"programId": "x", "displayName": "X", "criteria": []}
			]}`,
		},
		{
			name: "zero weight",
			content: `{"programs": [
				{"programId": "x", "displayName": "X", "criteria": [
					{"field": "age", "comparator": "equals", "expected": 18, "weight": 0}
				]}
			]}`,
		},
		{
			name: "negative weight",
			content: `{"programs": [
				{"programId": "x", "displayName": "X", "criteria": [
					{"field": "age", "comparator": "equals", "expected": 18, "weight": -1}
				]}
			]}`,
		},
		{
			name: "unknown comparator",
			content: `{"programs": [
				{"programId": "x", "displayName": "X", "criteria": [
					{"field": "age", "comparator": "matches", "expected": 18, "weight": 1}
				]}
			]}`,
		},
		{
			name: "duplicate program ids",
			content: `{"programs": [
				{"programId": "x", "displayName": "X", "criteria": [
					{"field": "age", "comparator": "equals", "expected": 18, "weight": 1}
				]},
				{"programId": "x", "displayName": "X2", "criteria": [
					{"field": "age", "comparator": "equals", "expected": 18, "weight": 1}
				]}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.content)

			catalog, err := LoadCatalog(path)

			assert.Nil(t, catalog)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err))
			assert.Contains(t, err.Error(), "CATALOG_INVALID")
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	assert.Nil(t, catalog)
	assert.True(t, errors.IsConfigError(err))
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.NotEmpty(t, catalog.Programs)
	assert.NoError(t, ValidateCatalog(catalog))

	for _, rule := range catalog.Programs {
		var total float64
		for _, cr := range rule.Criteria {
			total += cr.Weight
			// Every criterion ships explanation templates in all three
			// supported languages.
			for _, lang := range []string{"en", "hi", "mr"} {
				assert.Contains(t, cr.Unsatisfied, lang,
					"program %s field %s missing %s template", rule.ProgramID, cr.Field, lang)
			}
		}
		assert.InDelta(t, 1.0, total, 1e-9, "program %s weights not normalized", rule.ProgramID)
	}
}

func TestNormalizeWeights(t *testing.T) {
	catalog := &Catalog{Programs: []ProgramRule{
		{
			ProgramID:   "p",
			DisplayName: "P",
			Criteria: []Criterion{
				{Field: "age", Comparator: CompGreaterOrEqual, Expected: 18, Weight: 2},
				{Field: "state", Comparator: CompEquals, Expected: "Goa", Weight: 6},
			},
		},
	}}

	NormalizeWeights(catalog)

	assert.InDelta(t, 0.25, catalog.Programs[0].Criteria[0].Weight, 1e-9)
	assert.InDelta(t, 0.75, catalog.Programs[0].Criteria[1].Weight, 1e-9)
}
