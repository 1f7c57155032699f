package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Table Construction Tests
// ==========================

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name        string
		levels      []Level
		aliases     map[string]string
		equivalents []string
		wantErr     bool
	}{
		{
			name:    "no levels",
			levels:  nil,
			wantErr: true,
		},
		{
			name: "non-contiguous indexes",
			levels: []Level{
				{Index: 0, Name: "country", Count: 1},
				{Index: 2, Name: "state", Count: 28},
			},
			wantErr: true,
		},
		{
			name: "alias to unknown level",
			levels: []Level{
				{Index: 0, Name: "country", Count: 1},
			},
			aliases: map[string]string{"zilla": "district"},
			wantErr: true,
		},
		{
			name: "equivalence term missing from aliases",
			levels: []Level{
				{Index: 0, Name: "country", Count: 1},
			},
			equivalents: []string{"tehsil"},
			wantErr:     true,
		},
		{
			name: "valid table",
			levels: []Level{
				{Index: 0, Name: "country", Count: 1},
				{Index: 1, Name: "state", Count: 28},
			},
			aliases: map[string]string{"rajya": "state"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.levels, tt.aliases, tt.equivalents)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, table)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, table)
			}
		})
	}
}

func TestTable_Resolve(t *testing.T) {
	table := New()

	tests := []struct {
		label     string
		wantIndex int
		wantOK    bool
	}{
		{"state", 1, true},
		{"  State ", 1, true},
		{"RAJYA", 1, true},
		{"tehsil", 3, true},
		{"taluka", 3, true},
		{"mandal", 3, true},
		{"जिल्हा", 2, true},
		{"gram panchayat", 5, true},
		{"continent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			idx, ok := table.Resolve(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

// ==========================
// Order Validation Tests
// ==========================

func TestTable_ValidateOrder(t *testing.T) {
	table := New()

	tests := []struct {
		name      string
		labels    []string
		wantValid bool
		wantWarn  int
	}{
		{
			name:      "correct wide to narrow order",
			labels:    []string{"State", "District", "Tehsil", "Village"},
			wantValid: true,
		},
		{
			name:      "inverted pair",
			labels:    []string{"District", "State", "Village"},
			wantValid: false,
		},
		{
			name:      "regional aliases resolve before comparison",
			labels:    []string{"rajya", "zilla", "taluka"},
			wantValid: true,
		},
		{
			name:      "unknown label is skipped with a warning",
			labels:    []string{"State", "Province", "District"},
			wantValid: true,
			wantWarn:  1,
		},
		{
			name:      "single label is trivially ordered",
			labels:    []string{"district"},
			wantValid: true,
		},
		{
			name:      "empty input is trivially ordered",
			labels:    nil,
			wantValid: true,
		},
		{
			name:      "equal levels under different names are not an inversion",
			labels:    []string{"district", "tehsil", "taluka"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := table.ValidateOrder(tt.labels)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Len(t, result.Warnings, tt.wantWarn)
			assert.NotEmpty(t, result.Response)
			if !tt.wantValid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}

func TestTable_ValidateOrder_ReportsEveryInversion(t *testing.T) {
	table := New()

	result := table.ValidateOrder([]string{"village", "district", "state"})

	assert.False(t, result.IsValid)
	// village>district, village>state, district>state: three inverted pairs.
	assert.Len(t, result.Errors, 3)
}

// ==========================
// Terminology Tests
// ==========================

func TestTable_ValidateTerminology(t *testing.T) {
	table := New()

	tests := []struct {
		name      string
		query     string
		wantValid bool
	}{
		{
			name:      "tehsil before taluka is a contradiction",
			query:     "is Tehsil before Taluka?",
			wantValid: false,
		},
		{
			name:      "mandal under taluk is a contradiction",
			query:     "does a mandal come under a taluk",
			wantValid: false,
		},
		{
			name:      "two terms without ordering words is fine",
			query:     "tehsil is also called taluka",
			wantValid: true,
		},
		{
			name:      "single term with ordering word is fine",
			query:     "is tehsil after district",
			wantValid: true,
		},
		{
			name:      "no equivalence terms at all",
			query:     "is district before state",
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := table.ValidateTerminology(tt.query)

			assert.Equal(t, tt.wantValid, result.IsValid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.Errors)
				assert.Contains(t, strings.ToLower(result.Response), "same level")
			}
		})
	}
}

func TestTable_ValidateTerminology_NamesOnlyQueriedTerms(t *testing.T) {
	table := New()

	// "taluka" embeds "taluk"; only whole words may be reported, so the
	// message names the two queried terms and nothing else.
	result := table.ValidateTerminology("is Tehsil before Taluka?")

	require.False(t, result.IsValid)
	assert.True(t, strings.HasPrefix(result.Response, "tehsil and taluka are"), result.Response)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "tehsil and taluka all name"), result.Errors[0])
}

// ==========================
// Factual Query Tests
// ==========================

func TestTable_AnswerFactualQuery(t *testing.T) {
	table := New()

	tests := []struct {
		name        string
		query       string
		wantOK      bool
		wantApprox  bool
		responseHas string
	}{
		{
			name:        "state count is exact",
			query:       "how many states are there in India?",
			wantOK:      true,
			wantApprox:  false,
			responseHas: "28 states",
		},
		{
			name:       "district count is approximate with caveat",
			query:      "how many districts does India have",
			wantOK:     true,
			wantApprox: true,
		},
		{
			name:       "hindi count question",
			query:      "भारत में कितने जिला हैं",
			wantOK:     true,
			wantApprox: true,
		},
		{
			name:        "full hierarchy request",
			query:       "what is the hierarchy of administrative levels",
			wantOK:      true,
			responseHas: "country",
		},
		{
			name:   "gram panchayat count picks the long alias",
			query:  "how many gram panchayat are there",
			wantOK: true,
			responseHas: "gram panchayat",
			wantApprox:  true,
		},
		{
			name:   "not a factual question",
			query:  "which scheme is best for me",
			wantOK: false,
		},
		{
			name:   "empty query",
			query:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, ok := table.AnswerFactualQuery(tt.query)

			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantApprox, answer.Approximate)
			if tt.wantApprox {
				assert.Contains(t, answer.Text, "approximately")
				assert.NotEmpty(t, answer.Caveat)
			}
			if tt.responseHas != "" {
				assert.Contains(t, answer.Text, tt.responseHas)
			}
		})
	}
}
