package validateadminquery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/engine"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	eng, err := engine.New(engine.Options{DefaultLanguage: "en"})
	require.NoError(t, err)
	return NewHandler(
		&Config{Timeout: 5 * time.Second},
		eng,
		logger.NewZapAdapter(zaptest.NewLogger(t)),
	)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_LevelOrdering(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name      string
		labels    []string
		wantValid bool
	}{
		{
			name:      "correct order",
			labels:    []string{"State", "District", "Village"},
			wantValid: true,
		},
		{
			name:      "inverted order",
			labels:    []string{"District", "State", "Village"},
			wantValid: false,
		},
		{
			name:      "aliases resolve",
			labels:    []string{"rajya", "zilla", "gaon"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{LevelLabels: tt.labels})

			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, output.IsValid)
			assert.False(t, output.Factual)
			assert.NotEmpty(t, output.Response)
			if !tt.wantValid {
				assert.NotEmpty(t, output.Errors)
			}
		})
	}
}

func TestHandler_Execute_FactualQuestions(t *testing.T) {
	handler := createTestHandler(t)

	t.Run("exact state count", func(t *testing.T) {
		output, err := handler.Execute(context.Background(),
			&Input{QueryText: "how many states are in India"})

		require.NoError(t, err)
		assert.True(t, output.IsValid)
		assert.True(t, output.Factual)
		assert.False(t, output.Approximate)
		assert.Contains(t, output.Response, "28")
	})

	t.Run("approximate district count carries caveat", func(t *testing.T) {
		output, err := handler.Execute(context.Background(),
			&Input{QueryText: "how many districts are in India"})

		require.NoError(t, err)
		assert.True(t, output.Factual)
		assert.True(t, output.Approximate)
		assert.NotEmpty(t, output.Warnings)
	})
}

func TestHandler_Execute_TerminologyContradiction(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(),
		&Input{QueryText: "is tehsil before taluka"})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.False(t, output.Factual)
	assert.NotEmpty(t, output.Errors)
	assert.Contains(t, output.Response, "same level")
}

func TestHandler_Execute_PlainQueryPassesThrough(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(),
		&Input{QueryText: "who is the collector of my district"})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Empty(t, output.Errors)
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_Execute_InvalidInputs(t *testing.T) {
	handler := createTestHandler(t)

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("empty input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{})
		assert.Error(t, err)
		assert.Nil(t, output)
	})
}

func TestHandler_Execute_LabelsTakePrecedenceOverText(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "how many states are in India",
		LevelLabels: []string{"district", "state"},
	})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.False(t, output.Factual)
}
