package evaluateeligibility

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scheme-workers/internal/common/errors"
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/engine"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		QueryTimeout: 2 * time.Second,
	}
}

func createTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Options{DefaultLanguage: "en"})
	require.NoError(t, err)
	return eng
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

var profileColumns = []string{
	"occupation", "age", "annual_income", "state",
	"caste_category", "has_disability", "enrolled_student",
}

// ==========================
// Inline Profile Tests
// ==========================

func TestHandler_Execute_InlineProfile(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Profile: map[string]interface{}{
			"occupation":    "farmer",
			"annual_income": float64(150000),
			"state":         "Maharashtra",
		},
	})

	require.NoError(t, err)
	require.NotEmpty(t, output.Evaluations)
	assert.NotEmpty(t, output.TopProgram)

	for i := 1; i < len(output.Evaluations); i++ {
		assert.GreaterOrEqual(t,
			output.Evaluations[i-1].Score, output.Evaluations[i].Score)
	}
}

func TestHandler_Execute_CategoryFilter(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Profile:  map[string]interface{}{"enrolled_student": true},
		Category: "scholarship",
	})

	require.NoError(t, err)
	require.NotEmpty(t, output.Evaluations)
	for _, ev := range output.Evaluations {
		assert.Equal(t, "scholarship", ev.Category)
	}
}

func TestHandler_Execute_EmptyProfileIsIndeterminateNotError(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.NotEmpty(t, output.Evaluations)
	for _, ev := range output.Evaluations {
		assert.True(t, ev.Indeterminate)
	}
}

func TestHandler_Execute_BadProfileFieldBecomesWarning(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Profile: map[string]interface{}{"age": "forty"},
	})

	require.NoError(t, err)
	require.NotEmpty(t, output.Warnings)
	assert.Contains(t, output.Warnings[0], "age")
}

// ==========================
// Profile Store Tests
// ==========================

func TestHandler_Execute_FetchesProfileFromStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(profileColumns).
		AddRow("farmer", 45, 150000.0, "Maharashtra", nil, nil, nil)
	mock.ExpectQuery(`SELECT occupation, age, annual_income, state, caste_category, has_disability, enrolled_student FROM citizen_profiles WHERE citizen_id = \$1`).
		WithArgs("citizen-42").
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), createTestEngine(t), db, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{CitizenID: "citizen-42"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	require.NotEmpty(t, output.Evaluations)

	// The farmer profile satisfies PM-KISAN fully, so it must rank first.
	assert.Equal(t, "pm-kisan", output.TopProgram)
}

func TestHandler_Execute_ProfileNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM citizen_profiles`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	handler := NewHandler(createTestConfig(), createTestEngine(t), db, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{CitizenID: "missing"})

	assert.Nil(t, output)
	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeProfileNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_ProfileFetchFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM citizen_profiles`).
		WithArgs("citizen-42").
		WillReturnError(stderrors.New("connection refused"))

	handler := NewHandler(createTestConfig(), createTestEngine(t), db, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{CitizenID: "citizen-42"})

	assert.Nil(t, output)
	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeProfileFetchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_InlineProfileWinsOverCitizenID(t *testing.T) {
	// No DB wired at all: the inline profile must make the citizen id moot.
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		CitizenID: "citizen-42",
		Profile:   map[string]interface{}{"occupation": "farmer"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Evaluations)
}

func TestHandler_Execute_NoStoreConfigured(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{CitizenID: "citizen-42"})

	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}
