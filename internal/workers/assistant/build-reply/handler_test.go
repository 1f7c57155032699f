package buildreply

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/engine"
	"scheme-workers/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		AppVersion: "test",
	}
}

func createTestHandler(t *testing.T, config *Config) *Handler {
	t.Helper()
	eng, err := engine.New(engine.Options{DefaultLanguage: "en"})
	require.NoError(t, err)
	return NewHandler(config, eng, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SchemeReply(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "which yojana helps farmers like me",
		LanguageTag: "en",
		SessionID:   "session-1",
		Profile: map[string]interface{}{
			"occupation":    "farmer",
			"annual_income": float64(150000),
		},
	})

	require.NoError(t, err)
	reply := output.Reply

	assert.Equal(t, "success", reply.Status)
	assert.Equal(t, "SCHEME", reply.Intent)
	assert.Equal(t, "session-1", reply.SessionID)
	assert.NotEmpty(t, reply.Text)
	assert.NotEmpty(t, reply.Evaluations)
	assert.Equal(t, "test", reply.Metadata.Version)
	assert.Equal(t, "en", reply.Metadata.Language)

	_, err = uuid.Parse(reply.ReplyID)
	assert.NoError(t, err)

	_, err = time.Parse(time.RFC3339, reply.Metadata.Timestamp)
	assert.NoError(t, err)
}

func TestHandler_Execute_OutOfScopeReply(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "what won the cricket world cup",
		LanguageTag: "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "OUT_OF_SCOPE", output.Reply.Intent)
	assert.Empty(t, output.Reply.Evaluations)
	assert.NotEmpty(t, output.Reply.Text)
}

func TestHandler_Execute_AdminReply(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "how many districts are there in India",
		LanguageTag: "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", output.Reply.Intent)
	assert.Contains(t, output.Reply.Text, "approximately")
}

func TestHandler_Execute_HindiReply(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "मेरे लिए कौन सी योजना है",
		LanguageTag: "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "SCHEME", output.Reply.Intent)
	assert.Equal(t, "hi", output.Reply.Metadata.Language)
}

func TestHandler_Execute_ReplyIDsAreUnique(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())
	input := &Input{QueryText: "scheme", LanguageTag: "en"}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		output, err := handler.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.False(t, seen[output.Reply.ReplyID])
		seen[output.Reply.ReplyID] = true
	}
}

// ==========================
// Schema Validation Tests
// ==========================

func TestNewHandler_RegistrySchemaOverride(t *testing.T) {
	reg := registry.TaskRegistry{
		Version: "1",
		Tasks: []registry.TaskDefinition{
			{
				ID:       "assistant.build-reply",
				TaskType: TaskType,
				OutputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"replyId", "sessionId"},
				},
			},
		},
	}
	payload, err := json.Marshal(reg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	config := createTestConfig()
	config.RegistryPath = path
	handler := createTestHandler(t, config)

	// The override requires sessionId, so a reply without one fails.
	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "scheme for farmers",
		LanguageTag: "en",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrReplyValidationFailed)

	output, err = handler.Execute(context.Background(), &Input{
		QueryText:   "scheme for farmers",
		LanguageTag: "en",
		SessionID:   "session-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "session-9", output.Reply.SessionID)
}

func TestNewHandler_MissingRegistryFallsBackToBuiltin(t *testing.T) {
	config := createTestConfig()
	config.RegistryPath = filepath.Join(t.TempDir(), "missing.json")
	handler := createTestHandler(t, config)

	output, err := handler.Execute(context.Background(), &Input{
		QueryText:   "scheme for farmers",
		LanguageTag: "en",
	})

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := createTestHandler(t, createTestConfig())

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}
