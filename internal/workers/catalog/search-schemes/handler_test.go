package searchschemes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scheme-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		SchemeIndex: "schemes-test",
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

// createRealElasticsearchClient connects to a local Elasticsearch container
// and skips the test when none is running.
func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	t.Helper()
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	})
	if err != nil {
		t.Skipf("Skipping test: failed to create Elasticsearch client: %v", err)
		return nil
	}

	res, err := esClient.Info()
	if err != nil {
		t.Skipf("Skipping test: Elasticsearch not responding: %v", err)
		return nil
	}
	defer res.Body.Close()
	if res.IsError() {
		t.Skipf("Skipping test: Elasticsearch error: %s", res.String())
		return nil
	}
	return esClient
}

func setupSchemeIndex(t *testing.T, esClient *elasticsearch.Client) {
	t.Helper()
	esClient.Indices.Delete([]string{"schemes-test"},
		esClient.Indices.Delete.WithIgnoreUnavailable(true))

	indexBody := `{
		"mappings": {
			"properties": {
				"name": {"type": "text"},
				"description": {"type": "text"},
				"keywords": {"type": "text"},
				"category": {"type": "keyword"},
				"state": {"type": "keyword"},
				"level": {"type": "keyword"},
				"languages": {"type": "keyword"}
			}
		}
	}`
	res, err := esClient.Indices.Create("schemes-test",
		esClient.Indices.Create.WithBody(strings.NewReader(indexBody)))
	require.NoError(t, err)
	res.Body.Close()

	docs := []string{
		`{"name": "PM-KISAN", "description": "Income support for farmer families", "category": "income-support", "level": "central", "languages": ["en","hi"]}`,
		`{"name": "Post-Matric Scholarship", "description": "Scholarship for SC and ST students", "category": "scholarship", "level": "central", "languages": ["en","hi","mr"]}`,
		`{"name": "MJPJAY", "description": "Health cover for low income families", "category": "health", "state": "Maharashtra", "level": "state", "languages": ["mr","hi"]}`,
	}
	for i, doc := range docs {
		res, err := esClient.Index("schemes-test", strings.NewReader(doc),
			esClient.Index.WithDocumentID(string(rune('a'+i))),
			esClient.Index.WithRefresh("true"))
		require.NoError(t, err)
		res.Body.Close()
	}
}

// ==========================
// Integration Tests
// ==========================

func TestHandler_Execute_SearchesSchemes(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupSchemeIndex(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{QueryText: "scholarship students"})

	require.NoError(t, err)
	require.NotEmpty(t, output.Schemes)
	assert.Equal(t, "Post-Matric Scholarship", output.Schemes[0]["name"])
	assert.Greater(t, output.TotalHits, 0)
}

func TestHandler_Execute_StateFilterAdmitsCentralSchemes(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupSchemeIndex(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{State: "Maharashtra"})

	require.NoError(t, err)
	// The Maharashtra-only scheme plus both central schemes.
	assert.Equal(t, 3, output.TotalHits)
}

func TestHandler_Execute_CategoryFilter(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupSchemeIndex(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Category: "health"})

	require.NoError(t, err)
	require.Len(t, output.Schemes, 1)
	assert.Equal(t, "MJPJAY", output.Schemes[0]["name"])
}

func TestHandler_Execute_MissingIndex(t *testing.T) {
	esClient := createRealElasticsearchClient(t)

	config := createTestConfig()
	config.SchemeIndex = "no-such-index"
	handler := NewHandler(config, esClient, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{QueryText: "anything"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

// ==========================
// Unit Tests
// ==========================

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Execute_EmptyIndexConfig(t *testing.T) {
	config := createTestConfig()
	config.SchemeIndex = ""
	handler := NewHandler(config, nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{QueryText: "pension"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrSearchFailed)
}
