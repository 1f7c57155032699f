// internal/workers/assistant/classify-intent/handler.go
package classifyintent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-workers/internal/common/database"
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/metrics"
	"scheme-workers/internal/engine"
	"scheme-workers/internal/engine/intent"
)

const TaskType = "classify-intent"

type Handler struct {
	config *Config
	engine *engine.Engine
	cache  *database.RedisClient
	logger logger.Logger
}

// NewHandler wires the classifier worker. The cache is optional; a nil cache
// degrades to classifying every query fresh.
func NewHandler(config *Config, eng *engine.Engine, cache *database.RedisClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: eng,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job",
		map[string]interface{}{
			"jobKey":      job.Key,
			"workflowKey": job.ProcessInstanceKey,
		})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "CLASSIFICATION_ERROR", err.Error())
		return
	}

	metrics.ClassificationsTotal.WithLabelValues(output.Intent).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// Execute classifies one query, consulting the cache first. Classification
// itself cannot fail; only a malformed cached entry forces a recompute.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	key := h.cacheKey(input)
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, key); err == nil {
			var out Output
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				out.FromCache = true
				return &out, nil
			}
			h.logger.Warn("discarding malformed cache entry", map[string]interface{}{"key": key})
		}
	}

	result := h.engine.Classify(intent.Query{Text: input.QueryText, LanguageTag: input.LanguageTag})
	output := &Output{
		Intent:          string(result.Intent),
		MatchScore:      result.MatchScore,
		MatchedKeywords: result.MatchedKeywords,
	}

	if h.cache != nil {
		if payload, err := json.Marshal(output); err == nil {
			if err := h.cache.Set(ctx, key, payload, h.config.CacheTTL); err != nil {
				h.logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return output, nil
}

// cacheKey hashes the normalized query so arbitrary citizen text never
// becomes a raw Redis key.
func (h *Handler) cacheKey(input *Input) string {
	normalized := strings.ToLower(strings.TrimSpace(input.QueryText))
	sum := sha256.Sum256([]byte(normalized))
	return "classify:" + hex.EncodeToString(sum[:16])
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed",
		map[string]interface{}{
			"jobKey":       job.Key,
			"errorCode":    errorCode,
			"errorMessage": errorMessage,
		})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
