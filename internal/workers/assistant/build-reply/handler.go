// internal/workers/assistant/build-reply/handler.go
package buildreply

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/metrics"
	"scheme-workers/internal/engine"
	"scheme-workers/internal/engine/intent"
	"scheme-workers/pkg/registry"
)

const TaskType = "build-reply"

var ErrReplyValidationFailed = errors.New("REPLY_VALIDATION_FAILED")

// replySchema is the builtin contract for the reply envelope, used when the
// task registry does not override it.
var replySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"replyId", "status", "intent", "text", "metadata"},
	"properties": map[string]interface{}{
		"replyId": map[string]interface{}{"type": "string", "minLength": 1},
		"status":  map[string]interface{}{"type": "string", "enum": []interface{}{"success"}},
		"intent":  map[string]interface{}{"type": "string", "minLength": 1},
		"text":    map[string]interface{}{"type": "string", "minLength": 1},
		"metadata": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"timestamp", "language"},
		},
	},
}

type Handler struct {
	config *Config
	engine *engine.Engine
	logger logger.Logger
	schema map[string]interface{}
}

// NewHandler wires the reply composer. When the config names a task
// registry, the reply schema registered for this task type replaces the
// builtin one.
func NewHandler(config *Config, eng *engine.Engine, log logger.Logger) *Handler {
	h := &Handler{
		config: config,
		engine: eng,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		schema: replySchema,
	}

	if config.RegistryPath != "" {
		reg, err := registry.LoadRegistry(config.RegistryPath)
		if err != nil {
			h.logger.Warn("task registry unavailable, using builtin reply schema",
				map[string]interface{}{"path": config.RegistryPath, "error": err.Error()})
			return h
		}
		if def, ok := reg.Find(TaskType); ok && len(def.OutputSchema) > 0 {
			h.schema = def.OutputSchema
		}
	}
	return h
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
		errorCode := "REPLY_BUILD_ERROR"
		if errors.Is(err, ErrReplyValidationFailed) {
			errorCode = "REPLY_VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// Execute runs the full engine pipeline for one query and wraps the result
// in a schema-validated reply envelope.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	resp := h.engine.BuildResponse(
		intent.Query{Text: input.QueryText, LanguageTag: input.LanguageTag},
		input.Profile,
	)

	reply := ReplyPayload{
		ReplyID:     uuid.NewString(),
		SessionID:   input.SessionID,
		Status:      "success",
		Intent:      string(resp.Intent),
		Text:        resp.ExplanationText,
		Evaluations: resp.Evaluations,
		Warnings:    resp.Warnings,
		Metadata: ReplyMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   h.config.AppVersion,
			Language:  input.LanguageTag,
		},
	}

	if err := h.validateReply(reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReplyValidationFailed, err)
	}

	return &Output{Reply: reply}, nil
}

func (h *Handler) validateReply(reply ReplyPayload) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(h.schema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("reply validation failed: %v", errs)
	}
	return nil
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
