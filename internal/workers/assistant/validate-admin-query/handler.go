// internal/workers/assistant/validate-admin-query/handler.go
package validateadminquery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/metrics"
	"scheme-workers/internal/engine"
)

const TaskType = "validate-admin-query"

type Handler struct {
	config *Config
	engine *engine.Engine
	logger logger.Logger
}

func NewHandler(config *Config, eng *engine.Engine, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: eng,
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
		h.failJob(client, job, "ADMIN_VALIDATION_ERROR", err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// Execute routes to the right hierarchy check: explicit level labels get an
// ordering validation, free text gets the factual/terminology pipeline.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.QueryText == "" && len(input.LevelLabels) == 0 {
		return nil, fmt.Errorf("either queryText or levelLabels is required")
	}

	if len(input.LevelLabels) > 0 {
		result := h.engine.Hierarchy().ValidateOrder(input.LevelLabels)
		return &Output{
			IsValid:  result.IsValid,
			Response: result.Response,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		}, nil
	}

	if answer, ok := h.engine.Hierarchy().AnswerFactualQuery(input.QueryText); ok {
		output := &Output{
			IsValid:     true,
			Factual:     true,
			Response:    answer.Text,
			Approximate: answer.Approximate,
		}
		if answer.Caveat != "" {
			output.Warnings = append(output.Warnings, answer.Caveat)
		}
		return output, nil
	}

	result := h.engine.Hierarchy().ValidateTerminology(input.QueryText)
	return &Output{
		IsValid:  result.IsValid,
		Response: result.Response,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}, nil
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
