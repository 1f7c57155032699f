// internal/workers/assistant/evaluate-eligibility/handler.go
package evaluateeligibility

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-workers/internal/common/errors"
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/metrics"
	"scheme-workers/internal/engine"
)

const TaskType = "evaluate-eligibility"

const profileQuery = `SELECT occupation, age, annual_income, state, caste_category, has_disability, enrolled_student FROM citizen_profiles WHERE citizen_id = $1`

type Handler struct {
	config *Config
	engine *engine.Engine
	db     *sql.DB
	logger logger.Logger
}

// NewHandler wires the eligibility worker. The database is optional; without
// it only inline profiles can be evaluated.
func NewHandler(config *Config, eng *engine.Engine, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: eng,
		db:     db,
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
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			h.failJob(client, job, errors.BPMNErrorMapping[stdErr.Code], stdErr.Message)
			return
		}
		h.failJob(client, job, "ELIGIBILITY_ERROR", err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// Execute resolves a profile and scores every catalog program against it.
// Evaluation itself never fails; only profile resolution can.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	profile := input.Profile
	if len(profile) == 0 && input.CitizenID != "" {
		fetched, err := h.fetchProfile(ctx, input.CitizenID)
		if err != nil {
			return nil, err
		}
		profile = fetched
	}

	results, warnings := h.engine.EvaluateEligibility(profile)

	if input.Category != "" {
		filtered := results[:0]
		for _, r := range results {
			if strings.EqualFold(r.Category, input.Category) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	engine.RankResults(results)

	for _, r := range results {
		switch {
		case r.Indeterminate:
			metrics.EvaluationsTotal.WithLabelValues("indeterminate").Inc()
		case r.Score > 0:
			metrics.EvaluationsTotal.WithLabelValues("scored").Inc()
		default:
			metrics.EvaluationsTotal.WithLabelValues("ineligible").Inc()
		}
	}

	output := &Output{Evaluations: results, Warnings: warnings}
	if len(results) > 0 {
		output.TopProgram = results[0].ProgramID
	}
	return output, nil
}

// fetchProfile loads a citizen profile row into the loose map the engine
// parses. NULL columns simply stay absent from the map.
func (h *Handler) fetchProfile(ctx context.Context, citizenID string) (map[string]interface{}, error) {
	if h.db == nil {
		return nil, errors.NewProfileFetchFailedError(fmt.Errorf("profile store not configured"))
	}

	queryCtx, cancel := context.WithTimeout(ctx, h.config.QueryTimeout)
	defer cancel()

	var (
		occupation      sql.NullString
		age             sql.NullInt64
		annualIncome    sql.NullFloat64
		state           sql.NullString
		casteCategory   sql.NullString
		hasDisability   sql.NullBool
		enrolledStudent sql.NullBool
	)

	err := h.db.QueryRowContext(queryCtx, profileQuery, citizenID).Scan(
		&occupation, &age, &annualIncome, &state,
		&casteCategory, &hasDisability, &enrolledStudent,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewProfileNotFoundError(citizenID)
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewQueryTimeoutError("citizen_profile")
		}
		return nil, errors.NewProfileFetchFailedError(err)
	}

	profile := make(map[string]interface{}, 7)
	if occupation.Valid {
		profile["occupation"] = occupation.String
	}
	if age.Valid {
		profile["age"] = int(age.Int64)
	}
	if annualIncome.Valid {
		profile["annual_income"] = annualIncome.Float64
	}
	if state.Valid {
		profile["state"] = state.String
	}
	if casteCategory.Valid {
		profile["caste_category"] = casteCategory.String
	}
	if hasDisability.Valid {
		profile["has_disability"] = hasDisability.Bool
	}
	if enrolledStudent.Valid {
		profile["enrolled_student"] = enrolledStudent.Bool
	}
	return profile, nil
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
