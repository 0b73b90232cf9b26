// internal/workers/search/calculate-neptune-score/handler.go
package calculateneptunescore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"neptune-workers/internal/common/camunda"
	apperrors "neptune-workers/internal/common/errors"
	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/metrics"
	"neptune-workers/internal/common/validation"
)

const (
	TaskType = "calculate-neptune-score"

	MinScore = 0.0
	MaxScore = 100.0
)

var ErrScoreOutOfRange = errors.New("SCORE_OUT_OF_RANGE")

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       l,
		errorHandler: apperrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := decode(job.Variables, &input); err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(&input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, apperrors.NewCommandSendFailedError("complete", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func decode(variables string, input *Input) error {
	res, err := validation.ValidateJSON(InputSchema, []byte(variables))
	if err != nil {
		return apperrors.NewParseError(err)
	}
	if !res.Valid {
		return apperrors.NewInvalidInputError(res.Error())
	}
	if err := json.Unmarshal([]byte(variables), input); err != nil {
		return apperrors.NewParseError(err)
	}
	return nil
}

// Execute scores the provider. Field values outside their domains (rating
// outside [0, 5], negative counts) fail with SCORING_FAILED before scoring,
// as does a total outside [0, 100].
func (h *Handler) Execute(input *Input) (*Output, error) {
	if err := input.Provider.ValidateRanges(); err != nil {
		return nil, apperrors.NewScoringFailedError(
			fmt.Errorf("%w: %v", ErrScoreOutOfRange, err),
		).WithMetadata("providerId", input.Provider.ID)
	}

	breakdown := Breakdown(input.Provider)
	score := Round1(breakdown.Total())

	if score < MinScore || score > MaxScore {
		return nil, apperrors.NewScoringFailedError(
			fmt.Errorf("%w: %.1f", ErrScoreOutOfRange, score),
		).WithMetadata("providerId", input.Provider.ID).WithMetadata("neptuneScore", score)
	}

	metrics.NeptuneScores.Observe(score)
	h.logger.Debug("neptune score calculated", map[string]interface{}{
		"providerId":   input.Provider.ID,
		"providerName": input.Provider.Name,
		"score":        score,
		"breakdown":    breakdown,
	})

	return &Output{
		NeptuneScore: score,
		Breakdown:    breakdown,
	}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
