// internal/workers/search/rank-providers/handler.go
package rankproviders

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
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/models"
)

const (
	TaskType = "rank-providers"
)

var (
	ErrRankingFailed   = errors.New("RANKING_FAILED")
	ErrProviderInvalid = errors.New("PROVIDER_INVALID")
)

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

	res, err := validation.ValidateJSON(InputSchema, []byte(job.Variables))
	if err != nil {
		h.fail(ctx, client, job, apperrors.NewParseError(err))
		return
	}
	if !res.Valid {
		h.fail(ctx, client, job, apperrors.NewInvalidInputError(res.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, apperrors.NewParseError(err))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, apperrors.NewRankingFailedError(err))
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, apperrors.NewCommandSendFailedError("complete", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
	}

	var providers []models.ServiceProvider
	source := "input"
	if input.Providers != nil {
		providers = *input.Providers
		for _, p := range providers {
			if err := p.ValidateRanges(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrProviderInvalid, err)
			}
		}
	} else {
		providers = dataset.Providers()
		source = "dataset"
	}

	ranked := RankTop(providers, h.config.MaxItems)
	for _, p := range ranked {
		metrics.NeptuneScores.Observe(p.NeptuneScore)
	}

	h.logger.Info("providers ranked", map[string]interface{}{
		"source":     source,
		"candidates": len(providers),
		"returned":   len(ranked),
	})

	return &Output{RankedProviders: ranked}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
