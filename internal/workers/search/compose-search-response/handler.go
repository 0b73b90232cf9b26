// internal/workers/search/compose-search-response/handler.go
package composesearchresponse

import (
	"context"
	"encoding/json"
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
	TaskType = "compose-search-response"
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

	output := h.Execute(&input)

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, apperrors.NewCommandSendFailedError("complete", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) Execute(input *Input) *Output {
	text := Compose(input.Query, input.RankedProviders, input.IsServiceQuery)

	h.logger.Info("search response composed", map[string]interface{}{
		"isServiceQuery": input.IsServiceQuery,
		"providerCount":  len(input.RankedProviders),
		"length":         len(text),
	})
	return &Output{LLMResponse: text}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
