// internal/workers/search/perform-search/handler.go
package performsearch

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
	"neptune-workers/internal/common/observability"
	"neptune-workers/internal/common/validation"
)

const (
	TaskType = "perform-search"
)

type Handler struct {
	config       *Config
	searcher     *Searcher
	obs          *observability.Observability
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		searcher:     NewSearcher(config, l, obs),
		obs:          obs,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout+h.config.Delay)
	defer cancel()

	res, err := validation.ValidateJSON(InputSchema, []byte(job.Variables))
	if err != nil {
		h.fail(ctx, client, job, apperrors.NewParseError(err), start)
		return
	}
	if !res.Valid {
		h.fail(ctx, client, job, apperrors.NewInvalidInputError(res.Error()), start)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, apperrors.NewParseError(err), start)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, apperrors.NewCommandSendFailedError("complete", err), start)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

// Execute runs the search; any failure comes back as SEARCH_FAILED.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	resp, err := h.searcher.Search(ctx, input.Query)
	if err != nil {
		return nil, apperrors.NewSearchFailedError(err)
	}
	return resp, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
