// internal/workers/search/classify-service-intent/handler.go
package classifyserviceintent

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
	TaskType = "classify-service-intent"
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

	input, err := ParseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output := h.Execute(input)

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, apperrors.NewCommandSendFailedError("complete", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// ParseInput validates and decodes the job variables.
func ParseInput(variables string) (*Input, error) {
	res, err := validation.ValidateJSON(InputSchema, []byte(variables))
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}
	if !res.Valid {
		return nil, apperrors.NewInvalidInputError(res.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) Execute(input *Input) *Output {
	output := &Output{
		IsServiceQuery:  IsServiceQuery(input.Query),
		MatchedKeywords: MatchedKeywords(input.Query),
	}

	h.logger.Info("intent classified", map[string]interface{}{
		"query":           input.Query,
		"isServiceQuery":  output.IsServiceQuery,
		"matchedKeywords": output.MatchedKeywords,
	})
	return output
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
