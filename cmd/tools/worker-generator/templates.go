package main

const configTemplate = `// Package {{ .PackageName }} implements the {{ .TaskType }} job worker.
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}

const InputSchema = ` + "`" + `{{ .InputSchema }}` + "`" + `
`

const handlerTemplate = `package {{ .PackageName }}

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
	TaskType = "{{ .TaskType }}"
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"neptune-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig()
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.NotNil(t, output)
}
`
