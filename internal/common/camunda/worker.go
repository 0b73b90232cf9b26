// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// WorkerOptions controls how a job worker polls the broker.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

func (o WorkerOptions) withDefaults() WorkerOptions {
	if o.MaxJobsActive <= 0 {
		o.MaxJobsActive = 5
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// StartWorker opens a job worker for taskType. The caller owns Close.
func StartWorker(
	client zbc.Client,
	taskType string,
	opts WorkerOptions,
	handler worker.JobHandler,
	logger *zap.Logger,
) worker.JobWorker {
	opts = opts.withDefaults()

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)
	return jobWorker
}

// CompleteJob completes job with output serialised as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("encode job variables: %w", err)
	}

	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete command: %w", err)
	}
	return nil
}
