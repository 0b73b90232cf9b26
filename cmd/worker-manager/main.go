// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neptune-workers/internal/common/camunda"
	"neptune-workers/internal/common/config"
	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/observability"
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/httpapi"
	"neptune-workers/pkg/registry"

	cnp "neptune-workers/internal/workers/search/calculate-neptune-score"
	csi "neptune-workers/internal/workers/search/classify-service-intent"
	csr "neptune-workers/internal/workers/search/compose-search-response"
	ps "neptune-workers/internal/workers/search/perform-search"
	rp "neptune-workers/internal/workers/search/rank-providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.Duration("searchDelay", cfg.Search.Delay()),
	)

	obs, err := observability.New(cfg.Observability.ServiceName)
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown()

	if err := dataset.Check(); err != nil {
		zapLog.Fatal("provider dataset invalid", zap.Error(err))
	}
	zapLog.Info("provider dataset loaded", zap.Int("providers", dataset.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searchCfg := ps.ConfigFrom(cfg.Search)
	searcher := ps.NewSearcher(searchCfg, log.WithFields(map[string]interface{}{"component": "search"}), obs)

	var ready atomic.Bool
	var workers []worker.JobWorker
	var brokerHealth func(context.Context) error

	if cfg.Camunda.BrokerAddress == "" {
		zapLog.Info("camunda.broker_address not set, job workers disabled")
	} else {
		client, err := camunda.Connect(ctx, camunda.ClientConfigFrom(cfg.Camunda), zapLog)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer client.Close()
		zapLog.Info("Zeebe client connected successfully")
		brokerHealth = client.HealthCheck

		workers = registerWorkers(client, cfg, searchCfg, obs, log, zapLog)
		zapLog.Info("search workers registered", zap.Int("count", len(workers)))
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: httpapi.NewHandler(httpapi.Deps{
			Searcher: searcher,
			Logger:   log.WithFields(map[string]interface{}{"component": "http"}),
			Ready:    readiness(&ready, brokerHealth, readinessTimeout),
		}),
		ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout) + cfg.Search.Delay(),
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		zapLog.Fatal("HTTP listen failed", zap.String("address", cfg.HTTP.Address), zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("address", ln.Addr().String()))
		ready.Store(true)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ready.Store(false)
		zapLog.Info("Shutdown signal received, stopping workers...")

		for _, w := range workers {
			w.Close()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("worker manager stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zapLog.Info("Worker manager stopped gracefully")
}

const readinessTimeout = 2 * time.Second

// readiness reports ready once the listener is bound and, when job workers
// are on, the broker answers a topology request within timeout.
func readiness(listening *atomic.Bool, brokerHealth func(context.Context) error, timeout time.Duration) func() bool {
	return func() bool {
		if !listening.Load() {
			return false
		}
		if brokerHealth == nil {
			return true
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return brokerHealth(ctx) == nil
	}
}

type jobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

func registerWorkers(
	client *camunda.Client,
	cfg *config.Config,
	searchCfg *ps.Config,
	obs *observability.Observability,
	log logger.Logger,
	zapLog *zap.Logger,
) []worker.JobWorker {
	timeoutOf := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	rankCfg := rp.LoadConfig()
	rankCfg.MaxItems = cfg.Search.MaxResults
	rankCfg.Timeout = timeoutOf(rp.TaskType)

	facadeCfg := *searchCfg
	facadeCfg.Timeout = timeoutOf(ps.TaskType)

	handlers := map[string]jobHandler{
		csi.TaskType: csi.NewHandler(&csi.Config{Timeout: timeoutOf(csi.TaskType)}, log),
		cnp.TaskType: cnp.NewHandler(&cnp.Config{Timeout: timeoutOf(cnp.TaskType)}, log),
		rp.TaskType:  rp.NewHandler(rankCfg, log),
		csr.TaskType: csr.NewHandler(&csr.Config{Timeout: timeoutOf(csr.TaskType)}, log),
		ps.TaskType:  ps.NewHandler(&facadeCfg, obs, log),
	}

	checkRegistry(cfg.Registry.Path, handlers, zapLog)

	var workers []worker.JobWorker
	for taskType, handler := range handlers {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(
			client.Zeebe(),
			taskType,
			camunda.WorkerOptions{
				MaxJobsActive: wcfg.MaxJobsActive,
				Timeout:       config.GetDuration(wcfg.Timeout),
			},
			handler.Handle,
			zapLog,
		))
	}
	return workers
}

// checkRegistry warns when the activity registry is invalid or does not
// describe every task type this process serves.
func checkRegistry(path string, handlers map[string]jobHandler, zapLog *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		zapLog.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		zapLog.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
	}

	taskTypes := make([]string, 0, len(handlers))
	for tt := range handlers {
		taskTypes = append(taskTypes, tt)
	}
	if missing := reg.MissingTaskTypes(taskTypes); len(missing) > 0 {
		zapLog.Warn("task types missing from activity registry", zap.Strings("taskTypes", missing))
	}
}
