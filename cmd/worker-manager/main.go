// cmd/worker-manager/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"housing-workers/internal/common/camunda"
	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/observability"
	"housing-workers/internal/server"
	"housing-workers/internal/valuation"

	cl "housing-workers/internal/workers/valuation/classify-location"
	ehp "housing-workers/internal/workers/valuation/estimate-housing-price"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"environment": cfg.App.Environment,
	})
	zapLog.Info("Starting worker manager...", zap.String("version", cfg.App.Version))

	var obsOpts []observability.Option
	if cfg.Tracing.Enabled {
		obsOpts = append(obsOpts, observability.WithTracing(cfg.Tracing.JaegerEndpoint, cfg.Tracing.SampleRatio))
	}
	obs := observability.New(cfg.Tracing.ServiceName, obsOpts...)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Estimator ---
	registry, provider, err := valuation.BuildRegistry(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("estimator setup failed", zap.Error(err))
	}
	service := valuation.NewService(registry, obs, log)

	serverOpts := []server.Option{server.WithServiceName(cfg.App.Name)}
	if provider != nil {
		serverOpts = append(serverOpts, server.WithReadinessCheck("model", func(ctx context.Context) error {
			_, err := provider.Load(ctx)
			return err
		}))
	}

	// --- Workers ---
	var workers []*camunda.CamundaWorker
	if cfg.WorkersEnabled() {
		client, err := camunda.Connect(ctx, camunda.ConfigFrom(cfg.Camunda), log)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer client.Close()
		serverOpts = append(serverOpts, server.WithReadinessCheck("zeebe", client.HealthCheck))

		estimateCfg := config.GetWorkerConfig(cfg, ehp.TaskType)
		workers = appendWorker(workers, client.GetClient(), ehp.TaskType, estimateCfg,
			ehp.NewHandler(ehp.LoadConfig(estimateCfg), service, obs, log), log)

		classifyCfg := config.GetWorkerConfig(cfg, cl.TaskType)
		workers = appendWorker(workers, client.GetClient(), cl.TaskType, classifyCfg,
			cl.NewHandler(cl.LoadConfig(classifyCfg), service, obs, log), log)

		zapLog.Info("Workers registered", zap.Int("count", len(workers)))
	} else {
		zapLog.Warn("camunda.broker_address is empty, job workers are disabled")
	}

	// --- HTTP ---
	srv := server.New(cfg.Server, service, log, serverOpts...)
	if err := srv.Run(ctx); err != nil {
		zapLog.Error("http server failed", zap.Error(err))
	}

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Stop()
	}
	zapLog.Info("Worker manager stopped gracefully")
}

func appendWorker(workers []*camunda.CamundaWorker, client zbc.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log logger.Logger) []*camunda.CamundaWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return workers
	}
	return append(workers, camunda.NewWorker(client, taskType, wcfg, handler, log))
}
