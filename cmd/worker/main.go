package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/eyfs-nursery/eyfs-nursery/internal/app"
	jobmetrics "github.com/eyfs-nursery/eyfs-nursery/internal/jobs"
	"github.com/eyfs-nursery/eyfs-nursery/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := jobmetrics.NewMetrics(nil)

	deliverHandler := func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("deliver_message")
		err := jobs.HandleDeliverMessageTask(ctx, t)
		if err == nil {
			metrics.AddDelivery()
		}
		return tracker.End(err)
	}
	digestHandler := func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("daily_digest")
		return tracker.End(jobs.HandleDailyDigestTask(ctx, t))
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeDeliverMessage, Handler: deliverHandler},
			{Type: jobs.TaskTypeDailyDigest, Handler: digestHandler},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 17 * * 1-5", Task: jobs.NewDailyDigestTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
