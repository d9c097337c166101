package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/accountd/accountd/internal/app"
	"github.com/accountd/accountd/internal/leaderboard"
	"github.com/accountd/accountd/internal/platform/cache"
	"github.com/accountd/accountd/internal/platform/db"
	"github.com/accountd/accountd/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns, MinConns: cfg.PGMinConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	leaderboardRepo := leaderboard.NewRepository(pool)
	leaderboardCache := leaderboard.NewCache(redisClient, cfg.LeaderboardTTL)
	leaderboardService := leaderboard.NewService(leaderboardRepo, leaderboardCache, logger, cfg.LeaderboardSize)
	refreshJob := jobs.NewLeaderboardRefreshJob(leaderboardService, logger)

	refreshTask, err := jobs.NewLeaderboardRefreshTask("cron")
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLeaderboardRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/5 * * * *", Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
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
