package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accountd/accountd/internal/account"
	"github.com/accountd/accountd/internal/app"
	"github.com/accountd/accountd/internal/leaderboard"
	"github.com/accountd/accountd/internal/observability"
	"github.com/accountd/accountd/internal/platform/cache"
	"github.com/accountd/accountd/internal/platform/db"
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

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	accountRepo := account.NewRepository(pool)
	accountService := account.NewService(accountRepo, cfg.BcryptCost)
	accountHandler := account.NewHandler(logger, accountService)

	// Redis is best-effort: the leaderboard degrades to direct store reads
	// when the cache is unavailable.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, leaderboard served uncached", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}
	leaderboardRepo := leaderboard.NewRepository(pool)
	leaderboardCache := leaderboard.NewCache(redisClient, cfg.LeaderboardTTL)
	leaderboardService := leaderboard.NewService(leaderboardRepo, leaderboardCache, logger, cfg.LeaderboardSize)
	leaderboardHandler := leaderboard.NewHandler(logger, leaderboardService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AccountHandler:     accountHandler,
		LeaderboardHandler: leaderboardHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
