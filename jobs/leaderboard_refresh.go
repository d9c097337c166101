package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/accountd/accountd/internal/leaderboard"
)

// LeaderboardRefreshJob rewarms the Redis leaderboard cache from Postgres.
type LeaderboardRefreshJob struct {
	service *leaderboard.Service
	logger  *slog.Logger
}

// NewLeaderboardRefreshJob constructs the job.
func NewLeaderboardRefreshJob(service *leaderboard.Service, logger *slog.Logger) *LeaderboardRefreshJob {
	return &LeaderboardRefreshJob{service: service, logger: logger}
}

// Handle processes one refresh task.
func (j *LeaderboardRefreshJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload LeaderboardRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.service.Refresh(ctx); err != nil {
		if j.logger != nil {
			j.logger.Error("leaderboard refresh", slog.String("reason", payload.Reason), slog.Any("error", err))
		}
		return err
	}
	if j.logger != nil {
		j.logger.Info("leaderboard refreshed", slog.String("reason", payload.Reason))
	}
	return nil
}
