// Package jobs contains the Asynq worker plumbing and background tasks.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type identifiers.
const (
	TaskLeaderboardRefresh = "leaderboard:refresh"
)

// Queue names.
const (
	QueueDefault = "default"
)

// LeaderboardRefreshPayload carries the refresh task parameters.
type LeaderboardRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewLeaderboardRefreshTask builds the leaderboard refresh task.
func NewLeaderboardRefreshTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(LeaderboardRefreshPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeaderboardRefresh, payload), nil
}
