package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/leaderboard"
	"github.com/accountd/accountd/jobs"
)

type stubRepo struct {
	entries []leaderboard.Entry
}

func (s *stubRepo) TopAccounts(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return append([]leaderboard.Entry(nil), s.entries[:limit]...), nil
}

func TestLeaderboardRefreshJob(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stubRepo{entries: []leaderboard.Entry{{ID: 1, Username: "alice", Points: 7}}}
	cache := leaderboard.NewCache(client, time.Minute)
	service := leaderboard.NewService(repo, cache, nil, 10)
	job := jobs.NewLeaderboardRefreshJob(service, nil)

	task, err := jobs.NewLeaderboardRefreshTask("test")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))

	cached, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, repo.entries, cached)
}
