package leaderboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/leaderboard"
)

type stubRepo struct {
	mu      sync.Mutex
	entries []leaderboard.Entry
	calls   int
	gate    chan struct{}
}

func (s *stubRepo) TopAccounts(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	s.mu.Lock()
	s.calls++
	gate := s.gate
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	entries := append([]leaderboard.Entry(nil), s.entries[:limit]...)
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return entries, nil
}

func (s *stubRepo) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func rankedEntries() []leaderboard.Entry {
	return []leaderboard.Entry{
		{ID: 3, Username: "carol", Points: 90},
		{ID: 1, Username: "alice", Points: 40},
		{ID: 2, Username: "bob", Points: 10},
	}
}

func newTestService(t *testing.T, repo leaderboard.Repository, size int) (*leaderboard.Service, *leaderboard.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := leaderboard.NewCache(client, time.Minute)
	return leaderboard.NewService(repo, cache, nil, size), cache
}

func TestTopPopulatesCacheOnMiss(t *testing.T) {
	repo := &stubRepo{entries: rankedEntries()}
	svc, cache := newTestService(t, repo, 10)
	ctx := context.Background()

	entries, err := svc.Top(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, rankedEntries(), entries)
	require.Equal(t, 1, repo.callCount())

	cached, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, rankedEntries(), cached)

	// Second read must be served from the cache.
	entries, err = svc.Top(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, rankedEntries(), entries)
	require.Equal(t, 1, repo.callCount())
}

func TestTopClampsLimit(t *testing.T) {
	repo := &stubRepo{entries: rankedEntries()}
	svc, _ := newTestService(t, repo, 10)
	ctx := context.Background()

	entries, err := svc.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "carol", entries[0].Username)
	require.Equal(t, "alice", entries[1].Username)

	// A limit above the configured size falls back to the size cap.
	entries, err = svc.Top(ctx, 100)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRefreshRewritesCache(t *testing.T) {
	repo := &stubRepo{entries: rankedEntries()}
	svc, cache := newTestService(t, repo, 10)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	cached, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, rankedEntries(), cached)

	repo.entries = []leaderboard.Entry{{ID: 2, Username: "bob", Points: 200}}
	require.NoError(t, svc.Refresh(ctx))

	cached, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, repo.entries, cached)
}

func TestTopCoalescesConcurrentMisses(t *testing.T) {
	repo := &stubRepo{entries: rankedEntries(), gate: make(chan struct{})}
	svc, _ := newTestService(t, repo, 10)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	results := make([][]leaderboard.Entry, n)
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Top(ctx, 10)
		}(i)
	}

	// Wait for the first miss to be in flight, let the remaining readers
	// queue on the same flight, then release the store.
	require.Eventually(t, func() bool { return repo.callCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(repo.gate)
	wg.Wait()

	require.Equal(t, 1, repo.callCount())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, rankedEntries(), results[i])
	}
}

func TestTopDegradesWithoutRedis(t *testing.T) {
	repo := &stubRepo{entries: rankedEntries()}
	cache := leaderboard.NewCache(nil, time.Minute)
	svc := leaderboard.NewService(repo, cache, nil, 10)

	entries, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, rankedEntries(), entries)
}
