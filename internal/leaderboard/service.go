package leaderboard

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Service answers leaderboard reads, preferring the cache and falling back
// to the store. Cache failures degrade to direct reads rather than erroring.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	size   int
	group  singleflight.Group
}

// NewService constructs a new Service. size caps how many entries are
// fetched and cached.
func NewService(repo Repository, cache *Cache, logger *slog.Logger, size int) *Service {
	return &Service{repo: repo, cache: cache, logger: logger, size: size}
}

// Top returns up to limit ranked entries. limit is clamped to the
// configured size; zero or negative means the full configured size.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.size {
		limit = s.size
	}

	entries, err := s.cache.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) && s.logger != nil {
			s.logger.Warn("leaderboard cache read", slog.Any("error", err))
		}
		entries, err = s.loadAndCache(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// loadAndCache coalesces concurrent cache misses: a burst of requests
// arriving while the cache is cold issues a single store query and one
// cache write instead of N of each.
func (s *Service) loadAndCache(ctx context.Context) ([]Entry, error) {
	resultChan := s.group.DoChan(cacheKey, func() (interface{}, error) {
		entries, err := s.repo.TopAccounts(ctx, s.size)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, entries); err != nil && s.logger != nil {
			s.logger.Warn("leaderboard cache write", slog.Any("error", err))
		}
		return entries, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Entry), nil
	}
}

// Refresh recomputes the ranking from the store and rewrites the cache.
// The worker runs this on a schedule so reads rarely hit Postgres.
func (s *Service) Refresh(ctx context.Context) error {
	entries, err := s.repo.TopAccounts(ctx, s.size)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, entries)
}
