package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"devconnect/adapters/github"
	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

const githubRepoLimit = 5

type GithubReposUseCase struct {
	client   *github.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewGithubReposUseCase(client *github.Client, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *GithubReposUseCase {
	return &GithubReposUseCase{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Execute proxies the user's latest public repositories, serving from
// the redis cache when a fresh copy is available.
func (uc *GithubReposUseCase) Execute(ctx context.Context, username string) ([]github.Repo, error) {
	cacheKey := "github:repos:" + username

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var repos []github.Repo
			if err := json.Unmarshal(cached, &repos); err == nil {
				return repos, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("github cache read failed", zap.String("username", username), zap.Error(err))
		}
	}

	repos, err := uc.client.ListRecentRepos(ctx, username, githubRepoLimit)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return nil, apperror.NewNotFound("github profile", username)
		}
		return nil, apperror.NewInternal("failed to fetch github repos", err)
	}

	if uc.cache != nil {
		if body, err := json.Marshal(repos); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, body, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("github cache write failed", zap.String("username", username), zap.Error(err))
			}
		}
	}

	return repos, nil
}
