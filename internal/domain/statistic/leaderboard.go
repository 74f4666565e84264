package statistic

import (
	"context"
	"time"

	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/craftloop/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type Leaderboard interface {
	GetLeaderBoard(ctx context.Context, period string, offset, limit int) ([]model.UserStatistic, error)
	GetRank(ctx context.Context, userID, period string) (uint64, error)
	ChangePointLeaderboard(ctx context.Context, value int64, unlockedAt time.Time, userID string) error
}

type leaderboard struct {
	userAchievementRepo repository.UserAchievementRepository
	redisClient         xredis.Client
}

func New(
	userAchievementRepo repository.UserAchievementRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		userAchievementRepo: userAchievementRepo,
		redisClient:         redisClient,
	}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context, periodString string, offset, limit int,
) ([]model.UserStatistic, error) {
	period, err := ToPeriod(periodString)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid period")
	}

	key := redisKeyPointLeaderboard(period)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// The bucket is rebuilt from the database when redis lost it.
	if !ok {
		if err := l.loadFromDB(ctx, period); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	board := []model.UserStatistic{}
	for i, z := range results {
		board = append(board, model.UserStatistic{
			UserID: z.Member.(string),
			Points: int64(z.Score),
			Rank:   uint64(offset + i + 1),
		})
	}

	return board, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID, periodString string) (uint64, error) {
	period, err := ToPeriod(periodString)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return 0, errorx.New(errorx.BadRequest, "Invalid period")
	}

	rank, err := l.redisClient.ZRevRank(ctx, redisKeyPointLeaderboard(period), userID)
	if err != nil {
		if err == redis.Nil {
			return 0, errorx.New(errorx.NotFound, "User has no rank in this period")
		}

		xcontext.Logger(ctx).Errorf("Cannot get rank from redis: %v", err)
		return 0, errorx.Unknown
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(
	ctx context.Context, value int64, unlockedAt time.Time, userID string,
) error {
	for _, name := range []string{"week", "month"} {
		period, err := ToPeriodWithTime(name, unlockedAt)
		if err != nil {
			return err
		}

		key := redisKeyPointLeaderboard(period)
		ok, err := l.redisClient.Exist(ctx, key)
		if err != nil {
			return err
		}

		// Only maintain buckets that already exist; missing ones are rebuilt
		// from the database on the next read.
		if !ok {
			continue
		}

		if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
			return err
		}
	}

	return nil
}

func (l *leaderboard) loadFromDB(ctx context.Context, period Period) error {
	stats, err := l.userAchievementRepo.Statistic(ctx, repository.StatisticUserAchievementFilter{
		UnlockedStart: period.Start(),
		UnlockedEnd:   period.End(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
		return errorx.Unknown
	}

	key := redisKeyPointLeaderboard(period)
	for _, stat := range stats {
		z := redis.Z{Member: stat.UserID, Score: float64(stat.Points)}
		if err := l.redisClient.ZAdd(ctx, key, z); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add to leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
