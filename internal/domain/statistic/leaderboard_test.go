package statistic

import (
	"context"
	"testing"
	"time"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func seedUnlocks(ctx context.Context, t *testing.T) {
	t.Helper()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)

	userAchievementRepo := repository.NewUserAchievementRepository()
	for user, achievementID := range map[string]string{
		"user1": "first-post",
		"user2": "social-butterfly",
	} {
		require.NoError(t, userAchievementRepo.Create(ctx, &entity.UserAchievement{
			UserID:        user,
			AchievementID: achievementID,
		}))

		_, err := userAchievementRepo.Unlock(ctx, user, achievementID, time.Now(), 1)
		require.NoError(t, err)
	}
}

func Test_leaderboard_RebuildsFromDatabaseOnCacheMiss(t *testing.T) {
	ctx := testutil.MockContext()
	seedUnlocks(ctx, t)

	added := map[string]float64{}
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return len(added) > 0, nil
		},
		ZAddFunc: func(ctx context.Context, key string, z goredis.Z) error {
			added[z.Member.(string)] = z.Score
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]goredis.Z, error) {
			return []goredis.Z{
				{Member: "user2", Score: 20},
				{Member: "user1", Score: 10},
			}, nil
		},
	}

	board, err := New(repository.NewUserAchievementRepository(), redisClient).
		GetLeaderBoard(ctx, "week", 0, 10)
	require.NoError(t, err)

	// The empty bucket was filled from the unlock history.
	require.Equal(t, map[string]float64{"user1": 10, "user2": 20}, added)

	require.Len(t, board, 2)
	require.Equal(t, "user2", board[0].UserID)
	require.EqualValues(t, 20, board[0].Points)
	require.EqualValues(t, 1, board[0].Rank)
	require.EqualValues(t, 2, board[1].Rank)
}

func Test_leaderboard_ChangePointSkipsMissingBuckets(t *testing.T) {
	ctx := testutil.MockContext()

	var incremented int
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			incremented++
			return nil
		},
	}

	leaderboard := New(repository.NewUserAchievementRepository(), redisClient)
	require.NoError(t, leaderboard.ChangePointLeaderboard(ctx, 10, time.Now(), "user1"))
	require.Zero(t, incremented)

	redisClient.ExistFunc = func(ctx context.Context, key string) (bool, error) {
		return true, nil
	}

	require.NoError(t, leaderboard.ChangePointLeaderboard(ctx, 10, time.Now(), "user1"))
	require.Equal(t, 2, incremented) // week and month buckets
}

func Test_leaderboard_GetRankIsOneBased(t *testing.T) {
	ctx := testutil.MockContext()

	redisClient := &testutil.MockRedisClient{
		ZRevRankFunc: func(ctx context.Context, key string, member string) (uint64, error) {
			return 0, nil
		},
	}

	rank, err := New(repository.NewUserAchievementRepository(), redisClient).
		GetRank(ctx, "user1", "month")
	require.NoError(t, err)
	require.EqualValues(t, 1, rank)
}

func Test_leaderboard_InvalidPeriod(t *testing.T) {
	ctx := testutil.MockContext()
	leaderboard := New(repository.NewUserAchievementRepository(), &testutil.MockRedisClient{})

	_, err := leaderboard.GetLeaderBoard(ctx, "year", 0, 10)
	require.Error(t, err)

	_, err = leaderboard.GetRank(ctx, "user1", "day")
	require.Error(t, err)
}
