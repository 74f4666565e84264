package repository_test

import (
	"testing"
	"time"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userAchievementRepository_ProgressIsMonotoneAtSQLLevel(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	repo := repository.NewUserAchievementRepository()

	require.NoError(t, repo.Create(ctx, &entity.UserAchievement{
		UserID:        "user1",
		AchievementID: "prolific-creator",
	}))

	require.NoError(t, repo.UpdateProgress(ctx, "user1", "prolific-creator", 5))
	require.NoError(t, repo.UpdateProgress(ctx, "user1", "prolific-creator", 3))

	state, err := repo.Get(ctx, "user1", "prolific-creator")
	require.NoError(t, err)
	require.Equal(t, 5, state.Progress)
}

func Test_userAchievementRepository_UnlockWinsOnlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	repo := repository.NewUserAchievementRepository()

	require.NoError(t, repo.Create(ctx, &entity.UserAchievement{
		UserID:        "user1",
		AchievementID: "first-post",
	}))

	won, err := repo.Unlock(ctx, "user1", "first-post", time.Now(), 1)
	require.NoError(t, err)
	require.True(t, won)

	won, err = repo.Unlock(ctx, "user1", "first-post", time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	require.False(t, won)
}

func Test_userAchievementRepository_CreateKeepsExistingRow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	repo := repository.NewUserAchievementRepository()

	require.NoError(t, repo.Create(ctx, &entity.UserAchievement{
		UserID:        "user1",
		AchievementID: "first-post",
	}))
	require.NoError(t, repo.UpdateProgress(ctx, "user1", "first-post", 1))

	// The lazy insert must not reset progress on a later report.
	require.NoError(t, repo.Create(ctx, &entity.UserAchievement{
		UserID:        "user1",
		AchievementID: "first-post",
	}))

	state, err := repo.Get(ctx, "user1", "first-post")
	require.NoError(t, err)
	require.Equal(t, 1, state.Progress)
}

func Test_userAchievementRepository_GetRecentUnlocked(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	repo := repository.NewUserAchievementRepository()

	now := time.Now()
	for i, id := range []string{"first-post", "prolific-creator", "social-butterfly"} {
		require.NoError(t, repo.Create(ctx, &entity.UserAchievement{
			UserID:        "user1",
			AchievementID: id,
		}))

		_, err := repo.Unlock(ctx, "user1", id, now.Add(time.Duration(i)*time.Minute), 1)
		require.NoError(t, err)
	}

	recent, err := repo.GetRecentUnlocked(ctx, "user1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "social-butterfly", recent[0].AchievementID)
	require.Equal(t, "prolific-creator", recent[1].AchievementID)
}
