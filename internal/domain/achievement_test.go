package domain

import (
	"testing"
	"time"

	"github.com/craftloop/backend/internal/domain/achievement"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAchievementDomain() AchievementDomain {
	achievementRepo := repository.NewAchievementRepository()
	userAchievementRepo := repository.NewUserAchievementRepository()
	queue := achievement.NewTransientQueue(time.Minute, achievement.NewTimerScheduler())
	tracker := achievement.NewTracker(
		achievementRepo,
		userAchievementRepo,
		repository.NewUserRepository(),
		queue,
		nil,
		nil,
	)

	return NewAchievementDomain(achievementRepo, userAchievementRepo, tracker, queue)
}

func Test_achievementDomain_ReportProgressAndFilters(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")

	resp, err := domain.ReportProgress(ctx, &model.ReportProgressRequest{
		AchievementID: "prolific-creator",
		Value:         4,
	})
	require.NoError(t, err)
	require.Equal(t, 4, resp.UserAchievement.Progress)
	require.Empty(t, resp.UserAchievement.UnlockedAt)

	_, err = domain.ReportProgress(ctx, &model.ReportProgressRequest{
		AchievementID: "first-post",
		Value:         1,
	})
	require.NoError(t, err)

	unlocked, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "unlocked"})
	require.NoError(t, err)
	require.Len(t, unlocked.Achievements, 1)
	require.Equal(t, "first-post", unlocked.Achievements[0].Achievement.ID)
	require.NotEmpty(t, unlocked.Achievements[0].UnlockedAt)

	inProgress, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "in_progress"})
	require.NoError(t, err)
	require.Len(t, inProgress.Achievements, 1)
	require.Equal(t, "prolific-creator", inProgress.Achievements[0].Achievement.ID)

	locked, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "locked"})
	require.NoError(t, err)
	require.Len(t, locked.Achievements, 2)

	social, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Category: "social"})
	require.NoError(t, err)
	require.Len(t, social.Achievements, 1)
	require.Equal(t, "social-butterfly", social.Achievements[0].Achievement.ID)

	_, err = domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "bogus"})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid filter bogus"), err)
}

func Test_achievementDomain_ReportProgressUnknownAchievement(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	resp, err := domain.ReportProgress(ctx, &model.ReportProgressRequest{
		AchievementID: "does-not-exist",
		Value:         1,
	})
	require.NoError(t, err)
	require.Nil(t, resp.UserAchievement)
}

func Test_achievementDomain_ReportMetric(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")

	// One metric reading drives every achievement listening to it.
	_, err := domain.ReportMetric(ctx, &model.ReportMetricRequest{
		RequirementType: "posts",
		Value:           1,
	})
	require.NoError(t, err)

	unlocked, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "unlocked"})
	require.NoError(t, err)
	require.Len(t, unlocked.Achievements, 1)
	require.Equal(t, "first-post", unlocked.Achievements[0].Achievement.ID)

	inProgress, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "in_progress"})
	require.NoError(t, err)
	require.Len(t, inProgress.Achievements, 1)
	require.Equal(t, "prolific-creator", inProgress.Achievements[0].Achievement.ID)
	require.Equal(t, 1, inProgress.Achievements[0].Progress)

	_, err = domain.ReportMetric(ctx, &model.ReportMetricRequest{Value: 1})
	require.Error(t, err)

	_, err = domain.ReportMetric(ctx, &model.ReportMetricRequest{
		RequirementType: "posts",
		Value:           -1,
	})
	require.Error(t, err)
}

func Test_achievementDomain_GetCatalog(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	resp, err := domain.GetCatalog(ctx, &model.GetCatalogRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Achievements, 3)
	require.ElementsMatch(t, resp.Categories,
		[]string{"participation", "creation", "social", "learning", "streak"})

	creation, err := domain.GetCatalog(ctx, &model.GetCatalogRequest{Category: "creation"})
	require.NoError(t, err)
	require.Len(t, creation.Achievements, 2)

	var found bool
	for _, a := range creation.Achievements {
		if a.ID == "first-post" {
			found = true
			require.Equal(t, model.AchievementRequirement{Type: "posts", Value: 1}, a.Requirement)
		}
	}
	require.True(t, found)

	_, err = domain.GetCatalog(ctx, &model.GetCatalogRequest{Category: "bogus"})
	require.Error(t, err)
}

func Test_achievementDomain_ShowcaseRequiresUnlocked(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")

	_, err := domain.ReportProgress(ctx, &model.ReportProgressRequest{
		AchievementID: "first-post",
		Value:         1,
	})
	require.NoError(t, err)

	_, err = domain.ShowcaseAchievements(ctx, &model.ShowcaseAchievementsRequest{
		AchievementIDs: []string{"prolific-creator"},
	})
	require.Error(t, err)

	_, err = domain.ShowcaseAchievements(ctx, &model.ShowcaseAchievementsRequest{
		AchievementIDs: []string{"first-post"},
	})
	require.NoError(t, err)

	showcased, err := domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "showcased"})
	require.NoError(t, err)
	require.Len(t, showcased.Achievements, 1)
	require.Equal(t, "first-post", showcased.Achievements[0].Achievement.ID)

	// Replacing the showcase clears the previous selection.
	_, err = domain.ShowcaseAchievements(ctx, &model.ShowcaseAchievementsRequest{})
	require.NoError(t, err)

	showcased, err = domain.GetMyAchievements(ctx, &model.GetMyAchievementsRequest{Filter: "showcased"})
	require.NoError(t, err)
	require.Empty(t, showcased.Achievements)
}

func Test_achievementDomain_TransientLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	domain := newTestAchievementDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")

	_, err := domain.ReportProgress(ctx, &model.ReportProgressRequest{
		AchievementID: "first-post",
		Value:         1,
	})
	require.NoError(t, err)

	transient, err := domain.GetTransient(ctx, &model.GetTransientAchievementsRequest{})
	require.NoError(t, err)
	require.Len(t, transient.Achievements, 1)
	require.Equal(t, "first-post", transient.Achievements[0].ID)

	_, err = domain.DismissTransient(ctx, &model.DismissTransientAchievementRequest{
		AchievementID: "first-post",
	})
	require.NoError(t, err)

	transient, err = domain.GetTransient(ctx, &model.GetTransientAchievementsRequest{})
	require.NoError(t, err)
	require.Empty(t, transient.Achievements)
}
