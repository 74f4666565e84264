package domain

import (
	"testing"
	"time"

	"github.com/craftloop/backend/internal/domain/achievement"
	"github.com/craftloop/backend/internal/domain/notification"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestFanout() *notification.Fanout {
	return notification.NewFanout(
		repository.NewUserRepository(),
		repository.NewFollowerRepository(),
		repository.NewNotificationRepository(),
		repository.NewNotificationPreferenceRepository(),
		nil,
	)
}

func newTestTracker(fanout *notification.Fanout) *achievement.Tracker {
	return achievement.NewTracker(
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewUserRepository(),
		achievement.NewTransientQueue(time.Minute, achievement.NewTimerScheduler()),
		fanout,
		nil,
	)
}

func Test_followerDomain_FollowNotifiesAndCounts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)

	fanout := newTestFanout()
	domain := NewFollowerDomain(
		repository.NewFollowerRepository(),
		repository.NewUserRepository(),
		fanout,
		newTestTracker(fanout),
	)

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: "user2"})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user2", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, entity.NotificationNewFollower, list[0].Type)
	require.Equal(t, "user1 started following you", list[0].Title)

	// The follower metric only advances the followed user.
	state, err := repository.NewUserAchievementRepository().Get(ctx, "user2", "social-butterfly")
	require.NoError(t, err)
	require.Equal(t, 1, state.Progress)
}

func Test_followerDomain_SelfFollowIsRejected(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	fanout := newTestFanout()
	domain := NewFollowerDomain(
		repository.NewFollowerRepository(),
		repository.NewUserRepository(),
		fanout,
		newTestTracker(fanout),
	)

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: "user1"})
	require.Error(t, err)
}

func Test_followerDomain_Lists(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	fanout := newTestFanout()
	domain := NewFollowerDomain(
		repository.NewFollowerRepository(),
		repository.NewUserRepository(),
		fanout,
		newTestTracker(fanout),
	)

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	followers, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{})
	require.NoError(t, err)
	require.Len(t, followers.Followers, 2)

	following, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Len(t, following.Following, 1)
	require.Equal(t, "user1", following.Following[0].ID)

	_, err = domain.Unfollow(xcontext.WithRequestUserID(ctx, "user2"), &model.UnfollowRequest{UserID: "user1"})
	require.NoError(t, err)

	followers, err = domain.GetFollowers(ctx, &model.GetFollowersRequest{})
	require.NoError(t, err)
	require.Len(t, followers.Followers, 1)
}
