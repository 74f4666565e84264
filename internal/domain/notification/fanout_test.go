package notification

import (
	"testing"
	"time"

	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/pubsub"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestFanout(publisher pubsub.Publisher) *Fanout {
	return NewFanout(
		repository.NewUserRepository(),
		repository.NewFollowerRepository(),
		repository.NewNotificationRepository(),
		repository.NewNotificationPreferenceRepository(),
		publisher,
	)
}

func Test_Fanout_NotifyFollowersReachesEveryFollower(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	err := fanout.NotifyFollowers(ctx, "user1", event.NewPostEvent{
		PostID:    "post1",
		PostType:  entity.PostTypeProject,
		PostTitle: "Walnut bowl",
	})
	require.NoError(t, err)

	notificationRepo := repository.NewNotificationRepository()

	// user2 and user3 follow user1; the actor gets nothing.
	for _, recipient := range []string{"user2", "user3"} {
		list, err := notificationRepo.GetListByUserID(ctx, recipient, repository.NotificationFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, entity.NotificationNewPost, list[0].Type)
		require.Equal(t, "user1 shared a new post", list[0].Title)
		require.Equal(t, `Check out "Walnut bowl"`, list[0].Message)
		require.False(t, list[0].SkipDelivery)
	}

	list, err := notificationRepo.GetListByUserID(ctx, "user1", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, list)
}

func Test_Fanout_SelfNotificationIsSuppressed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	err := fanout.NotifyUser(ctx, "user1", "user1", event.PostLikedEvent{PostID: "post1"})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user1", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, list)
}

func Test_Fanout_AllChannelsOffKeepsAuditRecord(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	preferenceRepo := repository.NewNotificationPreferenceRepository()
	err := preferenceRepo.Upsert(ctx, &entity.NotificationPreferences{
		UserID: "user2",
		Email:  entity.Map{"post_like": false},
		InApp:  entity.Map{"post_like": false},
	})
	require.NoError(t, err)

	err = fanout.NotifyUser(ctx, "user2", "user1", event.PostLikedEvent{PostID: "post1"})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user2", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].SkipDelivery)
}

func Test_Fanout_InAppOnlyTypeIsSuppressedEntirely(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	preferenceRepo := repository.NewNotificationPreferenceRepository()
	err := preferenceRepo.Upsert(ctx, &entity.NotificationPreferences{
		UserID: "user2",
		InApp:  entity.Map{"achievement_unlocked": false},
	})
	require.NoError(t, err)

	err = fanout.NotifyUser(ctx, "user2", "user1", event.AchievementUnlockedEvent{
		AchievementID: "first-post",
	})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user2", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, list)
}

func Test_Fanout_QuietHoursStampSkipDelivery(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	// A full-day window guarantees the test runs inside quiet hours.
	preferenceRepo := repository.NewNotificationPreferenceRepository()
	err := preferenceRepo.Upsert(ctx, &entity.NotificationPreferences{
		UserID:     "user2",
		QuietHours: true,
		QuietStart: "00:00",
		QuietEnd:   "23:59",
	})
	require.NoError(t, err)

	err = fanout.NotifyUser(ctx, "user2", "user1", event.PostLikedEvent{PostID: "post1"})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user2", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].SkipDelivery)
}

func Test_Fanout_MessageFallsBackToViewingPrompt(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	fanout := newTestFanout(nil)

	err := fanout.NotifyUser(ctx, "user2", "user1", event.PostLikedEvent{PostID: "post1"})
	require.NoError(t, err)

	list, err := repository.NewNotificationRepository().
		GetListByUserID(ctx, "user2", repository.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "user1 liked your post", list[0].Title)
	require.Equal(t, "Open the app to take a look", list[0].Message)
}

func Test_Fanout_DeliverySkipsSuppressedRecords(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	publisher := &testutil.MockPublisher{}
	fanout := newTestFanout(publisher)

	preferenceRepo := repository.NewNotificationPreferenceRepository()
	err := preferenceRepo.Upsert(ctx, &entity.NotificationPreferences{
		UserID: "user3",
		Email:  entity.Map{"new_post": false},
		InApp:  entity.Map{"new_post": false},
	})
	require.NoError(t, err)

	err = fanout.NotifyFollowers(ctx, "user1", event.NewPostEvent{
		PostID:    "post1",
		PostType:  entity.PostTypeTutorial,
		PostTitle: "Joinery basics",
	})
	require.NoError(t, err)

	// Publishing is fire-and-forget; only user2's record goes out.
	require.Eventually(t, func() bool {
		return len(publisher.Published("")) == 1
	}, time.Second, 10*time.Millisecond)

	var req event.EventRequest
	require.NoError(t, req.Unmarshal(publisher.Published("")[0].Msg))
	require.Equal(t, "user2", req.UserID)
	require.Equal(t, entity.NotificationNewPost, req.Op)
	require.Equal(t, "user1 published a new tutorial", req.Title)
}
