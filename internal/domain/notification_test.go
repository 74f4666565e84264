package domain

import (
	"testing"

	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestNotificationDomain() NotificationDomain {
	return NewNotificationDomain(
		repository.NewNotificationRepository(),
		repository.NewNotificationPreferenceRepository(),
	)
}

func Test_notificationDomain_ListAndMarkRead(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newTestNotificationDomain()
	fanout := newTestFanout()

	for i := 0; i < 3; i++ {
		err := fanout.NotifyUser(ctx, "user2", "user1", event.PostLikedEvent{PostID: "post1"})
		require.NoError(t, err)
	}

	ctx = xcontext.WithRequestUserID(ctx, "user2")
	resp, err := domain.GetMyNotifications(ctx, &model.GetMyNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 3)
	require.EqualValues(t, 3, resp.TotalUnread)
	require.Equal(t, "user2", resp.Notifications[0].UserID)
	require.NotEmpty(t, resp.Notifications[0].UpdatedAt)

	_, err = domain.MarkRead(ctx, &model.MarkNotificationReadRequest{ID: resp.Notifications[0].ID})
	require.NoError(t, err)

	unread, err := domain.GetMyNotifications(ctx, &model.GetMyNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 2)
	require.EqualValues(t, 2, unread.TotalUnread)

	_, err = domain.MarkAllRead(ctx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	unread, err = domain.GetMyNotifications(ctx, &model.GetMyNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Empty(t, unread.Notifications)
	require.EqualValues(t, 0, unread.TotalUnread)
}

func Test_notificationDomain_MarkReadIsScopedToOwner(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newTestNotificationDomain()
	fanout := newTestFanout()

	err := fanout.NotifyUser(ctx, "user2", "user1", event.PostLikedEvent{PostID: "post1"})
	require.NoError(t, err)

	owner := xcontext.WithRequestUserID(ctx, "user2")
	resp, err := domain.GetMyNotifications(owner, &model.GetMyNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)

	stranger := xcontext.WithRequestUserID(ctx, "user3")
	_, err = domain.MarkRead(stranger, &model.MarkNotificationReadRequest{ID: resp.Notifications[0].ID})
	require.Error(t, err)
}

func Test_notificationDomain_PreferenceValidation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newTestNotificationDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")

	_, err := domain.UpdatePreferences(ctx, &model.UpdatePreferencesRequest{
		InApp: map[string]any{"bogus_type": false},
	})
	require.Error(t, err)

	_, err = domain.UpdatePreferences(ctx, &model.UpdatePreferencesRequest{
		InApp: map[string]any{"post_like": "yes"},
	})
	require.Error(t, err)

	_, err = domain.UpdatePreferences(ctx, &model.UpdatePreferencesRequest{
		DigestFrequency: "hourly",
	})
	require.Error(t, err)

	_, err = domain.UpdatePreferences(ctx, &model.UpdatePreferencesRequest{
		QuietHours: true,
		QuietStart: "25:00",
		QuietEnd:   "07:00",
	})
	require.Error(t, err)

	_, err = domain.UpdatePreferences(ctx, &model.UpdatePreferencesRequest{
		InApp:           map[string]any{"post_like": false},
		DigestMode:      true,
		DigestFrequency: "daily",
		QuietHours:      true,
		QuietStart:      "22:00",
		QuietEnd:        "07:00",
	})
	require.NoError(t, err)

	prefs, err := domain.GetMyPreferences(ctx, &model.GetMyPreferencesRequest{})
	require.NoError(t, err)
	require.True(t, prefs.DigestMode)
	require.Equal(t, "daily", prefs.DigestFrequency)
	require.Equal(t, false, prefs.InApp["post_like"])
}

func Test_notificationDomain_LimitIsBounded(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newTestNotificationDomain()

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	_, err := domain.GetMyNotifications(ctx, &model.GetMyNotificationsRequest{Limit: 100})
	require.Error(t, err)

	_, err = domain.GetMyNotifications(ctx, &model.GetMyNotificationsRequest{Offset: -1})
	require.Error(t, err)
}
