package domain

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/dateutil"
	"github.com/craftloop/backend/pkg/enum"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetMyNotifications(context.Context, *model.GetMyNotificationsRequest) (*model.GetMyNotificationsResponse, error)
	MarkRead(context.Context, *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(context.Context, *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
	GetMyPreferences(context.Context, *model.GetMyPreferencesRequest) (*model.GetMyPreferencesResponse, error)
	UpdatePreferences(context.Context, *model.UpdatePreferencesRequest) (*model.UpdatePreferencesResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	preferenceRepo   repository.NotificationPreferenceRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	preferenceRepo repository.NotificationPreferenceRepository,
) *notificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
	}
}

func (d *notificationDomain) GetMyNotifications(
	ctx context.Context, req *model.GetMyNotificationsRequest,
) (*model.GetMyNotificationsResponse, error) {
	if req.Offset < 0 || req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative offset and limit")
	}

	cfg := xcontext.Configs(ctx).Notification
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum limit of %d", cfg.MaxLimit)
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, repository.NotificationFilter{
		UnreadOnly: req.UnreadOnly,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	totalUnread, err := d.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetMyNotificationsResponse{
		Notifications: result,
		TotalUnread:   totalUnread,
	}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, xcontext.RequestUserID(ctx), req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	if err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}

func (d *notificationDomain) GetMyPreferences(
	ctx context.Context, req *model.GetMyPreferencesRequest,
) (*model.GetMyPreferencesResponse, error) {
	preferences, err := d.preferenceRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notification preferences: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMyPreferencesResponse(model.ConvertNotificationPreferences(preferences))
	return &resp, nil
}

func (d *notificationDomain) UpdatePreferences(
	ctx context.Context, req *model.UpdatePreferencesRequest,
) (*model.UpdatePreferencesResponse, error) {
	if err := validateChannelMap(req.Email); err != nil {
		return nil, err
	}

	if err := validateChannelMap(req.InApp); err != nil {
		return nil, err
	}

	switch entity.DigestFrequency(req.DigestFrequency) {
	case "", entity.DigestDaily, entity.DigestWeekly:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid digest frequency %s", req.DigestFrequency)
	}

	if req.QuietHours {
		if _, err := dateutil.ParseClock(req.QuietStart); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid quiet start %s", req.QuietStart)
		}

		if _, err := dateutil.ParseClock(req.QuietEnd); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid quiet end %s", req.QuietEnd)
		}
	}

	err := d.preferenceRepo.Upsert(ctx, &entity.NotificationPreferences{
		UserID:          xcontext.RequestUserID(ctx),
		Email:           entity.Map(req.Email),
		InApp:           entity.Map(req.InApp),
		DigestMode:      req.DigestMode,
		DigestFrequency: entity.DigestFrequency(req.DigestFrequency),
		QuietHours:      req.QuietHours,
		QuietStart:      req.QuietStart,
		QuietEnd:        req.QuietEnd,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update notification preferences: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePreferencesResponse{}, nil
}

func validateChannelMap(m map[string]any) error {
	for key, value := range m {
		if _, err := enum.ToEnum[entity.NotificationType](key); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid notification type %s", key)
		}

		if _, ok := value.(bool); !ok {
			return errorx.New(errorx.BadRequest, "Require a boolean toggle for %s", key)
		}
	}

	return nil
}
