package repository

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationFilter struct {
	UnreadOnly bool
	Offset     int
	Limit      int
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	BulkCreate(ctx context.Context, notifications []*entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	GetListByUserID(ctx context.Context, userID string, filter NotificationFilter) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) BulkCreate(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(notifications).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var result entity.Notification
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notificationRepository) GetListByUserID(
	ctx context.Context, userID string, filter NotificationFilter,
) ([]entity.Notification, error) {
	tx := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.UnreadOnly {
		tx = tx.Where("read=?", false)
	}

	result := []entity.Notification{}
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND read=?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=? AND user_id=?", id, userID).
		Update("read", true)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND read=?", userID, false).
		Update("read", true).Error
}
