package repository

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationPreferenceRepository interface {
	// Get returns the stored preferences, or the permissive defaults when
	// the user never saved any.
	Get(ctx context.Context, userID string) (*entity.NotificationPreferences, error)

	Upsert(ctx context.Context, preferences *entity.NotificationPreferences) error
}

type notificationPreferenceRepository struct{}

func NewNotificationPreferenceRepository() *notificationPreferenceRepository {
	return &notificationPreferenceRepository{}
}

func (r *notificationPreferenceRepository) Get(
	ctx context.Context, userID string,
) (*entity.NotificationPreferences, error) {
	var result entity.NotificationPreferences
	err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.NotificationPreferences{UserID: userID}, nil
		}

		return nil, err
	}

	return &result, nil
}

func (r *notificationPreferenceRepository) Upsert(
	ctx context.Context, preferences *entity.NotificationPreferences,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"email":            preferences.Email,
				"in_app":           preferences.InApp,
				"digest_mode":      preferences.DigestMode,
				"digest_frequency": preferences.DigestFrequency,
				"quiet_hours":      preferences.QuietHours,
				"quiet_start":      preferences.QuietStart,
				"quiet_end":        preferences.QuietEnd,
			}),
		}).Create(preferences).Error
}
