package repository

import (
	"context"
	"time"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserAchievementRepository interface {
	// Create inserts the lazily-created progress row. An existing row is
	// left untouched.
	Create(ctx context.Context, data *entity.UserAchievement) error

	Get(ctx context.Context, userID, achievementID string) (*entity.UserAchievement, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserAchievement, error)
	GetRecentUnlocked(ctx context.Context, userID string, limit int) ([]entity.UserAchievement, error)

	// UpdateProgress raises the recorded progress. The conditional write
	// keeps progress monotone even if an out-of-order value slips past the
	// in-process serialization.
	UpdateProgress(ctx context.Context, userID, achievementID string, progress int) error

	// Unlock stamps unlocked_at and pins progress for a still-locked row.
	// It reports whether this call performed the unlock; a false result
	// means another writer already did.
	Unlock(ctx context.Context, userID, achievementID string, unlockedAt time.Time, progress int) (bool, error)

	SetShowcased(ctx context.Context, userID string, achievementIDs []string) error

	// Statistic sums awarded points per user over an unlock window. It
	// backs the leaderboard cache rebuild.
	Statistic(ctx context.Context, filter StatisticUserAchievementFilter) ([]UserPoints, error)
}

type StatisticUserAchievementFilter struct {
	UnlockedStart time.Time
	UnlockedEnd   time.Time
}

type UserPoints struct {
	UserID string
	Points int64
}

type userAchievementRepository struct{}

func NewUserAchievementRepository() *userAchievementRepository {
	return &userAchievementRepository{}
}

func (r *userAchievementRepository) Create(ctx context.Context, data *entity.UserAchievement) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "achievement_id"},
			},
			DoNothing: true,
		}).Create(data).Error
}

func (r *userAchievementRepository) Get(
	ctx context.Context, userID, achievementID string,
) (*entity.UserAchievement, error) {
	var result entity.UserAchievement
	err := xcontext.DB(ctx).
		Where("user_id=? AND achievement_id=?", userID, achievementID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userAchievementRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.UserAchievement, error) {
	result := []entity.UserAchievement{}
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userAchievementRepository) GetRecentUnlocked(
	ctx context.Context, userID string, limit int,
) ([]entity.UserAchievement, error) {
	result := []entity.UserAchievement{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND unlocked_at IS NOT NULL", userID).
		Order("unlocked_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userAchievementRepository) UpdateProgress(
	ctx context.Context, userID, achievementID string, progress int,
) error {
	return xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND achievement_id=? AND progress<?", userID, achievementID, progress).
		Update("progress", progress).Error
}

func (r *userAchievementRepository) Unlock(
	ctx context.Context, userID, achievementID string, unlockedAt time.Time, progress int,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND achievement_id=? AND unlocked_at IS NULL", userID, achievementID).
		Updates(map[string]any{
			"unlocked_at": unlockedAt,
			"progress":    progress,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userAchievementRepository) Statistic(
	ctx context.Context, filter StatisticUserAchievementFilter,
) ([]UserPoints, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Select("user_achievements.user_id AS user_id, SUM(achievements.points) AS points").
		Joins("join achievements on achievements.id=user_achievements.achievement_id").
		Where("user_achievements.unlocked_at IS NOT NULL")

	if !filter.UnlockedStart.IsZero() {
		tx = tx.Where("user_achievements.unlocked_at>=?", filter.UnlockedStart)
	}

	if !filter.UnlockedEnd.IsZero() {
		tx = tx.Where("user_achievements.unlocked_at<?", filter.UnlockedEnd)
	}

	result := []UserPoints{}
	if err := tx.Group("user_achievements.user_id").Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userAchievementRepository) SetShowcased(
	ctx context.Context, userID string, achievementIDs []string,
) error {
	err := xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND showcased=?", userID, true).
		Update("showcased", false).Error
	if err != nil {
		return err
	}

	if len(achievementIDs) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND achievement_id IN (?) AND unlocked_at IS NOT NULL", userID, achievementIDs).
		Update("showcased", true).Error
}
