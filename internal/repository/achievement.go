package repository

import (
	"context"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// Upsert creates a catalog definition, or updates its presentation
	// fields when the id already exists. Requirement fields are immutable
	// once published so existing user progress stays meaningful.
	Upsert(ctx context.Context, achievement *entity.Achievement) error

	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	GetAll(ctx context.Context) ([]entity.Achievement, error)
	GetByRequirementType(ctx context.Context, requirementType string) ([]entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) Upsert(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":        achievement.Name,
				"description": achievement.Description,
				"icon":        achievement.Icon,
				"category":    achievement.Category,
				"rarity":      achievement.Rarity,
				"points":      achievement.Points,
			}),
		}).Create(achievement).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	result := &entity.Achievement{}
	if err := xcontext.DB(ctx).Where("id=?", id).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	result := []entity.Achievement{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) GetByRequirementType(
	ctx context.Context, requirementType string,
) ([]entity.Achievement, error) {
	result := []entity.Achievement{}
	err := xcontext.DB(ctx).
		Where("requirement_type=?", requirementType).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
