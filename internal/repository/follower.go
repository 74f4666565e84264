package repository

import (
	"context"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
)

type FollowerRepository interface {
	Create(ctx context.Context, data *entity.Follower) error
	Delete(ctx context.Context, followerID, followingID string) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error)

	// GetFollowers returns everyone following the given user.
	GetFollowers(ctx context.Context, userID string) ([]entity.Follower, error)

	// GetFollowing returns everyone the given user follows.
	GetFollowing(ctx context.Context, userID string) ([]entity.Follower, error)

	CountFollowers(ctx context.Context, userID string) (int64, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followerRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followerRepository) GetFollowers(ctx context.Context, userID string) ([]entity.Follower, error) {
	result := []entity.Follower{}
	if err := xcontext.DB(ctx).Where("following_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) GetFollowing(ctx context.Context, userID string) ([]entity.Follower, error) {
	result := []entity.Follower{}
	if err := xcontext.DB(ctx).Where("follower_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("following_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
