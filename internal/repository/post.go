package repository

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CountPostFilter struct {
	AuthorID string
	Type     entity.PostType
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Post, error)
	Count(ctx context.Context, filter CountPostFilter) (int64, error)
	CreateLike(ctx context.Context, like *entity.PostLike) error
	CountLikesReceived(ctx context.Context, authorID string) (int64, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return xcontext.DB(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetListByAuthorID(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Post, error) {
	result := []entity.Post{}
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) Count(ctx context.Context, filter CountPostFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Post{})
	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) CreateLike(ctx context.Context, like *entity.PostLike) error {
	err := xcontext.DB(ctx).Create(like).Error
	if err != nil {
		return err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", like.PostID).
		Update("likes", gorm.Expr("likes+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("cannot increase like counter")
	}

	return nil
}

func (r *postRepository) CountLikesReceived(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Joins("join posts on posts.id=post_likes.post_id").
		Where("posts.author_id=?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
