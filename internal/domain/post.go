package domain

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/domain/achievement"
	"github.com/craftloop/backend/internal/domain/notification"
	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/enum"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostDomain interface {
	CreatePost(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetMyPosts(context.Context, *model.GetMyPostsRequest) (*model.GetMyPostsResponse, error)
	LikePost(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
}

type postDomain struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	fanout   *notification.Fanout
	tracker  *achievement.Tracker
}

func NewPostDomain(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	fanout *notification.Fanout,
	tracker *achievement.Tracker,
) *postDomain {
	return &postDomain{
		postRepo: postRepo,
		userRepo: userRepo,
		fanout:   fanout,
		tracker:  tracker,
	}
}

func (d *postDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a title")
	}

	postType, err := enum.ToEnum[entity.PostType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid post type %s", req.Type)
	}

	userID := xcontext.RequestUserID(ctx)
	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    userID,
		Type:        postType,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	d.checkCreationProgress(ctx, userID, postType)

	err = d.fanout.NotifyFollowers(ctx, userID, event.NewPostEvent{
		PostID:      post.ID,
		PostType:    post.Type,
		PostTitle:   post.Title,
		Description: post.Description,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify followers about post: %v", err)
	}

	return &model.CreatePostResponse{ID: post.ID}, nil
}

func (d *postDomain) GetMyPosts(
	ctx context.Context, req *model.GetMyPostsRequest,
) (*model.GetMyPostsResponse, error) {
	if req.Offset < 0 || req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative offset and limit")
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetListByAuthorID(ctx, userID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Post{}
	for i := range posts {
		result = append(result, model.ConvertPost(&posts[i], user))
	}

	return &model.GetMyPostsResponse{Posts: result}, nil
}

func (d *postDomain) LikePost(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	err = d.postRepo.CreateLike(ctx, &entity.PostLike{
		PostID: req.PostID,
		UserID: userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	err = d.fanout.NotifyUser(ctx, post.AuthorID, userID, event.PostLikedEvent{
		PostID:    post.ID,
		PostTitle: post.Title,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify post like: %v", err)
	}

	likes, err := d.postRepo.CountLikesReceived(ctx, post.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count received likes: %v", err)
	} else if err := d.tracker.CheckProgress(ctx, post.AuthorID, "likes_received", int(likes)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check like achievements: %v", err)
	}

	return &model.LikePostResponse{}, nil
}

// checkCreationProgress feeds the author's creation metrics after a new
// post. Failures only lose a progress tick; the next post resubmits the
// full count.
func (d *postDomain) checkCreationProgress(
	ctx context.Context, userID string, postType entity.PostType,
) {
	total, err := d.postRepo.Count(ctx, repository.CountPostFilter{AuthorID: userID})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count posts: %v", err)
	} else if err := d.tracker.CheckProgress(ctx, userID, "posts", int(total)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check post achievements: %v", err)
	}

	if postType != entity.PostTypeTutorial {
		return
	}

	tutorials, err := d.postRepo.Count(ctx, repository.CountPostFilter{
		AuthorID: userID,
		Type:     entity.PostTypeTutorial,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count tutorials: %v", err)
	} else if err := d.tracker.CheckProgress(ctx, userID, "tutorials", int(tutorials)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check tutorial achievements: %v", err)
	}
}
