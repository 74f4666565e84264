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
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowerDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followerDomain struct {
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository
	fanout       *notification.Fanout
	tracker      *achievement.Tracker
}

func NewFollowerDomain(
	followerRepo repository.FollowerRepository,
	userRepo repository.UserRepository,
	fanout *notification.Fanout,
	tracker *achievement.Tracker,
) *followerDomain {
	return &followerDomain{
		followerRepo: followerRepo,
		userRepo:     userRepo,
		fanout:       fanout,
		tracker:      tracker,
	}
}

func (d *followerDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	err := d.followerRepo.Create(ctx, &entity.Follower{
		FollowerID:  userID,
		FollowingID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follower: %v", err)
		return nil, errorx.Unknown
	}

	err = d.fanout.NotifyUser(ctx, req.UserID, userID, event.NewFollowerEvent{})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify new follower: %v", err)
	}

	count, err := d.followerRepo.CountFollowers(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count followers: %v", err)
	} else if err := d.tracker.CheckProgress(ctx, req.UserID, "followers", int(count)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check follower achievements: %v", err)
	}

	return &model.FollowResponse{}, nil
}

func (d *followerDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.followerRepo.Get(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found follower")
		}

		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followerRepo.Delete(ctx, userID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follower: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

func (d *followerDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	followers, err := d.followerRepo.GetFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range followers {
		ids = append(ids, f.FollowerID)
	}

	users, err := d.resolveUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Followers: users}, nil
}

func (d *followerDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	following, err := d.followerRepo.GetFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range following {
		ids = append(ids, f.FollowingID)
	}

	users, err := d.resolveUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Following: users}, nil
}

func (d *followerDomain) resolveUsers(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range users {
		result = append(result, model.ConvertUser(&users[i], false))
	}

	return result, nil
}
