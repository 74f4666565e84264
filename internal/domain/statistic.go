package domain

import (
	"context"

	"github.com/craftloop/backend/internal/domain/statistic"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
	GetRank(context.Context, *model.GetRankRequest) (*model.GetRankResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(leaderboard statistic.Leaderboard) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.Offset < 0 || req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative offset and limit")
	}

	if req.Limit == 0 {
		req.Limit = 10
	}

	if req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum limit of 50")
	}

	board, err := d.leaderboard.GetLeaderBoard(ctx, req.Period, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: board}, nil
}

func (d *statisticDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	rank, err := d.leaderboard.GetRank(ctx, userID, req.Period)
	if err != nil {
		return nil, err
	}

	return &model.GetRankResponse{Rank: rank}, nil
}
