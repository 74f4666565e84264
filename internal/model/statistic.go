package model

type GetLeaderBoardRequest struct {
	Period string `json:"period"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`
}

type GetRankRequest struct {
	UserID string `json:"user_id"`
	Period string `json:"period"`
}

type GetRankResponse struct {
	Rank uint64 `json:"rank"`
}
