package model

type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowersResponse struct {
	Followers []User `json:"followers"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowingResponse struct {
	Following []User `json:"following"`
}
