package model

type RegisterRequest struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse User
