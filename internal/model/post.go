package model

type CreatePostRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreatePostResponse struct {
	ID string `json:"id"`
}

type GetMyPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyPostsResponse struct {
	Posts []Post `json:"posts"`
}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse struct{}
