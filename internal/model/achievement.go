package model

type ReportProgressRequest struct {
	AchievementID string `json:"achievement_id"`
	Value         int    `json:"value"`
}

type ReportProgressResponse struct {
	UserAchievement *UserAchievement `json:"user_achievement,omitempty"`
}

type ReportMetricRequest struct {
	RequirementType string `json:"requirement_type"`
	Value           int    `json:"value"`
}

type ReportMetricResponse struct{}

type GetCatalogRequest struct {
	Category string `json:"category"`
}

type GetCatalogResponse struct {
	Achievements []Achievement `json:"achievements"`
	Categories   []string      `json:"categories"`
}

type GetMyAchievementsRequest struct {
	// Filter is one of "", "unlocked", "locked", "in_progress",
	// "showcased", "recent".
	Filter   string `json:"filter"`
	Category string `json:"category"`
}

type GetMyAchievementsResponse struct {
	Achievements []UserAchievement `json:"achievements"`
}

type ShowcaseAchievementsRequest struct {
	AchievementIDs []string `json:"achievement_ids"`
}

type ShowcaseAchievementsResponse struct{}

type GetTransientAchievementsRequest struct{}

type GetTransientAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type DismissTransientAchievementRequest struct {
	AchievementID string `json:"achievement_id"`
}

type DismissTransientAchievementResponse struct{}
