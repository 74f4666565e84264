package model

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	TotalPoints uint64 `json:"total_points"`
}

type AchievementRequirement struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type Achievement struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Category    string                 `json:"category"`
	Rarity      string                 `json:"rarity"`
	Points      uint64                 `json:"points"`
	Requirement AchievementRequirement `json:"requirement"`
	MaxProgress int                    `json:"max_progress"`
}

type UserAchievement struct {
	Achievement Achievement `json:"achievement"`
	Progress    int         `json:"progress"`
	UnlockedAt  string      `json:"unlocked_at,omitempty"`
	Showcased   bool        `json:"showcased"`
}

type Notification struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

type NotificationPreferences struct {
	Email map[string]any `json:"email"`
	InApp map[string]any `json:"in_app"`

	DigestMode      bool   `json:"digest_mode"`
	DigestFrequency string `json:"digest_frequency,omitempty"`

	QuietHours bool   `json:"quiet_hours"`
	QuietStart string `json:"quiet_start,omitempty"`
	QuietEnd   string `json:"quiet_end,omitempty"`
}

type Post struct {
	ID          string `json:"id"`
	Author      User   `json:"author"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Likes       uint64 `json:"likes"`
	CreatedAt   string `json:"created_at"`
}

type UserStatistic struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
	Rank   uint64 `json:"rank"`
}
