package model

import (
	"time"

	"github.com/craftloop/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	role := user.Role
	if !includeSensitive {
		role = ""
	}

	return User{
		ID:          user.ID,
		Name:        user.Name,
		Role:        role,
		Bio:         user.Bio,
		Avatar:      user.Avatar,
		TotalPoints: user.TotalPoints,
	}
}

func ConvertAchievement(achievement *entity.Achievement) Achievement {
	if achievement == nil {
		return Achievement{}
	}

	return Achievement{
		ID:          achievement.ID,
		Name:        achievement.Name,
		Description: achievement.Description,
		Icon:        achievement.Icon,
		Category:    string(achievement.Category),
		Rarity:      string(achievement.Rarity),
		Points:      achievement.Points,
		Requirement: AchievementRequirement{
			Type:  achievement.RequirementType,
			Value: achievement.RequirementValue,
		},
		MaxProgress: achievement.Target(),
	}
}

func ConvertUserAchievement(
	userAchievement *entity.UserAchievement, achievement *entity.Achievement,
) UserAchievement {
	if userAchievement == nil {
		return UserAchievement{}
	}

	unlockedAt := ""
	if userAchievement.UnlockedAt.Valid {
		unlockedAt = userAchievement.UnlockedAt.Time.Format(DefaultTimeLayout)
	}

	return UserAchievement{
		Achievement: ConvertAchievement(achievement),
		Progress:    userAchievement.Progress,
		UnlockedAt:  unlockedAt,
		Showcased:   userAchievement.Showcased,
	}
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		Read:      notification.Read,
		Metadata:  notification.Metadata,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: notification.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotificationPreferences(preferences *entity.NotificationPreferences) NotificationPreferences {
	if preferences == nil {
		return NotificationPreferences{}
	}

	return NotificationPreferences{
		Email:           preferences.Email,
		InApp:           preferences.InApp,
		DigestMode:      preferences.DigestMode,
		DigestFrequency: string(preferences.DigestFrequency),
		QuietHours:      preferences.QuietHours,
		QuietStart:      preferences.QuietStart,
		QuietEnd:        preferences.QuietEnd,
	}
}

func ConvertPost(post *entity.Post, author *entity.User) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:          post.ID,
		Author:      ConvertUser(author, false),
		Type:        string(post.Type),
		Title:       post.Title,
		Description: post.Description,
		Likes:       post.Likes,
		CreatedAt:   post.CreatedAt.Format(DefaultTimeLayout),
	}
}
