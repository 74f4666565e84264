package entity

import "github.com/craftloop/backend/pkg/enum"

type NotificationType string

var (
	NotificationCommentReply        = enum.New(NotificationType("comment_reply"))
	NotificationPostLike            = enum.New(NotificationType("post_like"))
	NotificationNewFollower         = enum.New(NotificationType("new_follower"))
	NotificationMention             = enum.New(NotificationType("mention"))
	NotificationAchievementUnlocked = enum.New(NotificationType("achievement_unlocked"))
	NotificationProjectFeedback     = enum.New(NotificationType("project_feedback"))
	NotificationGroupInvite         = enum.New(NotificationType("group_invite"))
	NotificationSystemAnnouncement  = enum.New(NotificationType("system_announcement"))
	NotificationNewPost             = enum.New(NotificationType("new_post"))
)

// Notification is a durable per-recipient record of a social event. The
// read flag is the only field the recipient may mutate.
type Notification struct {
	SnowFlakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Type    NotificationType
	Title   string
	Message string
	Read    bool

	// SkipDelivery marks records kept for audit only: the recipient turned
	// off every delivery channel for this type, so the delivery edge must
	// not send anything.
	SkipDelivery bool

	// Metadata references the triggering entity (post id, actor id, ...).
	Metadata Map
}
