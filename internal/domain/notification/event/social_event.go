package event

import (
	"fmt"

	"github.com/craftloop/backend/internal/entity"
)

// fallbackMessage picks the notification body: an explicit description if
// the event carries one, otherwise a reference to the target, otherwise a
// generic viewing prompt.
func fallbackMessage(description, targetTitle string) string {
	if description != "" {
		return description
	}

	if targetTitle != "" {
		return fmt.Sprintf("Check out %q", targetTitle)
	}

	return "Open the app to take a look"
}

type NewPostEvent struct {
	PostID      string          `json:"post_id"`
	PostType    entity.PostType `json:"post_type"`
	PostTitle   string          `json:"post_title"`
	Description string          `json:"description"`
}

func (NewPostEvent) Op() entity.NotificationType {
	return entity.NotificationNewPost
}

func (e NewPostEvent) Title(actorName string) string {
	if e.PostType == entity.PostTypeTutorial {
		return fmt.Sprintf("%s published a new tutorial", actorName)
	}

	return fmt.Sprintf("%s shared a new post", actorName)
}

func (e NewPostEvent) Message() string {
	return fallbackMessage(e.Description, e.PostTitle)
}

func (e NewPostEvent) Metadata() entity.Map {
	return entity.Map{"post_id": e.PostID, "post_type": string(e.PostType)}
}

type PostLikedEvent struct {
	PostID    string `json:"post_id"`
	PostTitle string `json:"post_title"`
}

func (PostLikedEvent) Op() entity.NotificationType {
	return entity.NotificationPostLike
}

func (e PostLikedEvent) Title(actorName string) string {
	return fmt.Sprintf("%s liked your post", actorName)
}

func (e PostLikedEvent) Message() string {
	return fallbackMessage("", e.PostTitle)
}

func (e PostLikedEvent) Metadata() entity.Map {
	return entity.Map{"post_id": e.PostID}
}

type NewFollowerEvent struct{}

func (NewFollowerEvent) Op() entity.NotificationType {
	return entity.NotificationNewFollower
}

func (e NewFollowerEvent) Title(actorName string) string {
	return fmt.Sprintf("%s started following you", actorName)
}

func (e NewFollowerEvent) Message() string {
	return fallbackMessage("", "")
}

func (e NewFollowerEvent) Metadata() entity.Map {
	return nil
}

type CommentReplyEvent struct {
	PostID    string `json:"post_id"`
	PostTitle string `json:"post_title"`
	Comment   string `json:"comment"`
}

func (CommentReplyEvent) Op() entity.NotificationType {
	return entity.NotificationCommentReply
}

func (e CommentReplyEvent) Title(actorName string) string {
	return fmt.Sprintf("%s replied to your comment", actorName)
}

func (e CommentReplyEvent) Message() string {
	return fallbackMessage(e.Comment, e.PostTitle)
}

func (e CommentReplyEvent) Metadata() entity.Map {
	return entity.Map{"post_id": e.PostID}
}

type MentionEvent struct {
	PostID    string `json:"post_id"`
	PostTitle string `json:"post_title"`
	Comment   string `json:"comment"`
}

func (MentionEvent) Op() entity.NotificationType {
	return entity.NotificationMention
}

func (e MentionEvent) Title(actorName string) string {
	return fmt.Sprintf("%s mentioned you", actorName)
}

func (e MentionEvent) Message() string {
	return fallbackMessage(e.Comment, e.PostTitle)
}

func (e MentionEvent) Metadata() entity.Map {
	return entity.Map{"post_id": e.PostID}
}

type ProjectFeedbackEvent struct {
	PostID    string `json:"post_id"`
	PostTitle string `json:"post_title"`
	Feedback  string `json:"feedback"`
}

func (ProjectFeedbackEvent) Op() entity.NotificationType {
	return entity.NotificationProjectFeedback
}

func (e ProjectFeedbackEvent) Title(actorName string) string {
	return fmt.Sprintf("%s left feedback on your project", actorName)
}

func (e ProjectFeedbackEvent) Message() string {
	return fallbackMessage(e.Feedback, e.PostTitle)
}

func (e ProjectFeedbackEvent) Metadata() entity.Map {
	return entity.Map{"post_id": e.PostID}
}

type GroupInviteEvent struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
}

func (GroupInviteEvent) Op() entity.NotificationType {
	return entity.NotificationGroupInvite
}

func (e GroupInviteEvent) Title(actorName string) string {
	return fmt.Sprintf("%s invited you to a group", actorName)
}

func (e GroupInviteEvent) Message() string {
	return fallbackMessage("", e.GroupName)
}

func (e GroupInviteEvent) Metadata() entity.Map {
	return entity.Map{"group_id": e.GroupID}
}

type AchievementUnlockedEvent struct {
	AchievementID   string `json:"achievement_id"`
	AchievementName string `json:"achievement_name"`
}

func (AchievementUnlockedEvent) Op() entity.NotificationType {
	return entity.NotificationAchievementUnlocked
}

func (e AchievementUnlockedEvent) Title(actorName string) string {
	return fmt.Sprintf("%s earned an achievement", actorName)
}

func (e AchievementUnlockedEvent) Message() string {
	return fallbackMessage("", e.AchievementName)
}

func (e AchievementUnlockedEvent) Metadata() entity.Map {
	return entity.Map{"achievement_id": e.AchievementID}
}

type SystemAnnouncementEvent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (SystemAnnouncementEvent) Op() entity.NotificationType {
	return entity.NotificationSystemAnnouncement
}

func (e SystemAnnouncementEvent) Title(string) string {
	return e.Subject
}

func (e SystemAnnouncementEvent) Message() string {
	return fallbackMessage(e.Body, "")
}

func (e SystemAnnouncementEvent) Metadata() entity.Map {
	return nil
}
