package model

type GetMyNotificationsRequest struct {
	UnreadOnly bool `json:"unread_only"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
}

type GetMyNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	TotalUnread   int64          `json:"total_unread"`
}

type MarkNotificationReadRequest struct {
	ID int64 `json:"id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type GetMyPreferencesRequest struct{}

type GetMyPreferencesResponse NotificationPreferences

type UpdatePreferencesRequest struct {
	Email map[string]any `json:"email"`
	InApp map[string]any `json:"in_app"`

	DigestMode      bool   `json:"digest_mode"`
	DigestFrequency string `json:"digest_frequency"`

	QuietHours bool   `json:"quiet_hours"`
	QuietStart string `json:"quiet_start"`
	QuietEnd   string `json:"quiet_end"`
}

type UpdatePreferencesResponse struct{}
