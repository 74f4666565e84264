package entity

import (
	"time"

	"gorm.io/gorm"
)

type DigestFrequency string

const (
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
)

// NotificationPreferences holds one user's per-type channel toggles plus
// digest and quiet-hour settings. The achievement/notification core only
// reads it; writes go through the preference endpoint.
type NotificationPreferences struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	// Email and InApp map a NotificationType to an enabled flag. A type
	// missing from the map counts as enabled.
	Email Map
	InApp Map

	DigestMode      bool
	DigestFrequency DigestFrequency

	QuietHours bool
	QuietStart string // "HH:MM"
	QuietEnd   string // "HH:MM"
}

// EmailEnabled reports whether email delivery is on for the given type.
func (p *NotificationPreferences) EmailEnabled(typ NotificationType) bool {
	return channelEnabled(p.Email, typ)
}

// InAppEnabled reports whether in-app delivery is on for the given type.
func (p *NotificationPreferences) InAppEnabled(typ NotificationType) bool {
	return channelEnabled(p.InApp, typ)
}

func channelEnabled(m Map, typ NotificationType) bool {
	if m == nil {
		return true
	}

	v, ok := m[string(typ)]
	if !ok {
		return true
	}

	enabled, ok := v.(bool)
	if !ok {
		return true
	}

	return enabled
}
