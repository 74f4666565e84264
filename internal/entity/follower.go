package entity

import (
	"time"

	"gorm.io/gorm"
)

// Follower is one edge of the user follow graph: FollowerID follows
// FollowingID.
type Follower struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	FollowerID string `gorm:"primaryKey"`
	User       User   `gorm:"foreignKey:FollowerID"`

	FollowingID   string `gorm:"primaryKey"`
	FollowingUser User   `gorm:"foreignKey:FollowingID"`
}
