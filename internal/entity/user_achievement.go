package entity

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// UserAchievement tracks one user's progress toward one achievement. It is
// created lazily on the first progress report and never deleted.
//
// Invariants kept by the progress tracker:
//   - Progress never decreases and never exceeds the achievement target.
//   - UnlockedAt is set exactly once, when progress reaches the target,
//     and is never cleared.
type UserAchievement struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	Progress   int
	UnlockedAt sql.NullTime
	Showcased  bool
}
